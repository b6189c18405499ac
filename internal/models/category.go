package models

import "slices"

// Activity categories.
const (
	CategorySocialMedia = "social_media"
	CategoryGaming      = "gaming"
	CategoryReading     = "reading"
	CategoryLectures    = "lectures"
	CategoryPractice    = "practice"
	CategorySleep       = "sleep"
	CategorySalah       = "salah"
)

// Expense categories.
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryEntertainment = "entertainment"
	CategoryShopping      = "shopping"
	CategoryUtilities     = "utilities"
	CategoryOther         = "other"
)

// ActivityCategories lists the fixed activity tags in display order.
var ActivityCategories = []string{
	CategorySocialMedia,
	CategoryGaming,
	CategoryReading,
	CategoryLectures,
	CategoryPractice,
	CategorySleep,
	CategorySalah,
}

// ExpenseCategories lists the fixed expense tags in display order.
var ExpenseCategories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryUtilities,
	CategoryOther,
}

// IsActivityCategory reports whether c is a known activity tag.
func IsActivityCategory(c string) bool {
	return slices.Contains(ActivityCategories, c)
}

// IsExpenseCategory reports whether c is a known expense tag.
func IsExpenseCategory(c string) bool {
	return slices.Contains(ExpenseCategories, c)
}

// IsGoalCategory reports whether c can be used by a goal. Goals share the
// activity and expense namespaces.
func IsGoalCategory(c string) bool {
	return IsActivityCategory(c) || IsExpenseCategory(c)
}

