package models

import "strings"

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// User represents a user account.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"displayName"`
	DarkMode     bool   `json:"darkMode"`
}

// NewUser is the payload accepted when a user is created.
type NewUser struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	DarkMode    bool   `json:"darkMode"`
}

// Validate checks the create payload.
func (u *NewUser) Validate() error {
	var c checker
	c.check(strings.TrimSpace(u.Username) != "", "username", "required")
	c.check(u.Password != "", "password", "required")
	c.check(len(u.Password) <= MaxPasswordBytes, "password", "must be at most 72 bytes")
	c.check(strings.TrimSpace(u.DisplayName) != "", "displayName", "required")
	return c.err()
}

// UserPatch is a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	DisplayName *string `json:"displayName"`
	DarkMode    *bool   `json:"darkMode"`

	// PasswordHash is filled in by the caller once Password has been hashed.
	PasswordHash *string `json:"-"`
}

// Validate checks the fields present in the patch.
func (p *UserPatch) Validate() error {
	var c checker
	if p.Username != nil {
		c.check(strings.TrimSpace(*p.Username) != "", "username", "must not be empty")
	}
	if p.Password != nil {
		c.check(*p.Password != "", "password", "must not be empty")
		c.check(len(*p.Password) <= MaxPasswordBytes, "password", "must be at most 72 bytes")
	}
	if p.DisplayName != nil {
		c.check(strings.TrimSpace(*p.DisplayName) != "", "displayName", "must not be empty")
	}
	return c.err()
}

// Apply copies the patch onto u. The plain password is never applied.
func (p *UserPatch) Apply(u *User) {
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.DarkMode != nil {
		u.DarkMode = *p.DarkMode
	}
}
