package e2e

import (
	"strconv"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite drives the running server over HTTP
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	request playwright.APIRequestContext
	userID  int64
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	request, err := pw.Request.NewContext(playwright.APIRequestNewContextOptions{
		BaseURL: playwright.String(appURL),
	})
	require.NoError(suite.T(), err, "could not create request context")
	suite.request = request
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.request != nil {
		suite.request.Dispose()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest logs in as the bootstrap user before each test
func (suite *E2ETestSuite) SetupTest() {
	resp, err := suite.request.Post("/api/login", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"username": "testuser", "password": "testpass123"},
	})
	require.NoError(suite.T(), err, "login request failed")
	require.Equal(suite.T(), 200, resp.Status(), "login rejected")

	var user struct {
		ID int64 `json:"id"`
	}
	require.NoError(suite.T(), resp.JSON(&user))
	suite.userID = user.ID
}

func (suite *E2ETestSuite) user() map[string]interface{} {
	return map[string]interface{}{"userId": suite.userID}
}

func (suite *E2ETestSuite) post(path string, data map[string]interface{}) playwright.APIResponse {
	data["userId"] = suite.userID
	resp, err := suite.request.Post(path, playwright.APIRequestContextPostOptions{Data: data})
	require.NoError(suite.T(), err, "POST %s failed", path)
	return resp
}

func (suite *E2ETestSuite) TestLoginRejectsWrongPassword() {
	resp, err := suite.request.Post("/api/login", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"username": "testuser", "password": "nope"},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 401, resp.Status())
}

func (suite *E2ETestSuite) TestActivityFlow() {
	resp := suite.post("/api/activities", map[string]interface{}{
		"category":  "reading",
		"startTime": "2024-03-13T08:00:00Z",
		"duration":  1800,
	})
	require.Equal(suite.T(), 201, resp.Status())
	var created struct {
		ID       int64 `json:"id"`
		Duration int64 `json:"duration"`
	}
	require.NoError(suite.T(), resp.JSON(&created))
	assert.Equal(suite.T(), int64(1800), created.Duration)

	path := "/api/activities/" + strconv.FormatInt(created.ID, 10)
	resp, err := suite.request.Patch(path, playwright.APIRequestContextPatchOptions{
		Data: map[string]interface{}{"duration": 2700},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 200, resp.Status())

	resp, err = suite.request.Delete(path)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 204, resp.Status())

	resp, err = suite.request.Get(path)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 404, resp.Status())
}

func (suite *E2ETestSuite) TestRejectsInvalidExpense() {
	resp := suite.post("/api/expenses", map[string]interface{}{"amount": -5, "category": "food"})
	assert.Equal(suite.T(), 400, resp.Status())

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(suite.T(), resp.JSON(&body))
	assert.Contains(suite.T(), body.Message, "amount")
}

func (suite *E2ETestSuite) TestExportImportRoundTrip() {
	resp := suite.post("/api/expenses", map[string]interface{}{"amount": 12.5, "category": "food"})
	require.Equal(suite.T(), 201, resp.Status())

	resp, err := suite.request.Get("/api/export", playwright.APIRequestContextGetOptions{Params: suite.user()})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 200, resp.Status())
	var exported map[string]interface{}
	require.NoError(suite.T(), resp.JSON(&exported))
	before := len(exported["expenses"].([]interface{}))
	require.Positive(suite.T(), before)

	resp = suite.post("/api/import", map[string]interface{}{"data": exported})
	require.Equal(suite.T(), 200, resp.Status())
	var imported struct {
		Message       string         `json:"message"`
		ImportResults map[string]int `json:"importResults"`
	}
	require.NoError(suite.T(), resp.JSON(&imported))
	assert.Equal(suite.T(), "Data imported successfully", imported.Message)
	assert.Equal(suite.T(), before, imported.ImportResults["expenses"])

	resp, err = suite.request.Get("/api/expenses", playwright.APIRequestContextGetOptions{Params: suite.user()})
	require.NoError(suite.T(), err)
	var expenses []map[string]interface{}
	require.NoError(suite.T(), resp.JSON(&expenses))
	assert.Len(suite.T(), expenses, 2*before)

	resp, err = suite.request.Get("/api/backups", playwright.APIRequestContextGetOptions{Params: suite.user()})
	require.NoError(suite.T(), err)
	var backups []map[string]interface{}
	require.NoError(suite.T(), resp.JSON(&backups))
	assert.GreaterOrEqual(suite.T(), len(backups), 2)
}

func (suite *E2ETestSuite) TestDashboard() {
	resp := suite.post("/api/goals", map[string]interface{}{
		"name": "Social Media < 2 hours", "category": "social_media", "targetValue": 2, "currentValue": 3, "unit": "hours",
	})
	require.Equal(suite.T(), 201, resp.Status())

	params := suite.user()
	params["period"] = "daily"
	resp, err := suite.request.Get("/api/dashboard", playwright.APIRequestContextGetOptions{Params: params})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 200, resp.Status())

	var dashboard struct {
		GoalProgress []struct {
			Name          string `json:"name"`
			Percentage    int    `json:"percentage"`
			IsAboveTarget bool   `json:"isAboveTarget"`
		} `json:"goalProgress"`
	}
	require.NoError(suite.T(), resp.JSON(&dashboard))
	found := false
	for _, g := range dashboard.GoalProgress {
		if g.Name == "Social Media < 2 hours" {
			found = true
			assert.Equal(suite.T(), 150, g.Percentage)
			assert.True(suite.T(), g.IsAboveTarget)
		}
	}
	assert.True(suite.T(), found, "goal missing from dashboard")
}

func (suite *E2ETestSuite) TestDeleteAllExpenses() {
	suite.post("/api/expenses", map[string]interface{}{"amount": 1, "category": "other"})

	resp, err := suite.request.Delete("/api/expenses/all", playwright.APIRequestContextDeleteOptions{Params: suite.user()})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 200, resp.Status())

	resp, err = suite.request.Get("/api/expenses", playwright.APIRequestContextGetOptions{Params: suite.user()})
	require.NoError(suite.T(), err)
	text, err := resp.Text()
	require.NoError(suite.T(), err)
	assert.JSONEq(suite.T(), "[]", text)
}

// TestE2E runs the end-to-end test suite
func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
