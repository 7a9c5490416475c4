package auth_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/auth"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/testutil"
)

func newTestApp(t *testing.T) (*fiber.App, *sql.DB) {
	t.Helper()
	db := testutil.SetupDB(t)

	app := fiber.New()
	app.Use(auth.SessionMiddleware)
	auth.SetupAuthRoutes(app)
	return app, db
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestStudentLoginSuccess(t *testing.T) {
	app, db := newTestApp(t)
	s := &models.Student{Name: "أحمد", Code: "8392", ClassGroup: models.ThirdYear}
	require.NoError(t, database.CreateStudent(db, s))

	resp := postForm(t, app, "/login", url.Values{
		"code":        {"8392"},
		"class_group": {string(models.ThirdYear)},
	})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get(fiber.HeaderLocation))

	session := cookieByName(resp, "session_token")
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Value)
}

func TestStudentLoginWrongGroupIndistinguishableFromUnknownCode(t *testing.T) {
	app, db := newTestApp(t)
	s := &models.Student{Name: "ليلى", Code: "4444", ClassGroup: models.ThirdYear}
	require.NoError(t, database.CreateStudent(db, s))

	wrongGroup := postForm(t, app, "/login", url.Values{
		"code":        {"4444"},
		"class_group": {string(models.SecondYearGroup1)},
	})
	unknownCode := postForm(t, app, "/login", url.Values{
		"code":        {"9999"},
		"class_group": {string(models.ThirdYear)},
	})

	assert.Equal(t, wrongGroup.StatusCode, unknownCode.StatusCode)
	assert.Equal(t,
		wrongGroup.Header.Get(fiber.HeaderLocation),
		unknownCode.Header.Get(fiber.HeaderLocation))

	wgFlash := cookieByName(wrongGroup, "flash")
	ucFlash := cookieByName(unknownCode, "flash")
	require.NotNil(t, wgFlash)
	require.NotNil(t, ucFlash)
	assert.Equal(t, wgFlash.Value, ucFlash.Value)

	assert.Nil(t, cookieByName(wrongGroup, "session_token"))
	assert.Nil(t, cookieByName(unknownCode, "session_token"))
}

func TestAdminLogin(t *testing.T) {
	app, _ := newTestApp(t)

	ok := postForm(t, app, "/admin", url.Values{"code": {"test-admin-code"}})
	assert.Equal(t, fiber.StatusFound, ok.StatusCode)
	assert.Equal(t, "/admin/dashboard", ok.Header.Get(fiber.HeaderLocation))
	require.NotNil(t, cookieByName(ok, "session_token"))

	bad := postForm(t, app, "/admin", url.Values{"code": {"wrong"}})
	assert.Equal(t, "/admin", bad.Header.Get(fiber.HeaderLocation))
	assert.Nil(t, cookieByName(bad, "session_token"))
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newTestApp(t)

	login := postForm(t, app, "/admin", url.Values{"code": {"test-admin-code"}})
	session := cookieByName(login, "session_token")
	require.NotNil(t, session)

	req := httptest.NewRequest(fiber.MethodGet, "/logout", nil)
	req.AddCookie(session)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	cleared := cookieByName(resp, "session_token")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestRoleGuards(t *testing.T) {
	app, db := newTestApp(t)
	app.Get("/admin/probe", auth.RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/student/probe", auth.RequireStudent, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Anonymous callers land on the matching login form.
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin/probe", nil))
	require.NoError(t, err)
	assert.Equal(t, "/admin", resp.Header.Get(fiber.HeaderLocation))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/student/probe", nil))
	require.NoError(t, err)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	// A student session opens student routes but not admin ones.
	s := &models.Student{Name: "كمال", Code: "7777", ClassGroup: models.FirstYearGroup1}
	require.NoError(t, database.CreateStudent(db, s))
	login := postForm(t, app, "/login", url.Values{
		"code":        {"7777"},
		"class_group": {string(models.FirstYearGroup1)},
	})
	session := cookieByName(login, "session_token")
	require.NotNil(t, session)

	req := httptest.NewRequest(fiber.MethodGet, "/student/probe", nil)
	req.AddCookie(session)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/admin/probe", nil)
	req.AddCookie(session)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "/admin", resp.Header.Get(fiber.HeaderLocation))
}
