package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/flash"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/logging"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/metrics"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Get("/", IndexPage)
	app.Post("/login", StudentLogin)
	app.Get("/logout", Logout)
	app.Get("/admin", AdminLoginPage)
	app.Post("/admin", AdminLogin)
}

// IndexPage renders the student login form.
func IndexPage(c *fiber.Ctx) error {
	if CurrentRole(c) == models.RoleStudent {
		return c.Redirect("/dashboard")
	}
	return c.Render("index", fiber.Map{
		"Title":       "تسجيل دخول التلميذ",
		"Flash":       flash.Pop(c),
		"ClassGroups": models.ClassGroups,
	})
}

// StudentLogin authenticates by exact (code, class-group) match. A
// correct code with the wrong group fails with the same message as an
// unknown code.
func StudentLogin(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.FormValue("code"))
	group := strings.TrimSpace(c.FormValue("class_group"))

	if code == "" || !models.IsValidClassGroup(group) {
		flash.Set(c, "الكود والقسم مطلوبان.")
		return c.Redirect("/")
	}

	student, err := database.GetStudentByLogin(config.GetDB(), code, models.ClassGroup(group))
	if err != nil {
		logging.L.Errorw("student login lookup failed", "err", err)
		return fiber.ErrInternalServerError
	}
	if student == nil {
		metrics.StudentLogins.WithLabelValues("failure").Inc()
		flash.Set(c, "الكود أو القسم غير صحيح.")
		return c.Redirect("/")
	}

	if err := BeginStudentSession(c, student); err != nil {
		logging.L.Errorw("student session sign failed", "err", err)
		return fiber.ErrInternalServerError
	}
	metrics.StudentLogins.WithLabelValues("success").Inc()
	return c.Redirect("/dashboard")
}

// Logout clears the session for any role.
func Logout(c *fiber.Ctx) error {
	EndSession(c)
	flash.Set(c, "تم تسجيل الخروج.")
	return c.Redirect("/")
}

// AdminLoginPage renders the admin passphrase form.
func AdminLoginPage(c *fiber.Ctx) error {
	if CurrentRole(c) == models.RoleAdmin {
		return c.Redirect("/admin/dashboard")
	}
	return c.Render("admin/login", fiber.Map{
		"Title": "دخول الأستاذ",
		"Flash": flash.Pop(c),
	})
}

// AdminLogin checks the shared passphrase against the configured secret.
func AdminLogin(c *fiber.Ctx) error {
	if !CheckAdminCode(strings.TrimSpace(c.FormValue("code"))) {
		metrics.AdminLogins.WithLabelValues("failure").Inc()
		flash.Set(c, "كود الأستاذ غير صحيح.")
		return c.Redirect("/admin")
	}
	if err := BeginAdminSession(c); err != nil {
		logging.L.Errorw("admin session sign failed", "err", err)
		return fiber.ErrInternalServerError
	}
	metrics.AdminLogins.WithLabelValues("success").Inc()
	return c.Redirect("/admin/dashboard")
}
