package students

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/flash"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/logging"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/auth"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/validation"
)

func SetupStudentsRoutes(app *fiber.App) {
	admin := app.Group("/admin", auth.RequireAdmin)
	admin.Post("/student/add", AddStudent)
	admin.Post("/student/delete/:id", DeleteStudent)
}

// AddStudent creates a student from the admin form. A login code already
// assigned to another student is reported with its own message and
// nothing is created.
func AddStudent(c *fiber.Ctx) error {
	student := &models.Student{
		Name:       strings.TrimSpace(c.FormValue("name")),
		Code:       strings.TrimSpace(c.FormValue("code")),
		ClassGroup: models.ClassGroup(strings.TrimSpace(c.FormValue("class_group"))),
	}
	if err := validation.Validate.Struct(student); err != nil {
		flash.Set(c, "الاسم والكود والقسم مطلوبة.")
		return c.Redirect("/admin/dashboard")
	}

	if err := database.CreateStudent(config.GetDB(), student); err != nil {
		if errors.Is(err, database.ErrDuplicateCode) {
			flash.Set(c, "هذا الكود مستخدم بالفعل، اختر كودًا آخر.")
			return c.Redirect("/admin/dashboard")
		}
		logging.L.Errorw("student create failed", "err", err)
		return fiber.ErrInternalServerError
	}

	flash.Set(c, "تمت إضافة التلميذ بنجاح.")
	return c.Redirect("/admin/dashboard")
}

// DeleteStudent removes a student and all of their assessments.
func DeleteStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}
	if err := database.DeleteStudent(config.GetDB(), id); err != nil {
		logging.L.Errorw("student delete failed", "id", id, "err", err)
		return fiber.ErrInternalServerError
	}
	flash.Set(c, "تم حذف التلميذ ودرجاته.")
	return c.Redirect("/admin/dashboard")
}
