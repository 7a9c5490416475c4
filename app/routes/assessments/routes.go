package assessments

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/volatiletech/null/v8"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/flash"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/logging"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/auth"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/validation"
)

func SetupAssessmentsRoutes(app *fiber.App) {
	admin := app.Group("/admin", auth.RequireAdmin)
	admin.Post("/assessment/add/:student_id", AddAssessment)
	admin.Get("/export", ExportGradeSheet)
}

type assessmentForm struct {
	Subject string `validate:"required"`
	CA      null.Float64
	Test1   null.Float64
	Test2   null.Float64
	Exam    null.Float64
}

// AddAssessment records scores for one (student, subject) pair. Empty
// score fields are allowed and leave any stored value untouched; a
// malformed number is rejected outright rather than silently recorded
// as zero.
func AddAssessment(c *fiber.Ctx) error {
	studentID, err := strconv.ParseInt(c.Params("student_id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}
	student, err := database.GetStudentByID(config.GetDB(), studentID)
	if err != nil {
		logging.L.Errorw("assessment student lookup failed", "err", err)
		return fiber.ErrInternalServerError
	}
	if student == nil {
		return fiber.ErrNotFound
	}

	form := assessmentForm{Subject: strings.TrimSpace(c.FormValue("subject"))}
	if err := validation.Validate.Struct(form); err != nil {
		flash.Set(c, "المادة مطلوبة.")
		return c.Redirect("/admin/dashboard")
	}

	fields := []struct {
		name string
		dst  *null.Float64
	}{
		{"ca", &form.CA},
		{"test1", &form.Test1},
		{"test2", &form.Test2},
		{"exam", &form.Exam},
	}
	for _, f := range fields {
		v, err := parseScore(c.FormValue(f.name))
		if err != nil {
			flash.Set(c, "قيمة الدرجة غير صالحة، يجب أن تكون عددًا بين 0 و20.")
			return c.Redirect("/admin/dashboard")
		}
		*f.dst = v
	}

	a := &models.Assessment{
		StudentID: student.ID,
		Subject:   form.Subject,
		CA:        form.CA,
		Test1:     form.Test1,
		Test2:     form.Test2,
		Exam:      form.Exam,
	}
	if err := database.UpsertAssessment(config.GetDB(), a); err != nil {
		logging.L.Errorw("assessment upsert failed", "err", err)
		return fiber.ErrInternalServerError
	}

	flash.Set(c, "تم حفظ الدرجات.")
	return c.Redirect("/admin/dashboard")
}

var errScoreInvalid = errors.New("score must be a number between 0 and 20")

// parseScore maps an empty field to a missing value and anything else
// to a number in [0, 20].
func parseScore(raw string) (null.Float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return null.Float64{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 20 {
		return null.Float64{}, errScoreInvalid
	}
	return null.Float64From(v), nil
}
