package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/flash"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/logging"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/assessments"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/dashboard", auth.RequireStudent, StudentDashboard)
	app.Get("/admin/dashboard", auth.RequireAdmin, AdminDashboard)
}

// AssessmentRow is one rendered grade line; every numeric cell is
// pre-formatted so the template only prints.
type AssessmentRow struct {
	Subject   string
	CA        string
	Test1     string
	Test2     string
	Exam      string
	Average   string
	UpdatedAt string
}

type StudentRow struct {
	ID          int64
	Name        string
	Code        string
	ClassGroup  string
	Assessments []AssessmentRow
}

type FileRow struct {
	ID         int64
	Title      string
	Filename   string
	ClassGroup string
	UploadedAt string
}

// StudentDashboard shows the caller's own grades and the files shared
// with their class-group, both re-read from the database on every
// request.
func StudentDashboard(c *fiber.Ctx) error {
	student := auth.CurrentStudent(c)

	records, err := database.GetAssessmentsByStudent(config.GetDB(), student.ID)
	if err != nil {
		logging.L.Errorw("dashboard assessments query failed", "err", err)
		return fiber.ErrInternalServerError
	}
	assets, err := database.GetFileAssetsByClassGroup(config.GetDB(), student.ClassGroup)
	if err != nil {
		logging.L.Errorw("dashboard files query failed", "err", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("dashboard", fiber.Map{
		"Title":       "لوحتي",
		"Flash":       flash.Pop(c),
		"StudentName": student.Name,
		"ClassGroup":  string(student.ClassGroup),
		"Grades":      toAssessmentRows(records),
		"Files":       toFileRows(assets),
	})
}

// AdminDashboard is the management console: every student with their
// grade lines inline, plus every uploaded file.
func AdminDashboard(c *fiber.Ctx) error {
	studentList, err := database.GetAllStudents(config.GetDB())
	if err != nil {
		logging.L.Errorw("admin dashboard students query failed", "err", err)
		return fiber.ErrInternalServerError
	}
	assets, err := database.GetAllFileAssets(config.GetDB())
	if err != nil {
		logging.L.Errorw("admin dashboard files query failed", "err", err)
		return fiber.ErrInternalServerError
	}

	rows := make([]StudentRow, 0, len(studentList))
	for _, s := range studentList {
		records, err := database.GetAssessmentsByStudent(config.GetDB(), s.ID)
		if err != nil {
			logging.L.Errorw("admin dashboard assessments query failed", "student", s.ID, "err", err)
			return fiber.ErrInternalServerError
		}
		rows = append(rows, StudentRow{
			ID:          s.ID,
			Name:        s.Name,
			Code:        s.Code,
			ClassGroup:  string(s.ClassGroup),
			Assessments: toAssessmentRows(records),
		})
	}

	return c.Render("admin/dashboard", fiber.Map{
		"Title":       "لوحة التحكم",
		"IsAdmin":     true,
		"Flash":       flash.Pop(c),
		"Students":    rows,
		"Files":       toFileRows(assets),
		"ClassGroups": models.ClassGroups,
	})
}

func toAssessmentRows(records []*models.Assessment) []AssessmentRow {
	rows := make([]AssessmentRow, 0, len(records))
	for _, a := range records {
		rows = append(rows, AssessmentRow{
			Subject:   a.Subject,
			CA:        assessments.FormatScore(a.CA),
			Test1:     assessments.FormatScore(a.Test1),
			Test2:     assessments.FormatScore(a.Test2),
			Exam:      assessments.FormatScore(a.Exam),
			Average:   assessments.FormatAverage(assessments.FinalAverage(a.CA, a.Test1, a.Test2, a.Exam)),
			UpdatedAt: a.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func toFileRows(assets []*models.FileAsset) []FileRow {
	rows := make([]FileRow, 0, len(assets))
	for _, f := range assets {
		rows = append(rows, FileRow{
			ID:         f.ID,
			Title:      f.Title,
			Filename:   f.Filename,
			ClassGroup: string(f.ClassGroup),
			UploadedAt: f.UploadedAt.Format("2006-01-02 15:04"),
		})
	}
	return rows
}
