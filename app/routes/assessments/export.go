package assessments

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/logging"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
)

var exportHeader = []string{"التلميذ", "الكود", "المادة", "تقويم مستمر", "الفرض 1", "الفرض 2", "الاختبار", "المعدل"}

// ExportGradeSheet streams an Excel workbook with one sheet per
// class-group, one row per (student, subject) assessment.
func ExportGradeSheet(c *fiber.Ctx) error {
	all, err := database.GetAllAssessments(config.GetDB())
	if err != nil {
		logging.L.Errorw("export query failed", "err", err)
		return fiber.ErrInternalServerError
	}

	byGroup := make(map[models.ClassGroup][]*models.Assessment)
	for _, a := range all {
		byGroup[a.Student.ClassGroup] = append(byGroup[a.Student.ClassGroup], a)
	}

	f, err := buildWorkbook(byGroup)
	if err != nil {
		logging.L.Errorw("export workbook build failed", "err", err)
		return fiber.ErrInternalServerError
	}

	filename := fmt.Sprintf("grades_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return f.Write(c.Response().BodyWriter())
}

func buildWorkbook(byGroup map[models.ClassGroup][]*models.Assessment) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	first := true
	for _, group := range models.ClassGroups {
		rows := byGroup[group]
		if len(rows) == 0 {
			continue
		}
		sheet := string(group)
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("new sheet %s: %w", sheet, err)
			}
		}

		for col, h := range exportHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellStr(sheet, cell, h); err != nil {
				return nil, fmt.Errorf("set header %s: %w", cell, err)
			}
		}
		end, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
		_ = f.SetCellStyle(sheet, "A1", end, bold)

		for r, a := range rows {
			values := []string{
				a.Student.Name,
				a.Student.Code,
				a.Subject,
				FormatScore(a.CA),
				FormatScore(a.Test1),
				FormatScore(a.Test2),
				FormatScore(a.Exam),
				FormatAverage(FinalAverage(a.CA, a.Test1, a.Test2, a.Exam)),
			}
			for col, val := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				if err := f.SetCellStr(sheet, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
	}

	if first {
		// No assessments at all: keep the default sheet so the file opens.
		_ = f.SetCellStr("Sheet1", "A1", "لا توجد درجات بعد")
	}
	return f, nil
}
