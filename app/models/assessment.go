package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Assessment is the per-student, per-subject record of up to four
// component scores. A score that was never entered stays invalid; it is
// never stored as zero.
type Assessment struct {
	ID        int64        `json:"id"`
	StudentID int64        `json:"student_id"`
	Subject   string       `json:"subject" validate:"required"`
	CA        null.Float64 `json:"ca"`
	Test1     null.Float64 `json:"test1"`
	Test2     null.Float64 `json:"test2"`
	Exam      null.Float64 `json:"exam"`
	UpdatedAt time.Time    `json:"updated_at"`

	Student *Student `json:"student,omitempty"`
}
