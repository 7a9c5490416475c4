package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/testutil"
)

func TestUpsertAssessmentMergesPerField(t *testing.T) {
	db := testutil.SetupDB(t)

	s := &models.Student{Name: "نور", Code: "2020", ClassGroup: models.SecondYearGroup2}
	require.NoError(t, database.CreateStudent(db, s))

	first := &models.Assessment{
		StudentID: s.ID,
		Subject:   "رياضيات",
		CA:        null.Float64From(14),
		Test1:     null.Float64From(12),
		Exam:      null.Float64From(10),
	}
	require.NoError(t, database.UpsertAssessment(db, first))

	records, err := database.GetAssessmentsByStudent(db, s.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	firstUpdatedAt := records[0].UpdatedAt

	time.Sleep(10 * time.Millisecond)

	// Resubmit the same subject with only test2: everything else must
	// survive unchanged, the timestamp must move.
	second := &models.Assessment{
		StudentID: s.ID,
		Subject:   "رياضيات",
		Test2:     null.Float64From(16),
	}
	require.NoError(t, database.UpsertAssessment(db, second))

	records, err = database.GetAssessmentsByStudent(db, s.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, null.Float64From(14), got.CA)
	assert.Equal(t, null.Float64From(12), got.Test1)
	assert.Equal(t, null.Float64From(16), got.Test2)
	assert.Equal(t, null.Float64From(10), got.Exam)
	assert.True(t, got.UpdatedAt.After(firstUpdatedAt))
}

func TestUpsertAssessmentOneRowPerStudentSubject(t *testing.T) {
	db := testutil.SetupDB(t)

	s := &models.Student{Name: "هدى", Code: "3030", ClassGroup: models.FirstYearGroup2}
	require.NoError(t, database.CreateStudent(db, s))

	for i := 0; i < 3; i++ {
		a := &models.Assessment{
			StudentID: s.ID,
			Subject:   "فيزياء",
			CA:        null.Float64From(float64(10 + i)),
		}
		require.NoError(t, database.UpsertAssessment(db, a))
	}
	a := &models.Assessment{StudentID: s.ID, Subject: "علوم", Test1: null.Float64From(9)}
	require.NoError(t, database.UpsertAssessment(db, a))

	records, err := database.GetAssessmentsByStudent(db, s.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	n, err := database.CountAssessmentsByStudent(db, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUpsertAssessmentNeverFillsMissingWithZero(t *testing.T) {
	db := testutil.SetupDB(t)

	s := &models.Student{Name: "ياسين", Code: "4040", ClassGroup: models.ThirdYear}
	require.NoError(t, database.CreateStudent(db, s))

	a := &models.Assessment{StudentID: s.ID, Subject: "تاريخ", CA: null.Float64From(15)}
	require.NoError(t, database.UpsertAssessment(db, a))

	records, err := database.GetAssessmentsByStudent(db, s.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.True(t, got.CA.Valid)
	assert.False(t, got.Test1.Valid)
	assert.False(t, got.Test2.Valid)
	assert.False(t, got.Exam.Valid)
}

func TestGetAllAssessmentsJoinsStudents(t *testing.T) {
	db := testutil.SetupDB(t)

	s := &models.Student{Name: "سلمى", Code: "5050", ClassGroup: models.SecondYearGroup1}
	require.NoError(t, database.CreateStudent(db, s))

	a := &models.Assessment{StudentID: s.ID, Subject: "لغة", Exam: null.Float64From(13)}
	require.NoError(t, database.UpsertAssessment(db, a))

	all, err := database.GetAllAssessments(db)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Student)
	assert.Equal(t, "سلمى", all[0].Student.Name)
	assert.Equal(t, models.SecondYearGroup1, all[0].Student.ClassGroup)
}
