package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateCode reports an insert with a login code another student
// already uses.
var ErrDuplicateCode = errors.New("student code already in use")

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (name, code, class_group) VALUES (?, ?, ?)`
	res, err := db.Exec(query, student.Name, student.Code, string(student.ClassGroup))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("create student: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create student id: %w", err)
	}
	student.ID = id
	return nil
}

func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT id, name, code, class_group FROM students ORDER BY id DESC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.ClassGroup); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &s)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, id int64) (*models.Student, error) {
	var s models.Student
	query := `SELECT id, name, code, class_group FROM students WHERE id = ?`
	err := db.QueryRow(query, id).Scan(&s.ID, &s.Name, &s.Code, &s.ClassGroup)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch student %d: %w", id, err)
	}
	return &s, nil
}

// GetStudentByLogin resolves a student-login attempt. Both the code and
// the class-group must match; a wrong group fails exactly like an
// unknown code.
func GetStudentByLogin(db *sql.DB, code string, group models.ClassGroup) (*models.Student, error) {
	var s models.Student
	query := `SELECT id, name, code, class_group FROM students WHERE code = ? AND class_group = ?`
	err := db.QueryRow(query, code, string(group)).Scan(&s.ID, &s.Name, &s.Code, &s.ClassGroup)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch student by login: %w", err)
	}
	return &s, nil
}

// DeleteStudent removes the student and every assessment referencing it
// in one transaction.
func DeleteStudent(db *sql.DB, id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("delete student begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM assessments WHERE student_id = ?`, id); err != nil {
		return fmt.Errorf("delete student assessments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM students WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
