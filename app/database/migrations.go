package database

import (
	"database/sql"
	"fmt"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/logging"
)

// RunMigrations applies the schema. Every statement is CREATE IF NOT
// EXISTS so the call is idempotent and safe on every startup.
func RunMigrations(db *sql.DB) error {
	createStudents := `
CREATE TABLE IF NOT EXISTS students (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE,
    class_group TEXT NOT NULL
);`
	if _, err := db.Exec(createStudents); err != nil {
		return fmt.Errorf("create students: %w", err)
	}

	createAssessments := `
CREATE TABLE IF NOT EXISTS assessments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL REFERENCES students(id),
    subject TEXT NOT NULL,
    ca REAL,
    test1 REAL,
    test2 REAL,
    exam REAL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE(student_id, subject)
);`
	if _, err := db.Exec(createAssessments); err != nil {
		return fmt.Errorf("create assessments: %w", err)
	}

	createFiles := `
CREATE TABLE IF NOT EXISTS files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    filename TEXT NOT NULL UNIQUE,
    class_group TEXT NOT NULL,
    uploaded_at TIMESTAMP NOT NULL
);`
	if _, err := db.Exec(createFiles); err != nil {
		return fmt.Errorf("create files: %w", err)
	}

	logging.L.Info("database migrations completed")
	return nil
}
