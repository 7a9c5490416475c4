package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
)

func CreateFileAsset(db *sql.DB, f *models.FileAsset) error {
	f.UploadedAt = time.Now()
	query := `INSERT INTO files (title, filename, class_group, uploaded_at) VALUES (?, ?, ?, ?)`
	res, err := db.Exec(query, f.Title, f.Filename, string(f.ClassGroup), f.UploadedAt)
	if err != nil {
		return fmt.Errorf("create file asset: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create file asset id: %w", err)
	}
	f.ID = id
	return nil
}

func GetAllFileAssets(db *sql.DB) ([]*models.FileAsset, error) {
	return queryFileAssets(db, `SELECT id, title, filename, class_group, uploaded_at FROM files ORDER BY id DESC`)
}

func GetFileAssetsByClassGroup(db *sql.DB, group models.ClassGroup) ([]*models.FileAsset, error) {
	return queryFileAssets(db,
		`SELECT id, title, filename, class_group, uploaded_at FROM files WHERE class_group = ? ORDER BY id DESC`,
		string(group))
}

func GetFileAssetByID(db *sql.DB, id int64) (*models.FileAsset, error) {
	var f models.FileAsset
	query := `SELECT id, title, filename, class_group, uploaded_at FROM files WHERE id = ?`
	err := db.QueryRow(query, id).Scan(&f.ID, &f.Title, &f.Filename, &f.ClassGroup, &f.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch file %d: %w", id, err)
	}
	return &f, nil
}

func DeleteFileAsset(db *sql.DB, id int64) error {
	if _, err := db.Exec(`DELETE FROM files WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete file %d: %w", id, err)
	}
	return nil
}

func queryFileAssets(db *sql.DB, query string, args ...interface{}) ([]*models.FileAsset, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch files: %w", err)
	}
	defer rows.Close()

	var files []*models.FileAsset
	for rows.Next() {
		var f models.FileAsset
		if err := rows.Scan(&f.ID, &f.Title, &f.Filename, &f.ClassGroup, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}
