package models

import "time"

// FileAsset is the metadata row for one uploaded document. Filename is
// the server-generated name inside the uploads directory, never the name
// the browser sent.
type FileAsset struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title" validate:"required"`
	Filename   string     `json:"filename"`
	ClassGroup ClassGroup `json:"class_group" validate:"required,classgroup"`
	UploadedAt time.Time  `json:"uploaded_at"`
}
