// Package storage is the blob store for uploaded documents: a flat
// directory of files referenced by generated name from the files table.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrExtensionNotAllowed reports an upload whose extension is outside
// the allow-list.
var ErrExtensionNotAllowed = errors.New("file extension not allowed")

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9\p{Arabic}._-]+`)

type Dir struct {
	Path string
}

// New ensures the uploads directory exists.
func New(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", path, err)
	}
	return &Dir{Path: path}, nil
}

// AllowedExtension checks the original filename's extension against the
// allow-list, case-insensitively.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// StorageName sanitizes the browser-sent filename and disambiguates it
// with a nanosecond timestamp before the extension, so repeated uploads
// of the same document never collide on disk.
func StorageName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s_%d%s", name, now.UnixNano(), ext)
}

// Save writes the uploaded content under a generated name and returns
// that name. Nothing is recorded in the database here; callers insert
// metadata only after Save succeeds.
func (d *Dir) Save(fh *multipart.FileHeader) (string, error) {
	if !AllowedExtension(fh.Filename) {
		return "", ErrExtensionNotAllowed
	}

	name := StorageName(fh.Filename, time.Now())
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(d.Path, name))
	if err != nil {
		return "", fmt.Errorf("create blob %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filepath.Join(d.Path, name))
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close blob %s: %w", name, err)
	}
	return name, nil
}

// Exists reports whether the named blob is on disk.
func (d *Dir) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(d.Path, name))
	return err == nil
}

// FilePath returns the on-disk path for a stored name.
func (d *Dir) FilePath(name string) string {
	return filepath.Join(d.Path, name)
}

// Remove deletes the named blob. A blob already gone is not an error.
func (d *Dir) Remove(name string) error {
	err := os.Remove(filepath.Join(d.Path, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob %s: %w", name, err)
	}
	return nil
}
