package files

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/flash"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/logging"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/metrics"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/routes/auth"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/storage"
)

var blobs *storage.Dir

func SetupFilesRoutes(app *fiber.App, dir *storage.Dir) {
	blobs = dir

	app.Get("/download/:id", Download)

	admin := app.Group("/admin", auth.RequireAdmin)
	admin.Post("/upload", Upload)
	admin.Post("/file/delete/:id", DeleteFile)
}

// Upload validates, stores the blob, then records metadata. The metadata
// row is only written after the blob is safely on disk.
func Upload(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	group := strings.TrimSpace(c.FormValue("class_group"))
	fh, err := c.FormFile("file")
	if title == "" || err != nil {
		flash.Set(c, "العنوان والملف مطلوبان.")
		return c.Redirect("/admin/dashboard")
	}
	if !models.IsValidClassGroup(group) {
		flash.Set(c, "اختر قسمًا صحيحًا.")
		return c.Redirect("/admin/dashboard")
	}

	name, err := blobs.Save(fh)
	if err != nil {
		if errors.Is(err, storage.ErrExtensionNotAllowed) {
			flash.Set(c, "صيغة الملف غير مسموحة. المسموح: PDF, DOC, DOCX")
			return c.Redirect("/admin/dashboard")
		}
		logging.L.Errorw("blob save failed", "err", err)
		return fiber.ErrInternalServerError
	}

	asset := &models.FileAsset{
		Title:      title,
		Filename:   name,
		ClassGroup: models.ClassGroup(group),
	}
	if err := database.CreateFileAsset(config.GetDB(), asset); err != nil {
		// Metadata insert failed; drop the orphan blob again.
		_ = blobs.Remove(name)
		logging.L.Errorw("file asset create failed", "err", err)
		return fiber.ErrInternalServerError
	}

	metrics.Uploads.Inc()
	flash.Set(c, "تم رفع الملف.")
	return c.Redirect("/admin/dashboard")
}

// Download streams a stored document. Students only reach files of their
// own class-group; the admin reaches everything; anonymous callers are
// sent to the login page.
func Download(c *fiber.Ctx) error {
	role := auth.CurrentRole(c)
	if role == models.RoleAnonymous {
		return c.Redirect("/")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}
	asset, err := database.GetFileAssetByID(config.GetDB(), id)
	if err != nil {
		logging.L.Errorw("file lookup failed", "id", id, "err", err)
		return fiber.ErrInternalServerError
	}
	if asset == nil {
		return fiber.ErrNotFound
	}

	if role == models.RoleStudent {
		student := auth.CurrentStudent(c)
		if student == nil || student.ClassGroup != asset.ClassGroup {
			return fiber.ErrForbidden
		}
	}

	if !blobs.Exists(asset.Filename) {
		// Metadata without a blob behaves like a missing file.
		return fiber.ErrNotFound
	}

	metrics.Downloads.Inc()
	return c.Download(blobs.FilePath(asset.Filename), asset.Filename)
}

// DeleteFile removes the metadata row and then the blob. A blob already
// gone from disk is tolerated.
func DeleteFile(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}
	asset, err := database.GetFileAssetByID(config.GetDB(), id)
	if err != nil {
		logging.L.Errorw("file lookup failed", "id", id, "err", err)
		return fiber.ErrInternalServerError
	}
	if asset == nil {
		return fiber.ErrNotFound
	}

	if err := database.DeleteFileAsset(config.GetDB(), id); err != nil {
		logging.L.Errorw("file delete failed", "id", id, "err", err)
		return fiber.ErrInternalServerError
	}
	if err := blobs.Remove(asset.Filename); err != nil {
		logging.L.Warnw("blob remove failed", "name", asset.Filename, "err", err)
	}

	flash.Set(c, "تم حذف الملف.")
	return c.Redirect("/admin/dashboard")
}
