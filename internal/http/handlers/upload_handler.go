package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/errs"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/media"
)

// DefaultUploadBytes caps a single product image.
const DefaultUploadBytes = 8 << 20

type UploadHandler struct {
	Media    media.Uploader
	MaxBytes int64
	// Dir is the local media root served under /media.
	Dir string
}

// POST /api/uploads
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, errs.Validation("file_required", "file", "Choose an image to upload"))
	}
	limit := h.MaxBytes
	if limit <= 0 {
		limit = DefaultUploadBytes
	}
	if fh.Size > limit {
		return fail(c, errs.Validation("file_too_large", "file", "The image is too large"))
	}
	if !media.IsImageFile(fh.Filename) {
		return fail(c, errs.Validation("file_type", "file", "Only PNG, JPG, GIF and WebP images are accepted"))
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, errs.Internal(err))
	}
	defer f.Close()

	// Extension alone is not trusted; the leading bytes must look like an image.
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fail(c, errs.Internal(err))
	}
	head = head[:n]
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		applog.Security(c, "upload.type.block", map[string]any{"name": fh.Filename})
		return fail(c, errs.Validation("file_type", "file", "Only PNG, JPG, GIF and WebP images are accepted"))
	}

	asset, err := h.Media.Upload(c.UserContext(), fh.Filename, io.MultiReader(bytes.NewReader(head), f))
	if err != nil {
		return fail(c, errs.Internal(err))
	}
	applog.Audit(c, "admin.media.upload", map[string]any{"backend": h.Media.Backend(), "public_id": asset.PublicID, "bytes": fh.Size})
	return success(c, fiber.StatusCreated, "", asset, nil)
}

// GET /media/*
func (h *UploadHandler) Serve(c *fiber.Ctx) error {
	p := c.Params("*")
	full, ok := media.SafePath(h.Dir, p)
	if !ok {
		applog.Security(c, "media.traversal.block", map[string]any{"path": p})
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendFile(full, true)
}
