package importer

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"remarkcrm/internal/pkg/response"
)

// Cleaner runs the duplicate cleanup pass after an import, like the
// dashboard always did.
type Cleaner interface {
	RemoveDuplicates(ctx context.Context) (int, error)
}

type Handler struct {
	service  *Service
	cleaner  Cleaner
	seedPath string
}

func NewHandler(service *Service, cleaner Cleaner, seedPath string) *Handler {
	return &Handler{service: service, cleaner: cleaner, seedPath: seedPath}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/imports", h.Upload)
	rg.POST("/imports/seed", h.Seed)
}

// Upload imports a spreadsheet or CSV sent as multipart field "file".
// Any failure resolves to a reportable message; the process never dies
// on a bad file.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing upload file")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "IMPORT_FAILED", "Could not read the uploaded file")
		return
	}
	defer f.Close()

	res, err := h.service.ImportUpload(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		if err == ErrUnsupportedFile {
			response.Error(c, http.StatusUnprocessableEntity, "IMPORT_FAILED", "Unsupported file type, expected xlsx, xls or csv")
			return
		}
		log.Printf("import of %s failed: %v", fileHeader.Filename, err)
		response.Error(c, http.StatusUnprocessableEntity, "IMPORT_FAILED", "Import failed, the file could not be processed")
		return
	}

	removed := h.cleanupAfterImport(c)
	response.Success(c, http.StatusOK, toImportResponse(res, removed))
}

// Seed triggers the one-time seed import against the configured workbook
func (h *Handler) Seed(c *gin.Context) {
	res, err := h.service.SeedFromWorkbook(c.Request.Context(), h.seedPath)
	if err != nil {
		log.Printf("seed import failed: %v", err)
		response.Error(c, http.StatusUnprocessableEntity, "IMPORT_FAILED", "Seed import failed")
		return
	}
	response.Success(c, http.StatusOK, toImportResponse(res, 0))
}

func (h *Handler) cleanupAfterImport(c *gin.Context) int {
	if h.cleaner == nil {
		return 0
	}
	removed, err := h.cleaner.RemoveDuplicates(c.Request.Context())
	if err != nil {
		log.Printf("post-import cleanup failed: %v", err)
		return 0
	}
	return removed
}
