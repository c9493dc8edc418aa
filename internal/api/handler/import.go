package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kweston/stridelog/internal/api/middleware"
	"github.com/kweston/stridelog/internal/service"
)

// ImportHandler handles activity file import endpoints.
type ImportHandler struct {
	imports       *service.ImportService
	goals         *service.GoalService
	maxBatchFiles int
}

// NewImportHandler creates a new import handler.
// Parameters:
//   - imports: import service instance.
//   - goals: goal service used to re-sync completion after imports.
//   - maxBatchFiles: maximum number of files accepted per request.
// Returns:
//   - *ImportHandler: initialized handler.
func NewImportHandler(imports *service.ImportService, goals *service.GoalService, maxBatchFiles int) *ImportHandler {
	if maxBatchFiles <= 0 {
		maxBatchFiles = 20
	}
	return &ImportHandler{
		imports:       imports,
		goals:         goals,
		maxBatchFiles: maxBatchFiles,
	}
}

// ImportFiles handles POST /api/v1/import: a multipart upload of one or
// more activity files under the "files" field. Results come back in
// submission order, one per file.
func (h *ImportHandler) ImportFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files submitted"})
		return
	}
	if len(uploads) > h.maxBatchFiles {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Too many files in one batch",
		})
		return
	}

	files := make([]service.ImportFile, 0, len(uploads))
	for _, upload := range uploads {
		f, err := upload.Open()
		if err != nil {
			files = append(files, service.ImportFile{Name: upload.Filename})
			continue
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			// An unreadable file still gets its result line; the empty
			// content is classified and rejected downstream.
			content = nil
		}
		files = append(files, service.ImportFile{Name: upload.Filename, Content: content})
	}

	userID := middleware.UserID(c)
	results := h.imports.ImportFiles(c.Request.Context(), userID, files)

	// Imported runs may complete open goals.
	_, _ = h.goals.SyncCompletion(c.Request.Context(), userID, time.Now())

	c.JSON(http.StatusOK, gin.H{"results": results})
}
