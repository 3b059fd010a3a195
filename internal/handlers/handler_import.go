package handlers

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/hoa_billing_app/internal/apperrors"
	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	portssvc "github.com/SscSPs/hoa_billing_app/internal/core/ports/services"
	"github.com/SscSPs/hoa_billing_app/internal/dto"
	"github.com/SscSPs/hoa_billing_app/internal/middleware"
)

// DefaultMaxUploadBytes caps a single import request when no limit is configured.
const DefaultMaxUploadBytes int64 = 64 << 20

var errUploadTooLarge = fmt.Errorf("%w: upload exceeds size limit", apperrors.ErrValidation)

// importHandler handles HTTP requests that upload legacy export files.
type importHandler struct {
	importService  portssvc.ImportSvc
	maxUploadBytes int64
}

// newImportHandler creates a new importHandler.
func newImportHandler(is portssvc.ImportSvc, maxUploadBytes int64) *importHandler {
	registerValidators()
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &importHandler{
		importService:  is,
		maxUploadBytes: maxUploadBytes,
	}
}

// registerImportRoutes registers routes related to imports.
func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvc, maxUploadBytes int64) {
	h := newImportHandler(importService, maxUploadBytes)

	imports := rg.Group("/imports")
	{
		imports.POST("", h.importMultipart)
		imports.POST("/json", h.importJSON)
	}
}

var registerOnce sync.Once

// registerValidators installs the custom binding rules used by import DTOs.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("uploadpath", func(fl validator.FieldLevel) bool {
				return isUploadPath(fl.Field().String())
			})
		}
	})
}

// isUploadPath reports whether name looks like "{hoaExternalId}/{filename}".
func isUploadPath(name string) bool {
	p := strings.Trim(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"), "/")
	dir, base := path.Split(path.Clean("/" + p))
	return strings.Trim(dir, "/") != "" && base != ""
}

// importMultipart godoc
// @Summary Import legacy export files (multipart)
// @Description Each file part's form field name is the logical "{hoa}/{file}" path; the part filename is used when the field name is not a path.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param clean formData bool false "Clean import flag, echoed in the result"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string "Undecodable upload"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} dto.ImportResponse "At least one HOA or file failed"
// @Security BearerAuth
// @Router /imports [post]
func (h *importHandler) importMultipart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		logger.Warn("Failed to parse multipart import", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart upload: " + err.Error()})
		return
	}

	clean := false
	if v := c.PostForm("clean"); v != "" {
		if clean, err = strconv.ParseBool(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for clean: " + v})
			return
		}
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []domain.UploadedFile
	for _, field := range fields {
		for _, fh := range form.File[field] {
			name := field
			if !isUploadPath(name) {
				name = fh.Filename
			}
			content, err := readPart(fh)
			if err != nil {
				logger.Warn("Failed to read uploaded part", slog.String("field", field), slog.String("error", err.Error()))
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to read %s: %v", name, err)})
				return
			}
			files = append(files, domain.UploadedFile{Name: name, Content: content})
		}
	}

	h.runImport(c, files, clean)
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// importJSON godoc
// @Summary Import legacy export files (JSON)
// @Description Files are base64 encoded, optionally gzip compressed first.
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.ImportJSONRequest true "Files to import"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} dto.ImportResponse "At least one HOA or file failed"
// @Security BearerAuth
// @Router /imports/json [post]
func (h *importHandler) importJSON(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var req dto.ImportJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for import", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	files := make([]domain.UploadedFile, 0, len(req.Files))
	for _, f := range req.Files {
		content, err := h.decodeContent(f)
		if err != nil {
			logger.Warn("Failed to decode uploaded file", slog.String("file", f.Name), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to decode %s: %v", f.Name, err)})
			return
		}
		files = append(files, domain.UploadedFile{Name: f.Name, Content: content})
	}

	h.runImport(c, files, req.Clean)
}

func (h *importHandler) decodeContent(f dto.ImportFileRequest) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(f.Content)
	if err != nil {
		return nil, err
	}
	if !f.Gzip {
		return raw, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, h.maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > h.maxUploadBytes {
		return nil, errUploadTooLarge
	}
	return out, nil
}

func (h *importHandler) runImport(c *gin.Context, files []domain.UploadedFile, clean bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received import upload", slog.Int("files", len(files)), slog.Bool("clean_import", clean))

	result := h.importService.ImportBatch(c.Request.Context(), files, domain.ImportOptions{CleanImport: clean})

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}
