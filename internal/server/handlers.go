package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lineup/internal/models"
	"github.com/desertthunder/lineup/internal/shared"
	"github.com/desertthunder/lineup/internal/tasks"
	"github.com/desertthunder/lineup/internal/web"
)

// maxUploadBytes caps multipart request bodies at 5MB.
const maxUploadBytes = 5 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// IndexHandler serves the upload form page.
type IndexHandler struct {
	renderer *web.Renderer
	cdnURL   string
	logger   *log.Logger
}

// NewIndexHandler creates the handler for GET /.
func NewIndexHandler(renderer *web.Renderer, cdnURL string, logger *log.Logger) *IndexHandler {
	return &IndexHandler{renderer: renderer, cdnURL: cdnURL, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *IndexHandler) Routes() []string {
	return []string{"/{$}"}
}

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Index(w, h.cdnURL); err != nil {
		h.logger.Error("failed to render index", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
	}
}

// ExtractHandler runs the extraction pipeline for POST /extract.
type ExtractHandler struct {
	engine tasks.ExtractionEngine
	logger *log.Logger
}

// NewExtractHandler creates the handler for POST /extract.
func NewExtractHandler(engine tasks.ExtractionEngine, logger *log.Logger) *ExtractHandler {
	return &ExtractHandler{engine: engine, logger: logger}
}

// ServeHTTP validates the multipart upload, runs the pipeline, and maps
// error kinds to status codes: validation failures are 400, extraction
// failures 500, both as {"error": message}.
func (h *ExtractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, shared.ErrNoImage.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, shared.ErrNoImage.Error())
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read upload", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	result, err := h.engine.Run(r.Context(), nil, tasks.ExtractionRequest{
		Image:        image,
		Filename:     header.Filename,
		FestivalName: r.FormValue("festival_name"),
		Year:         r.FormValue("year"),
	})
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("extraction failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("extraction complete",
		"festival", result.FestivalName,
		"year", result.Year,
		"artists", len(result.Artists),
		"csv", result.CSVFilename,
	)

	writeJSON(w, http.StatusOK, result.Summary())
}

// UploadsHandler lists and serves generated files for GET /uploads and
// GET /uploads/{filename}.
type UploadsHandler struct {
	dir    string
	logger *log.Logger
}

// NewUploadsHandler creates the handler for the uploads routes.
func NewUploadsHandler(dir string, logger *log.Logger) *UploadsHandler {
	return &UploadsHandler{dir: dir, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *UploadsHandler) Routes() []string {
	return []string{"/uploads", "/uploads/"}
}

func (h *UploadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/uploads")
	name = strings.TrimPrefix(name, "/")

	if name == "" {
		h.list(w)
		return
	}

	h.serveFile(w, r, name)
}

// list responds with all generated files, newest first.
func (h *UploadsHandler) list(w http.ResponseWriter) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusOK, map[string][]models.UploadFile{"files": {}})
			return
		}
		h.logger.Error("failed to read uploads directory", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list uploads")
		return
	}

	files := make([]models.UploadFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, models.UploadFile{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})

	writeJSON(w, http.StatusOK, map[string][]models.UploadFile{"files": files})
}

// serveFile serves one stored file, rejecting any path that escapes the
// uploads directory.
func (h *UploadsHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	path := filepath.Join(h.dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	http.ServeFile(w, r, path)
}
