package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/lineup/internal/models"
	"github.com/desertthunder/lineup/internal/shared"
	"github.com/desertthunder/lineup/internal/tasks"
	th "github.com/desertthunder/lineup/internal/testing"
	"github.com/desertthunder/lineup/internal/web"
)

func multipartBody(t *testing.T, filename string, image []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("failed to write image: %v", err)
		}
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func postExtract(t *testing.T, handler http.Handler, filename string, image []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, filename, image, fields)
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body["error"]
}

func TestExtractHandler(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("successful extraction", func(t *testing.T) {
		dir := t.TempDir()
		extractor := &th.MockExtractor{Response: "Skrillex\nFour Tet\nFour Tet"}
		engine := tasks.NewLineupEngine(extractor, nil, dir)
		handler := NewExtractHandler(engine, logger)

		rec := postExtract(t, handler, "lineup.jpg", []byte("jpeg-bytes"), map[string]string{
			"festival_name": "Coachella",
			"year":          "2025",
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var summary models.ExtractionSummary
		if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
			t.Fatalf("failed to decode summary: %v", err)
		}

		if !summary.Success {
			t.Error("expected success true")
		}
		if summary.FestivalName != "Coachella" || summary.Year != "2025" {
			t.Errorf("unexpected metadata: %s/%s", summary.FestivalName, summary.Year)
		}
		if summary.TotalArtists != 3 {
			t.Errorf("expected 3 artists (duplicate preserved), got %d", summary.TotalArtists)
		}
		if summary.CSVDownload != "/uploads/"+summary.CSVFilename {
			t.Errorf("unexpected download path: %s", summary.CSVDownload)
		}

		// Without a registry everything is new
		if len(summary.NewArtists) != 3 || len(summary.ExistingArtists) != 0 {
			t.Errorf("expected all artists new, got %+v", summary)
		}

		th.AssertFileExists(t, filepath.Join(dir, summary.CSVFilename))

		csv := th.MustReadFile(t, filepath.Join(dir, summary.CSVFilename))
		if want := "festival_name,edition,artist_name\n"; !bytes.HasPrefix([]byte(csv), []byte(want)) {
			t.Errorf("CSV missing header: %q", csv)
		}
	})

	t.Run("txt upload rejected before the vision call", func(t *testing.T) {
		extractor := &th.MockExtractor{Response: "Skrillex"}
		engine := tasks.NewLineupEngine(extractor, nil, t.TempDir())
		handler := NewExtractHandler(engine, logger)

		rec := postExtract(t, handler, "notes.txt", []byte("text"), nil)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Invalid file type. Allowed: png, jpg, jpeg, gif, webp" {
			t.Errorf("unexpected error message: %q", got)
		}
		if extractor.Calls != 0 {
			t.Error("vision API must not be called for invalid uploads")
		}
	})

	t.Run("blank model response", func(t *testing.T) {
		extractor := &th.MockExtractor{Response: "\n\n  \n"}
		engine := tasks.NewLineupEngine(extractor, nil, t.TempDir())
		handler := NewExtractHandler(engine, logger)

		rec := postExtract(t, handler, "lineup.png", []byte("png"), nil)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "No artists found in the image" {
			t.Errorf("unexpected error message: %q", got)
		}
	})

	t.Run("missing image field", func(t *testing.T) {
		engine := tasks.NewLineupEngine(&th.MockExtractor{}, nil, t.TempDir())
		handler := NewExtractHandler(engine, logger)

		rec := postExtract(t, handler, "", nil, map[string]string{"festival_name": "Coachella"})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "No image file provided" {
			t.Errorf("unexpected error message: %q", got)
		}
	})

	t.Run("non-multipart body", func(t *testing.T) {
		engine := tasks.NewLineupEngine(&th.MockExtractor{}, nil, t.TempDir())
		handler := NewExtractHandler(engine, logger)

		req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("vision failure yields 500 with message", func(t *testing.T) {
		extractor := &th.MockExtractor{Err: io.ErrUnexpectedEOF}
		engine := tasks.NewLineupEngine(extractor, nil, t.TempDir())
		handler := NewExtractHandler(engine, logger)

		rec := postExtract(t, handler, "lineup.jpg", []byte("jpeg"), nil)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Failed to process image: unexpected EOF" {
			t.Errorf("unexpected error message: %q", got)
		}
	})
}

func TestUploadsHandler(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	listFiles := func(t *testing.T, handler http.Handler) []models.UploadFile {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/uploads", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body map[string][]models.UploadFile
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode listing: %v", err)
		}
		return body["files"]
	}

	t.Run("lists newest first", func(t *testing.T) {
		dir := t.TempDir()
		handler := NewUploadsHandler(dir, logger)

		old := filepath.Join(dir, "older.csv")
		recent := filepath.Join(dir, "newer.csv")
		if err := os.WriteFile(old, []byte("a"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(recent, []byte("bb"), 0644); err != nil {
			t.Fatal(err)
		}
		past := time.Now().Add(-time.Hour)
		if err := os.Chtimes(old, past, past); err != nil {
			t.Fatal(err)
		}

		files := listFiles(t, handler)
		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %d", len(files))
		}
		if files[0].Name != "newer.csv" || files[1].Name != "older.csv" {
			t.Errorf("expected newest first, got %v", files)
		}
		if files[0].Size != 2 {
			t.Errorf("expected size 2, got %d", files[0].Size)
		}
	})

	t.Run("missing directory lists empty", func(t *testing.T) {
		handler := NewUploadsHandler(filepath.Join(t.TempDir(), "nope"), logger)

		if files := listFiles(t, handler); len(files) != 0 {
			t.Errorf("expected empty listing, got %v", files)
		}
	})

	t.Run("serves stored file", func(t *testing.T) {
		dir := t.TempDir()
		handler := NewUploadsHandler(dir, logger)

		if err := os.WriteFile(filepath.Join(dir, "coachella_2025.csv"), []byte("festival_name,edition,artist_name\n"), 0644); err != nil {
			t.Fatal(err)
		}

		req := httptest.NewRequest(http.MethodGet, "/uploads/coachella_2025.csv", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte("festival_name")) {
			t.Error("expected file contents in response")
		}
	})

	t.Run("unknown file is 404", func(t *testing.T) {
		handler := NewUploadsHandler(t.TempDir(), logger)

		req := httptest.NewRequest(http.MethodGet, "/uploads/missing.csv", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("rejects traversal", func(t *testing.T) {
		dir := t.TempDir()
		secret := filepath.Join(dir, "secret.txt")
		if err := os.WriteFile(secret, []byte("secret"), 0644); err != nil {
			t.Fatal(err)
		}

		handler := NewUploadsHandler(filepath.Join(dir, "uploads"), logger)

		req := httptest.NewRequest(http.MethodGet, "/uploads/..%2Fsecret.txt", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code == http.StatusOK {
			t.Error("traversal should not serve files outside the uploads dir")
		}
	})

	t.Run("rejects non-GET", func(t *testing.T) {
		handler := NewUploadsHandler(t.TempDir(), logger)

		req := httptest.NewRequest(http.MethodDelete, "/uploads/file.csv", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestIndexHandler(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	t.Run("renders form", func(t *testing.T) {
		handler := NewIndexHandler(renderer, "https://cdn.example.com/", logger)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
			t.Errorf("unexpected content type %s", ct)
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte("festival_name")) {
			t.Error("expected upload form in response")
		}
	})

	t.Run("rejects POST", func(t *testing.T) {
		handler := NewIndexHandler(renderer, "", logger)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}
