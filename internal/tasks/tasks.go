package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/lineup/internal/formatter"
	"github.com/desertthunder/lineup/internal/models"
	"github.com/desertthunder/lineup/internal/services"
	"github.com/desertthunder/lineup/internal/shared"
)

// Defaults applied when the request omits festival metadata.
const (
	DefaultFestivalName = "Unknown Festival"
	DefaultYear         = "2026"
)

// ExtractionRequest carries one uploaded image through the pipeline.
//
// Ephemeral: created per call, discarded after the response.
type ExtractionRequest struct {
	Image        []byte // Raw image bytes
	Filename     string // Declared filename; the extension drives validation
	FestivalName string // Defaults to DefaultFestivalName
	Year         string // Defaults to DefaultYear
}

// ExtractionResult contains all data produced by a pipeline run.
type ExtractionResult struct {
	FestivalName   string                 // Festival name used for every row
	Year           string                 // Edition used for every row
	MediaType      string                 // MIME type sent to the vision model
	Artists        []string               // Parsed names, model order, duplicates preserved
	Reconciliation *models.Reconciliation // Registry partition of Artists
	CSV            []byte                 // Generated CSV (header + one row per artist)
	ImageFilename  string                 // Persisted image name (empty until persisted)
	CSVFilename    string                 // Persisted CSV name (empty until persisted)
}

// Summary converts the result into the JSON response shape, with the
// download path rooted at /uploads.
func (r *ExtractionResult) Summary() *models.ExtractionSummary {
	return &models.ExtractionSummary{
		Success:         true,
		FestivalName:    r.FestivalName,
		Year:            r.Year,
		ExistingArtists: r.Reconciliation.Existing,
		NewArtists:      r.Reconciliation.New,
		TotalArtists:    len(r.Artists),
		CSVFilename:     r.CSVFilename,
		CSVDownload:     "/uploads/" + r.CSVFilename,
	}
}

// ExtractionEngine defines the lineup extraction operations.
type ExtractionEngine interface {
	// Extract runs the pipeline without persistence: validate, call the
	// vision model, parse, reconcile, generate CSV.
	Extract(ctx context.Context, progress chan<- ProgressUpdate, req ExtractionRequest) (*ExtractionResult, error)

	// Run performs a full extraction including writing the image and CSV
	// to the uploads directory.
	Run(ctx context.Context, progress chan<- ProgressUpdate, req ExtractionRequest) (*ExtractionResult, error)
}

// Reconciler is the registry dependency of the engine.
//
// This abstraction decouples the pipeline from the concrete repository and
// keeps the fail-open policy testable.
type Reconciler interface {
	Reconcile(names []string) (*models.Reconciliation, error)
}

// LineupEngine implements ExtractionEngine.
type LineupEngine struct {
	extractor  services.Extractor
	artists    Reconciler
	uploadsDir string
	now        func() time.Time
}

// NewLineupEngine creates a LineupEngine with the provided dependencies.
//
// artists may be nil when no registry is configured; reconciliation then
// reports every name as new.
func NewLineupEngine(extractor services.Extractor, artists Reconciler, uploadsDir string) *LineupEngine {
	return &LineupEngine{
		extractor:  extractor,
		artists:    artists,
		uploadsDir: uploadsDir,
		now:        time.Now,
	}
}

// Extract runs validation through CSV generation, leaving persistence to the caller.
//
// Error kinds: validation failures (bad upload, no artists) wrap
// [shared.ErrValidation]; everything downstream of the vision call wraps
// [shared.ErrExtraction] with the underlying message.
func (e *LineupEngine) Extract(ctx context.Context, progress chan<- ProgressUpdate, req ExtractionRequest) (*ExtractionResult, error) {
	if req.FestivalName == "" {
		req.FestivalName = DefaultFestivalName
	}
	if req.Year == "" {
		req.Year = DefaultYear
	}

	send(progress, validateUpdate(1, 5, req.Filename))
	if len(req.Image) == 0 {
		return nil, shared.ErrNoImage
	}
	mediaType, err := formatter.ValidateUpload(req.Filename)
	if err != nil {
		return nil, err
	}

	send(progress, extractUpdate(2, 5, e.extractor.Name()))
	text, err := e.extractor.ExtractText(ctx, req.Image, mediaType)
	if err != nil {
		return nil, shared.ExtractionError(err)
	}

	artists := services.ParseNames(text)
	if len(artists) == 0 {
		return nil, shared.ErrNoArtists
	}

	send(progress, reconcileUpdate(3, 5, len(artists)))
	reconciliation, err := e.reconcile(artists)
	if err != nil {
		return nil, shared.ExtractionError(err)
	}

	send(progress, generateUpdate(4, 5, len(artists)))
	csvData, err := formatter.GenerateCSV(req.FestivalName, req.Year, artists)
	if err != nil {
		return nil, shared.ExtractionError(err)
	}

	return &ExtractionResult{
		FestivalName:   req.FestivalName,
		Year:           req.Year,
		MediaType:      mediaType,
		Artists:        artists,
		Reconciliation: reconciliation,
		CSV:            csvData,
	}, nil
}

// Run performs a full extraction and persists the image/CSV pair to the
// uploads directory under a collision-free base filename.
func (e *LineupEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, req ExtractionRequest) (*ExtractionResult, error) {
	result, err := e.Extract(ctx, progress, req)
	if err != nil {
		return nil, err
	}

	base := formatter.BaseFilename(result.FestivalName, result.Year, e.now())
	imageFilename := base + "." + formatter.Ext(req.Filename)
	csvFilename := base + ".csv"

	send(progress, persistUpdate(5, 5, csvFilename))
	if err := os.MkdirAll(e.uploadsDir, 0755); err != nil {
		return nil, shared.ExtractionError(fmt.Errorf("failed to create uploads directory: %w", err))
	}
	if err := os.WriteFile(filepath.Join(e.uploadsDir, imageFilename), req.Image, 0644); err != nil {
		return nil, shared.ExtractionError(fmt.Errorf("failed to save image: %w", err))
	}
	if err := os.WriteFile(filepath.Join(e.uploadsDir, csvFilename), result.CSV, 0644); err != nil {
		return nil, shared.ExtractionError(fmt.Errorf("failed to save CSV: %w", err))
	}

	result.ImageFilename = imageFilename
	result.CSVFilename = csvFilename
	return result, nil
}

func (e *LineupEngine) reconcile(names []string) (*models.Reconciliation, error) {
	if e.artists == nil {
		return &models.Reconciliation{Existing: []models.Artist{}, New: names}, nil
	}
	return e.artists.Reconcile(names)
}

// send delivers a progress update when a channel is attached.
func send(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress != nil {
		progress <- update
	}
}
