package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/desertthunder/lineup/internal/formatter"
	"github.com/desertthunder/lineup/internal/shared"
	"github.com/desertthunder/lineup/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Extract runs a one-shot extraction for a local image and writes the CSV next to it.
func (r *Runner) Extract(ctx context.Context, cmd *cli.Command) error {
	imagePath := cmd.StringArg("image")
	if imagePath == "" {
		return fmt.Errorf("%w: image path is required", shared.ErrMissingArgument)
	}

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	festival := cmd.String("festival")
	year := cmd.String("year")

	r.logger.Info("starting extraction", "image", imagePath, "festival", festival, "year", year)

	// Drain progress updates concurrently so the engine never blocks on output
	progressCh := make(chan tasks.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progressCh {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := r.engine.Extract(ctx, progressCh, tasks.ExtractionRequest{
		Image:        image,
		Filename:     imagePath,
		FestivalName: festival,
		Year:         year,
	})
	close(progressCh)
	wg.Wait()

	if err != nil {
		return err
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = formatter.DerivedCSVName(result.FestivalName, result.Year)
	}
	if err := os.WriteFile(outputPath, result.CSV, 0644); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if cmd.Bool("json") {
		result.CSVFilename = outputPath
		summary := result.Summary()
		// The CSV lives on local disk, not under the server's /uploads route
		summary.CSVDownload = ""
		return r.writeJSON(summary, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Extraction Complete")
	r.writePlain("Festival: %s (%s)\n", result.FestivalName, result.Year)
	r.writePlain("Artists: %d total, %d known, %d new\n",
		len(result.Artists), len(result.Reconciliation.Existing), len(result.Reconciliation.New))
	r.writePlain("CSV: %s\n", outputPath)

	if len(result.Reconciliation.New) > 0 {
		r.writePlain("\nNew artists:\n")
		for _, name := range result.Reconciliation.New {
			r.writePlain("  - %s\n", name)
		}
	}

	return nil
}
