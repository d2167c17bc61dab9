package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lineup/internal/models"
	"github.com/desertthunder/lineup/internal/shared"
	"github.com/desertthunder/lineup/internal/ui"
	"github.com/urfave/cli/v3"
)

// UploadsList prints the generated files in the uploads directory, newest first.
func (r *Runner) UploadsList(ctx context.Context, cmd *cli.Command) error {
	dir := r.config.Uploads.Dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return r.writePlain("No uploads yet (%s does not exist)\n", dir)
		}
		return fmt.Errorf("failed to read uploads directory: %w", err)
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

	if cmd.Bool("json") {
		return r.writeJSON(map[string][]models.UploadFile{"files": files}, true)
	}

	if len(files) == 0 {
		return r.writePlain("No uploads yet\n")
	}

	for _, file := range files {
		r.writePlain("%s\t%d\t%s\n", file.Modified.Format("2006-01-02 15:04"), file.Size, file.Name)
	}
	return nil
}

// UploadsUI launches the interactive terminal browser for generated files.
func (r *Runner) UploadsUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/lineup-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(r.config.Uploads.Dir)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
