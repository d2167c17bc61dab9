package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/lineup/internal/models"
	"github.com/desertthunder/lineup/internal/repositories"
	"github.com/desertthunder/lineup/internal/shared"
	"github.com/urfave/cli/v3"
)

// loadOrCreateConfig loads the config file at path, creating it from the
// embedded template when missing. Falls back to defaults on any failure.
func (r *Runner) loadOrCreateConfig(path string) *shared.Config {
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			return shared.DefaultConfig()
		}
		return config
	}

	r.logger.Info("config file not found, creating from template", "path", path)
	if err := shared.CreateConfigFile(path); err != nil {
		r.logger.Warn("failed to create config file, using defaults", "error", err)
		return shared.DefaultConfig()
	}

	r.logger.Info("config file created", "path", path)
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load created config, using defaults", "error", err)
		return shared.DefaultConfig()
	}
	return config
}

// SetupDatabase initializes the artist registry and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.loadOrCreateConfig(cmd.String("config"))
	config.ApplyEnv()

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupSeed loads artist rows from a CSV file into the registry.
//
// Expected columns: name, optional slug, optional image_url. A header row
// starting with "name" is skipped.
func (r *Runner) SetupSeed(ctx context.Context, cmd *cli.Command) error {
	csvPath := cmd.String("csv")

	config := r.loadOrCreateConfig(cmd.String("config"))
	config.ApplyEnv()

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	artists := repositories.NewArtistRepository(db)
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	seeded := 0
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		name := strings.TrimSpace(record[0])
		if name == "" || (seeded == 0 && skipped == 0 && strings.EqualFold(name, "name")) {
			skipped++
			continue
		}

		artist := models.Artist{Name: name}
		if len(record) > 1 {
			artist.Slug = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			artist.ImageURL = strings.TrimSpace(record[2])
		}

		if err := artists.Create(&artist); err != nil {
			r.logger.Warn("failed to seed artist", "name", name, "error", err)
			skipped++
			continue
		}
		seeded++
	}

	r.logger.Info("seeding complete", "seeded", seeded, "skipped", skipped)
	r.writePlain("Seeded %d artists (%d skipped)\n", seeded, skipped)
	return nil
}
