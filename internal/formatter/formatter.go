// package formatter provides lineup CSV generation and upload file naming
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/desertthunder/lineup/internal/models"
)

// CSVHeader is the fixed header row of every generated lineup CSV.
var CSVHeader = []string{"festival_name", "edition", "artist_name"}

// Rows builds one [models.LineupRow] per extracted artist, using the festival
// name and year verbatim for every row.
func Rows(festivalName, year string, artists []string) []models.LineupRow {
	rows := make([]models.LineupRow, 0, len(artists))
	for _, artist := range artists {
		rows = append(rows, models.LineupRow{
			FestivalName: festivalName,
			Edition:      year,
			ArtistName:   artist,
		})
	}
	return rows
}

// GenerateCSV renders lineup rows as CSV with columns: festival_name, edition, artist_name.
//
// Output is deterministic and order-preserving; row count always equals the
// input artist count.
func GenerateCSV(festivalName, year string, artists []string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range Rows(festivalName, year, artists) {
		record := []string{row.FestivalName, row.Edition, row.ArtistName}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
