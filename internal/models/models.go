package models

import "time"

// Artist represents a performer from the artist registry.
//
// Read-only from this system's perspective; slug and image URL come from the
// canonical registry record.
type Artist struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl"`
}

// LineupRow is the unit of CSV output: one extracted artist at one festival edition.
type LineupRow struct {
	FestivalName string
	Edition      string
	ArtistName   string
}

// Reconciliation partitions extracted names into registry matches and unknowns.
//
// Both slices preserve the order of the parsed name list.
type Reconciliation struct {
	Existing []Artist
	New      []string
}

// ExtractionSummary is the JSON body returned by POST /extract on success.
type ExtractionSummary struct {
	Success         bool     `json:"success"`
	FestivalName    string   `json:"festival_name"`
	Year            string   `json:"year"`
	ExistingArtists []Artist `json:"existing_artists"`
	NewArtists      []string `json:"new_artists"`
	TotalArtists    int      `json:"total_artists"`
	CSVFilename     string   `json:"csv_filename"`
	CSVDownload     string   `json:"csv_download"`
}

// UploadFile describes a generated file in the uploads directory.
type UploadFile struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}
