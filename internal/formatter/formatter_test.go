package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lineup/internal/shared"
)

func TestGenerateCSV(t *testing.T) {
	t.Run("header and one row per artist", func(t *testing.T) {
		artists := []string{"Skrillex", "Four Tet", "Four Tet"}

		data, err := GenerateCSV("Coachella", "2025", artists)
		if err != nil {
			t.Fatalf("GenerateCSV failed: %v", err)
		}

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("generated CSV does not parse: %v", err)
		}

		if len(records) != 4 {
			t.Fatalf("expected header + 3 rows, got %d records", len(records))
		}

		if strings.Join(records[0], ",") != "festival_name,edition,artist_name" {
			t.Errorf("unexpected header: %v", records[0])
		}

		for i, artist := range artists {
			row := records[i+1]
			if row[0] != "Coachella" || row[1] != "2025" || row[2] != artist {
				t.Errorf("row %d mismatch: %v", i, row)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		artists := []string{"Skrillex", "Four Tet"}

		first, err := GenerateCSV("Coachella", "2025", artists)
		if err != nil {
			t.Fatalf("GenerateCSV failed: %v", err)
		}
		second, err := GenerateCSV("Coachella", "2025", artists)
		if err != nil {
			t.Fatalf("GenerateCSV failed: %v", err)
		}

		if !bytes.Equal(first, second) {
			t.Error("expected byte-identical output across runs")
		}
	})

	t.Run("quotes fields with commas and quotes", func(t *testing.T) {
		data, err := GenerateCSV(`Rock, "Paper" & Scissors`, "2025", []string{"Tyler, The Creator"})
		if err != nil {
			t.Fatalf("GenerateCSV failed: %v", err)
		}

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("quoted CSV does not parse: %v", err)
		}
		if records[1][0] != `Rock, "Paper" & Scissors` {
			t.Errorf("festival name not round-tripped: %q", records[1][0])
		}
		if records[1][2] != "Tyler, The Creator" {
			t.Errorf("artist name not round-tripped: %q", records[1][2])
		}
	})

	t.Run("no artists yields header only", func(t *testing.T) {
		data, err := GenerateCSV("Coachella", "2025", nil)
		if err != nil {
			t.Fatalf("GenerateCSV failed: %v", err)
		}
		records, _ := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if len(records) != 1 {
			t.Errorf("expected header only, got %d records", len(records))
		}
	})
}

func TestValidateUpload(t *testing.T) {
	t.Run("accepts all allowed extensions", func(t *testing.T) {
		cases := map[string]string{
			"lineup.png":    "image/png",
			"lineup.jpg":    "image/jpeg",
			"lineup.jpeg":   "image/jpeg",
			"lineup.gif":    "image/gif",
			"lineup.webp":   "image/webp",
			"LINEUP.PNG":    "image/png",
			"a.b.c.webp":    "image/webp",
			"festival.JPeG": "image/jpeg",
		}

		for filename, want := range cases {
			mt, err := ValidateUpload(filename)
			if err != nil {
				t.Errorf("%s should be accepted: %v", filename, err)
				continue
			}
			if mt != want {
				t.Errorf("%s: expected media type %s, got %s", filename, want, mt)
			}
		}
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		for _, filename := range []string{"notes.txt", "lineup.pdf", "lineup", "lineup.", "png"} {
			_, err := ValidateUpload(filename)
			if !errors.Is(err, shared.ErrValidation) {
				t.Errorf("%s should be rejected with a validation error, got %v", filename, err)
			}
		}
	})

	t.Run("rejects empty filename", func(t *testing.T) {
		_, err := ValidateUpload("")
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
		if err.Error() != "No file selected" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("MediaType stays total", func(t *testing.T) {
		if mt := MediaType("bmp"); mt != "image/jpeg" {
			t.Errorf("unmapped extension should default to image/jpeg, got %s", mt)
		}
	})
}

func TestFilenames(t *testing.T) {
	now := time.Date(2025, 4, 11, 16, 30, 5, 0, time.UTC)

	t.Run("SanitizeName", func(t *testing.T) {
		cases := map[string]string{
			"Coachella":            "Coachella",
			"Electric Daisy 2025":  "Electric_Daisy_2025",
			"  Rock / en / Seine ": "Rock_en_Seine",
			"../../etc/passwd":     "etc_passwd",
			"***":                  "upload",
			"":                     "upload",
		}
		for in, want := range cases {
			if got := SanitizeName(in); got != want {
				t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
			}
		}
	})

	t.Run("BaseFilename", func(t *testing.T) {
		base := BaseFilename("Electric Daisy", "2025", now)

		if !strings.HasPrefix(base, "Electric_Daisy_2025_20250411_163005_") {
			t.Errorf("unexpected base filename: %s", base)
		}

		suffix := base[strings.LastIndexByte(base, '_')+1:]
		if len(suffix) != 8 {
			t.Errorf("expected 8-char uniqueness suffix, got %q", suffix)
		}

		if other := BaseFilename("Electric Daisy", "2025", now); other == base {
			t.Error("same-second base filenames should differ")
		}
	})

	t.Run("DerivedCSVName", func(t *testing.T) {
		if got := DerivedCSVName("Electric Daisy", "2025"); got != "electric_daisy_2025_lineup.csv" {
			t.Errorf("unexpected derived name: %s", got)
		}
		if got := DerivedCSVName("", "2025"); got != "lineup_2025_lineup.csv" {
			t.Errorf("unexpected derived name for empty festival: %s", got)
		}
	})
}
