package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSharedHelpers(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("test message", "key", "value")

		output := buf.String()
		if !strings.Contains(output, "test message") {
			t.Errorf("expected log output to contain message, got: %s", output)
		}
		if !strings.Contains(output, "key") {
			t.Errorf("expected log output to contain key, got: %s", output)
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		child := WithLogger(logger, "component", "http")
		child.Info("request")

		output := buf.String()
		if !strings.Contains(output, "component") || !strings.Contains(output, "http") {
			t.Errorf("expected child logger fields in output, got: %s", output)
		}
	})

	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Debug("hidden")
		if strings.Contains(buf.String(), "hidden") {
			t.Error("debug output should be suppressed at the default level")
		}

		SetLogLevel(logger, log.DebugLevel)
		logger.Debug("visible")
		if !strings.Contains(buf.String(), "visible") {
			t.Error("expected debug output after lowering the level")
		}
	})

	t.Run("GenerateID", func(t *testing.T) {
		id1 := GenerateID()
		id2 := GenerateID()

		if id1 == id2 {
			t.Error("expected unique IDs")
		}
		if len(id1) != 36 {
			t.Errorf("expected UUID length 36, got %d", len(id1))
		}
	})

	t.Run("ShortID", func(t *testing.T) {
		id := ShortID()
		if len(id) != 8 {
			t.Errorf("expected 8-char short ID, got %q", id)
		}
		if strings.Contains(id, "-") {
			t.Errorf("short ID should not contain dashes, got %q", id)
		}
	})
}

func TestRequestErrors(t *testing.T) {
	t.Run("validation errors map to ErrValidation", func(t *testing.T) {
		for _, err := range []error{ErrNoImage, ErrNoFilename, ErrInvalidFileType, ErrNoArtists} {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("%v should wrap ErrValidation", err)
			}
			if errors.Is(err, ErrExtraction) {
				t.Errorf("%v should not wrap ErrExtraction", err)
			}
		}
	})

	t.Run("messages are caller-facing", func(t *testing.T) {
		if got := ErrNoArtists.Error(); got != "No artists found in the image" {
			t.Errorf("unexpected message: %q", got)
		}
		if got := ErrInvalidFileType.Error(); got != "Invalid file type. Allowed: png, jpg, jpeg, gif, webp" {
			t.Errorf("unexpected message: %q", got)
		}
	})

	t.Run("ExtractionError embeds cause", func(t *testing.T) {
		err := ExtractionError(errors.New("api returned 529"))
		if !errors.Is(err, ErrExtraction) {
			t.Error("expected ErrExtraction kind")
		}
		if got := err.Error(); got != "Failed to process image: api returned 529" {
			t.Errorf("unexpected message: %q", got)
		}
	})
}
