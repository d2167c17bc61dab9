package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/lineup/internal/models"
)

var _ list.Item = uploadItem{}

// uploadItem wraps [models.UploadFile] to implement [list.Item].
type uploadItem struct {
	file models.UploadFile
}

func (i uploadItem) FilterValue() string { return i.file.Name }
func (i uploadItem) Title() string       { return i.file.Name }
func (i uploadItem) Description() string {
	return fmt.Sprintf("%s • %s", humanSize(i.file.Size), i.file.Modified.Format("2006-01-02 15:04"))
}

func (i uploadItem) isCSV() bool {
	return strings.HasSuffix(strings.ToLower(i.file.Name), ".csv")
}

func humanSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
