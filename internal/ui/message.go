package ui

import "github.com/desertthunder/lineup/internal/models"

// filesLoadedMsg carries the uploads directory listing.
type filesLoadedMsg struct {
	files []models.UploadFile
	err   error
}

// previewLoadedMsg carries the contents of a selected file.
type previewLoadedMsg struct {
	name    string
	rows    [][]string
	raw     string
	truncat bool
	err     error
}
