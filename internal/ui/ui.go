package ui

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lineup/internal/models"
)

// previewRowLimit caps how many CSV rows the preview loads.
const previewRowLimit = 200

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FileListView ViewState = iota
	PreviewView
)

// Model represents the TUI application state.
type Model struct {
	dir      string
	view     ViewState
	width    int
	height   int
	fileList list.Model
	files    []models.UploadFile
	preview  previewLoadedMsg
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a TUI model browsing the given uploads directory.
func NewModel(dir string) *Model {
	return &Model{
		dir:  dir,
		view: FileListView,
		help: help.New(),
		keys: newKeyMap(),
	}
}

// Init loads the uploads directory listing.
func (m *Model) Init() tea.Cmd {
	return m.loadFiles()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.fileList.Width() == 0 {
			m.fileList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FileListView:
			return m.handleFileListKeys(msg)
		case PreviewView:
			return m.handlePreviewKeys(msg)
		}

	case filesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.files = msg.files
		items := make([]list.Item, len(msg.files))
		for i, file := range msg.files {
			items[i] = uploadItem{file: file}
		}
		m.fileList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.fileList.Title = fmt.Sprintf("Uploads (%s)", m.dir)
		m.fileList.SetSize(m.width-4, m.height-8)
		return m, nil

	case previewLoadedMsg:
		m.preview = msg
		m.view = PreviewView
		return m, nil
	}

	if m.view == FileListView {
		var cmd tea.Cmd
		m.fileList, cmd = m.fileList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case FileListView:
		return m.renderFileList()
	case PreviewView:
		return m.renderPreview()
	default:
		return ""
	}
}

func (m *Model) handleFileListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.loadFiles()
	case "enter":
		selected := m.fileList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(uploadItem); ok {
				return m, m.loadPreview(item)
			}
		}
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = FileListView
		m.preview = previewLoadedMsg{}
		return m, nil
	}
	return m, nil
}

func (m *Model) loadFiles() tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(m.dir)
		if err != nil {
			if os.IsNotExist(err) {
				return filesLoadedMsg{files: nil}
			}
			return filesLoadedMsg{err: err}
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

		return filesLoadedMsg{files: files}
	}
}

func (m *Model) loadPreview(item uploadItem) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(m.dir, item.file.Name)

		if !item.isCSV() {
			return previewLoadedMsg{
				name: item.file.Name,
				raw:  fmt.Sprintf("%s (%s)\n\nBinary file, no preview.", item.file.Name, humanSize(item.file.Size)),
			}
		}

		f, err := os.Open(path)
		if err != nil {
			return previewLoadedMsg{name: item.file.Name, err: err}
		}
		defer f.Close()

		reader := csv.NewReader(f)
		var rows [][]string
		truncated := false
		for {
			row, err := reader.Read()
			if err != nil {
				break
			}
			if len(rows) >= previewRowLimit {
				truncated = true
				break
			}
			rows = append(rows, row)
		}

		return previewLoadedMsg{name: item.file.Name, rows: rows, truncat: truncated}
	}
}

func (m *Model) renderFileList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.fileList.View(), helpView)
}

func (m *Model) renderPreview() string {
	title := styles.title.Render(m.preview.name)
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.preview.err != nil {
		body := styles.err.Render(fmt.Sprintf("Failed to read file: %v", m.preview.err))
		return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
	}

	if m.preview.raw != "" {
		return fmt.Sprintf("%s\n%s\n\n%s", title, m.preview.raw, helpView)
	}

	var sb strings.Builder
	for i, row := range m.preview.rows {
		line := strings.Join(row, " | ")
		if i == 0 {
			line = styles.ok.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if m.preview.truncat {
		sb.WriteString(styles.warn.Render(fmt.Sprintf("... truncated at %d rows", previewRowLimit)))
		sb.WriteString("\n")
	}
	if len(m.preview.rows) == 0 {
		sb.WriteString(styles.help.Render("Empty file"))
		sb.WriteString("\n")
	}

	return fmt.Sprintf("%s\n%s\n%s", title, sb.String(), helpView)
}
