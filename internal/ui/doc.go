// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for browsing generated files:
//  1. [FileListView] : Browse the uploads directory, newest files first
//  2. [PreviewView] : Inspect the contents of a selected CSV
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// File listings and previews load asynchronously via tea.Cmd messages so the
// interface never blocks on disk reads.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
