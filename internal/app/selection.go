package app

import (
	"fmt"
	"strings"

	"Encrypty/internal/api"
	"Encrypty/internal/util"
)

// NoFilesPlaceholder is shown when the picker is empty.
const NoFilesPlaceholder = "No files selected"

// SelectedFile is one entry of the picker's current value.
type SelectedFile struct {
	Name string
	Size int64
}

// Listing is the rendered form of a selection.
type Listing struct {
	Empty bool
	Lines []string
}

// ReportSelection renders the current selection, never a cumulative one:
// "1. name (size)" per file, or Empty when nothing is selected.
func ReportSelection(files []SelectedFile) Listing {
	if len(files) == 0 {
		return Listing{Empty: true}
	}
	lines := make([]string, len(files))
	for i, f := range files {
		lines[i] = fmt.Sprintf("%d. %s (%s)", i+1, f.Name, util.FormatSize(f.Size))
	}
	return Listing{Lines: lines}
}

// String returns the placeholder or the lines joined by newlines.
func (l Listing) String() string {
	if l.Empty {
		return NoFilesPlaceholder
	}
	return strings.Join(l.Lines, "\n")
}

// SelectionOf describes upload files as picker entries.
func SelectionOf(files []api.UploadFile) []SelectedFile {
	out := make([]SelectedFile, len(files))
	for i, f := range files {
		out[i] = SelectedFile{Name: f.Name, Size: f.Size}
	}
	return out
}
