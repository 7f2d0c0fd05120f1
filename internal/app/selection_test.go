package app

import (
	"strings"
	"testing"

	"Encrypty/internal/api"
)

func TestReportSelection(t *testing.T) {
	tests := []struct {
		name  string
		files []SelectedFile
		want  string
	}{
		{"empty", nil, NoFilesPlaceholder},
		{"one small file", []SelectedFile{{Name: "name", Size: 500}}, "1. name (500 Bytes)"},
		{"one 2 KB file", []SelectedFile{{Name: "name", Size: 2048}}, "1. name (2 KB)"},
		{"zero bytes", []SelectedFile{{Name: "empty.txt", Size: 0}}, "1. empty.txt (0 Bytes)"},
		{
			"several files",
			[]SelectedFile{{Name: "a.txt", Size: 1536}, {Name: "b.bin", Size: 3 * 1024 * 1024}},
			"1. a.txt (1.5 KB)\n2. b.bin (3 MB)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReportSelection(tt.files).String(); got != tt.want {
				t.Errorf("ReportSelection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportSelectionIsNotCumulative(t *testing.T) {
	first := ReportSelection([]SelectedFile{{Name: "a", Size: 1}, {Name: "b", Size: 2}})
	second := ReportSelection([]SelectedFile{{Name: "c", Size: 3}})

	if len(first.Lines) != 2 {
		t.Fatalf("first listing has %d lines", len(first.Lines))
	}
	if len(second.Lines) != 1 || !strings.HasPrefix(second.Lines[0], "1. c") {
		t.Errorf("second listing should only describe the new selection: %v", second.Lines)
	}
}

func TestSelectionOf(t *testing.T) {
	files := []api.UploadFile{{Name: "x", Size: 10}, {Name: "y", Size: 20}}
	sel := SelectionOf(files)

	if len(sel) != 2 || sel[1].Name != "y" || sel[1].Size != 20 {
		t.Errorf("SelectionOf() = %+v", sel)
	}
}
