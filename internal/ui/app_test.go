package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"Encrypty/internal/api"
	"Encrypty/internal/api/apitest"
	"Encrypty/internal/app"
	"Encrypty/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

func newTestApp(t *testing.T) (*App, *apitest.Backend) {
	t.Helper()
	backend := apitest.Start(t)
	client, err := api.NewClient(backend.URL)
	if err != nil {
		t.Fatal(err)
	}
	a := newApp(test.NewApp(), "test", client)
	t.Cleanup(func() {
		a.wait()
		a.Window.Close()
		test.NewApp()
	})
	return a, backend
}

// eventually polls cond until it holds or a second has passed.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func tempFiles(t *testing.T, contents map[string]string, order ...string) []fyne.URI {
	t.Helper()
	dir := t.TempDir()
	uris := make([]fyne.URI, 0, len(order))
	for _, name := range order {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents[name]), 0644); err != nil {
			t.Fatal(err)
		}
		uris = append(uris, storage.NewFileURI(path))
	}
	return uris
}

func TestInitialState(t *testing.T) {
	a, _ := newTestApp(t)

	if got, _ := a.bound.Selection.Get(); got != app.NoFilesPlaceholder {
		t.Errorf("selection = %q", got)
	}
	if a.results.container.Visible() {
		t.Error("results should start hidden")
	}
	if a.uploadBtn.Text != app.UploadLabel || a.dirBtn.Text != app.DirectoryLabel {
		t.Errorf("button labels = %q, %q", a.uploadBtn.Text, a.dirBtn.Text)
	}
	if a.uploadAction.Selected != "Encrypt" {
		t.Errorf("default action = %q", a.uploadAction.Selected)
	}
}

func TestSelectionListing(t *testing.T) {
	a, _ := newTestApp(t)

	uris := tempFiles(t, map[string]string{"a.txt": "hello", "b.bin": strings.Repeat("x", 2048)}, "a.txt", "b.bin")
	a.setSelection(uris)

	want := "1. a.txt (5 Bytes)\n2. b.bin (2 KB)"
	if got, _ := a.bound.Selection.Get(); got != want {
		t.Errorf("selection = %q, want %q", got, want)
	}

	// A new pick replaces the listing rather than adding to it
	a.setSelection(uris[1:])
	if got, _ := a.bound.Selection.Get(); got != "1. b.bin (2 KB)" {
		t.Errorf("selection after re-pick = %q", got)
	}

	a.setSelection(nil)
	if got, _ := a.bound.Selection.Get(); got != app.NoFilesPlaceholder {
		t.Errorf("selection after clearing = %q", got)
	}
}

func TestUploadWithoutSelection(t *testing.T) {
	a, backend := newTestApp(t)

	test.Tap(a.uploadBtn)
	a.wait()

	eventually(t, "error banner", func() bool {
		return a.results.banner.Text() == "✗ Error: Please select at least one file"
	})
	if !a.results.container.Visible() {
		t.Error("error view should be visible")
	}
	if backend.Requests() != 0 {
		t.Error("backend must not be contacted")
	}
}

func TestUploadSuccess(t *testing.T) {
	a, backend := newTestApp(t)

	a.setSelection(tempFiles(t, map[string]string{"a.txt": "one", "b.txt": "two"}, "a.txt", "b.txt"))
	a.uploadAction.SetSelected("Decrypt")

	test.Tap(a.uploadBtn)
	a.wait()

	eventually(t, "success banner", func() bool {
		return a.results.banner.Text() == "✓ Success! Successfully decrypted 2 file(s)"
	})
	eventually(t, "idle button", func() bool {
		return a.uploadBtn.Text == app.UploadLabel && !a.uploadBtn.Disabled()
	})

	links := a.results.downloads.Objects
	if len(links) != 2 {
		t.Fatalf("download links = %d, want 2", len(links))
	}
	link := links[1].(*widget.Hyperlink)
	if link.Text != "Download b.txt" || link.URL.String() != backend.URL+"/api/download/b.txt" {
		t.Errorf("link = %q -> %s", link.Text, link.URL)
	}
	if !a.results.downloads.Visible() {
		t.Error("download area should be visible")
	}

	uploads := backend.Uploads()
	if len(uploads) != 1 || uploads[0].Files["a.txt"] != "one" {
		t.Errorf("uploads = %+v", uploads)
	}
}

func TestDirectorySubmission(t *testing.T) {
	a, backend := newTestApp(t)
	backend.Dirs["/srv/data"] = 7

	a.dirEntry.SetText("/srv/data")
	test.Tap(a.dirBtn)
	a.wait()

	eventually(t, "processed count", func() bool {
		return a.results.count.Visible() && a.results.count.Text == "Processed 7 file(s)"
	})
	if a.results.downloads.Visible() {
		t.Error("directory flow never shows downloads")
	}

	// An error replaces the success view
	a.dirEntry.SetText("/missing")
	test.Tap(a.dirBtn)
	a.wait()

	eventually(t, "error banner", func() bool {
		return a.results.banner.Text() == "✗ Error: Invalid directory path"
	})
	if a.results.count.Visible() {
		t.Error("error view should hide the processed count")
	}
}

func TestBanner(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	b := NewBanner()
	b.SetOutcome("✓ Success! ok", true)
	if b.Text() != "✓ Success! ok" || b.color != util.GREEN {
		t.Errorf("success banner = %q %v", b.Text(), b.color)
	}

	b.SetOutcome("✗ Error: bad", false)
	if b.color != util.RED {
		t.Errorf("error banner color = %v", b.color)
	}
	if b.MinSize().Width <= 0 {
		t.Error("banner with text should have a width")
	}
}

func TestTheme(t *testing.T) {
	th := NewTheme()
	if th.Color("success", 0) != util.GREEN {
		t.Error("success color should match the banner")
	}
	if th.Size("padding") != 6 {
		t.Errorf("padding = %v", th.Size("padding"))
	}
}
