package ui

import (
	"io"
	"os"

	"Encrypty/internal/api"
	"Encrypty/internal/app"
	"Encrypty/internal/errors"
	"Encrypty/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// pickedFile is one entry of the current selection.
type pickedFile struct {
	uri  fyne.URI
	size int64
}

// showFilePicker opens the native file dialog; the chosen file becomes the
// whole selection.
func (a *App) showFilePicker() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.Window)
			return
		}
		if reader == nil {
			return
		}
		uri := reader.URI()
		reader.Close()
		a.setSelection([]fyne.URI{uri})
	}, a.Window)
	fd.Resize(fyne.NewSize(600, 450))
	fd.Show()
}

// onDrop replaces the selection with the dropped files. Folders are skipped;
// the Directory tab covers them.
func (a *App) onDrop(_ fyne.Position, uris []fyne.URI) {
	files := make([]fyne.URI, 0, len(uris))
	for _, u := range uris {
		if ok, _ := storage.CanList(u); ok {
			log.Debug("skipping dropped folder", log.String("uri", u.String()))
			continue
		}
		files = append(files, u)
	}
	a.setSelection(files)
}

// setSelection stores uris as the current selection and refreshes the listing.
func (a *App) setSelection(uris []fyne.URI) {
	picked := make([]pickedFile, len(uris))
	entries := make([]app.SelectedFile, len(uris))
	for i, u := range uris {
		picked[i] = pickedFile{uri: u, size: sizeOf(u)}
		entries[i] = app.SelectedFile{Name: u.Name(), Size: picked[i].size}
	}

	a.selMu.Lock()
	a.selection = picked
	a.selMu.Unlock()

	a.bound.SetSelection(app.ReportSelection(entries))
}

// sizeOf returns the size of a local file URI, or 0 when it cannot be known.
func sizeOf(u fyne.URI) int64 {
	if u.Scheme() != "file" {
		return 0
	}
	info, err := os.Stat(u.Path())
	if err != nil {
		return 0
	}
	return info.Size()
}

// openSelection opens a reader for every selected file.
func (a *App) openSelection() ([]api.UploadFile, error) {
	a.selMu.Lock()
	picked := append([]pickedFile(nil), a.selection...)
	a.selMu.Unlock()

	files := make([]api.UploadFile, 0, len(picked))
	for _, p := range picked {
		r, err := storage.Reader(p.uri)
		if err != nil {
			closeAll(files)
			return nil, errors.NewFileError("open", p.uri.Name(), err)
		}
		files = append(files, api.UploadFile{Name: p.uri.Name(), Size: p.size, Content: r})
	}
	return files, nil
}

func closeAll(files []api.UploadFile) {
	for _, f := range files {
		if c, ok := f.Content.(io.Closer); ok {
			c.Close()
		}
	}
}
