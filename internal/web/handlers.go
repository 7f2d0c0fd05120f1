package web

import (
	"html/template"
	"mime/multipart"
	"net/http"

	"Encrypty/internal/api"
	"Encrypty/internal/app"
	"Encrypty/internal/errors"
	"Encrypty/internal/log"
	"Encrypty/internal/render"
)

// Tab names as used in the ?tab= query.
const (
	tabFiles     = "files"
	tabDirectory = "directory"
)

// pageData is everything index.html interpolates.
type pageData struct {
	Tab             string
	Selection       []string
	Directory       string
	Action          string
	Upload          render.Button
	DirectoryButton render.Button
	Results         template.HTML
}

func (s *Server) newPanel() *render.Panel {
	return render.NewPanel(s.client.DownloadURL)
}

func (s *Server) pageFor(tab string, panel *render.Panel) pageData {
	if tab != tabDirectory {
		tab = tabFiles
	}
	return pageData{
		Tab:             tab,
		Upload:          panel.Button(app.TriggerUpload),
		DirectoryButton: panel.Button(app.TriggerDirectory),
		Results:         panel.HTML(),
	}
}

func (s *Server) writePage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render page", log.Err(err))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, s.pageFor(r.URL.Query().Get("tab"), s.newPanel()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && err != http.ErrNotMultipart {
		http.Error(w, "Malformed upload", http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	files, closeAll, err := openParts(r.MultipartForm)
	defer closeAll()
	if err != nil {
		s.logger.Error("open uploaded part", log.Err(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	panel := s.newPanel()
	ctrl := app.NewController(s.client, panel)
	ctrl.SetLogger(s.logger)

	action := r.FormValue("action")
	if _, err := ctrl.SubmitUpload(r.Context(), app.UploadForm{Files: files, Action: action}); err != nil {
		s.logger.Debug("upload finished with error", log.Err(err))
	}

	data := s.pageFor(tabFiles, panel)
	data.Selection = app.ReportSelection(app.SelectionOf(files)).Lines
	data.Action = action
	s.writePage(w, data)
}

func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	panel := s.newPanel()
	ctrl := app.NewController(s.client, panel)
	ctrl.SetLogger(s.logger)

	directory := r.FormValue("directory")
	action := r.FormValue("dir-action")
	if _, err := ctrl.SubmitDirectory(r.Context(), app.DirectoryForm{Directory: directory, Action: action}); err != nil {
		s.logger.Debug("directory submission finished with error", log.Err(err))
	}

	data := s.pageFor(tabDirectory, panel)
	data.Directory = directory
	data.Action = action
	s.writePage(w, data)
}

// openParts opens every "files" part in form order. The returned func
// closes whatever was opened, also on error.
func openParts(form *multipart.Form) ([]api.UploadFile, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	if form == nil {
		return nil, closeAll, nil
	}

	headers := form.File["files"]
	files := make([]api.UploadFile, 0, len(headers))
	for _, fh := range headers {
		// Browsers send an empty part when nothing was picked.
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, errors.NewFileError("open", fh.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, api.UploadFile{Name: fh.Filename, Size: fh.Size, Content: f})
	}
	return files, closeAll, nil
}
