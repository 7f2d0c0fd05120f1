// Package apitest provides an in-memory fake of the Encrypty backend for tests.
// It follows the reference backend's behavior: uploads are "processed" by
// echoing the file names, directories are looked up in a fixed table, and
// every processed file becomes downloadable.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Upload records one multipart submission.
type Upload struct {
	Action    string
	Files     map[string]string // name -> content
	Order     []string
	RequestID string
}

// DirectoryCall records one directory submission.
type DirectoryCall struct {
	Directory   string
	Action      string
	ContentType string
	RequestID   string
}

// Backend is a running fake backend.
type Backend struct {
	*httptest.Server

	mu          sync.Mutex
	requests    int
	uploads     []Upload
	directories []DirectoryCall
	stored      map[string]string

	// Dirs maps known directory paths to their file counts.
	Dirs map[string]int

	// Output is returned in the "output" field of successful responses.
	Output string

	// Override, when set, answers every submission instead of the default logic.
	Override http.HandlerFunc
}

// NewBackend starts a fake backend; it is closed automatically via t.Cleanup
// when used through Start.
func NewBackend() *Backend {
	b := &Backend{
		stored: make(map[string]string),
		Dirs:   make(map[string]int),
		Output: "Processed by fake backend\n",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/encrypt", b.counted(b.handleEncrypt))
	mux.HandleFunc("/api/process-directory", b.counted(b.handleDirectory))
	mux.HandleFunc("/api/download/", b.handleDownload)

	b.Server = httptest.NewServer(mux)
	return b
}

// Cleanup is the subset of testing.TB used by Start.
type Cleanup interface {
	Cleanup(func())
}

// Start creates a backend that is closed when the test ends.
func Start(t Cleanup) *Backend {
	b := NewBackend()
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) counted(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests++
		override := b.Override
		b.mu.Unlock()

		if override != nil {
			override(w, r)
			return
		}
		h(w, r)
	}
}

// Requests returns how many submissions reached the backend.
func (b *Backend) Requests() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

// Uploads returns a copy of the recorded uploads.
func (b *Backend) Uploads() []Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Upload(nil), b.uploads...)
}

// Directories returns a copy of the recorded directory calls.
func (b *Backend) Directories() []DirectoryCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]DirectoryCall(nil), b.directories...)
}

// Store makes a file downloadable.
func (b *Backend) Store(name, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stored[name] = content
}

// WriteJSON writes v with the given status, as the backend does.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "No files provided"})
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "No files provided"})
		return
	}

	action := strings.ToLower(r.FormValue("action"))
	if action == "" {
		action = "encrypt"
	}

	up := Upload{Action: action, Files: make(map[string]string), RequestID: r.Header.Get("X-Request-ID")}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error: " + err.Error()})
			return
		}
		data, _ := io.ReadAll(f)
		_ = f.Close()
		up.Files[fh.Filename] = string(data)
		up.Order = append(up.Order, fh.Filename)
	}

	b.mu.Lock()
	b.uploads = append(b.uploads, up)
	for name, content := range up.Files {
		b.stored[name] = content
	}
	output := b.Output
	b.mu.Unlock()

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Successfully %sed %d file(s)", action, len(up.Order)),
		"files":   up.Order,
		"output":  output,
	})
}

func (b *Backend) handleDirectory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Directory string `json:"directory"`
		Action    string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Server error: " + err.Error()})
		return
	}

	b.mu.Lock()
	b.directories = append(b.directories, DirectoryCall{
		Directory:   body.Directory,
		Action:      body.Action,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
	})
	count, ok := b.Dirs[strings.TrimSpace(body.Directory)]
	output := b.Output
	b.mu.Unlock()

	if strings.TrimSpace(body.Directory) == "" {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Directory path not provided"})
		return
	}
	if !ok {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid directory path"})
		return
	}

	action := strings.ToLower(body.Action)
	if action == "" {
		action = "encrypt"
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    fmt.Sprintf("Successfully %sed files in directory", action),
		"file_count": count,
		"output":     output,
	})
}

func (b *Backend) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/download/")

	b.mu.Lock()
	content, ok := b.stored[name]
	b.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = io.WriteString(w, content)
}
