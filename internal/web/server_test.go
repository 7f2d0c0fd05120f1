package web

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"Encrypty/internal/api"
	"Encrypty/internal/api/apitest"
)

func newTestServer(t *testing.T) (*Server, *apitest.Backend) {
	t.Helper()
	backend := apitest.Start(t)
	client, err := api.NewClient(backend.URL)
	if err != nil {
		t.Fatal(err)
	}
	srv, err := NewServer(client, nil)
	if err != nil {
		t.Fatal(err)
	}
	return srv, backend
}

func uploadBody(t *testing.T, action string, files map[string]string, order ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range order {
		part, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(part, files[name])
	}
	if action != "" {
		mw.WriteField("action", action)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestIndex(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		active string
	}{
		{"default tab", "/", `id="files-tab" class="tab-content active"`},
		{"directory tab", "/?tab=directory", `id="directory-tab" class="tab-content active"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.active) {
				t.Errorf("page missing %q", tt.active)
			}
			if !strings.Contains(body, "No files selected") {
				t.Error("empty selection placeholder missing")
			}
			if !strings.Contains(body, `<div id="results" hidden>`) {
				t.Error("results should start hidden")
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers missing")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestSubmitUpload(t *testing.T) {
	srv, backend := newTestServer(t)

	body, ctype := uploadBody(t, "encrypt", map[string]string{"a.txt": "alpha", "b.txt": "bravo!"}, "a.txt", "b.txt")
	req := httptest.NewRequest(http.MethodPost, "/submit/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	page := rec.Body.String()

	if !strings.Contains(page, "Successfully encrypted 2 file(s)") {
		t.Error("success message missing")
	}
	if n := strings.Count(page, `class="download-link"`); n != 2 {
		t.Errorf("download links = %d, want 2", n)
	}
	if !strings.Contains(page, backend.URL+"/api/download/a.txt") {
		t.Error("download href should point at the backend")
	}
	if !strings.Contains(page, "1. a.txt (5 Bytes)") || !strings.Contains(page, "2. b.txt (6 Bytes)") {
		t.Error("selection listing missing")
	}

	uploads := backend.Uploads()
	if len(uploads) != 1 {
		t.Fatalf("uploads = %d", len(uploads))
	}
	if uploads[0].Files["b.txt"] != "bravo!" {
		t.Errorf("forwarded content = %q", uploads[0].Files["b.txt"])
	}
}

func TestSubmitUploadWithoutFiles(t *testing.T) {
	srv, backend := newTestServer(t)

	body, ctype := uploadBody(t, "encrypt", nil)
	req := httptest.NewRequest(http.MethodPost, "/submit/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "Please select at least one file") {
		t.Error("validation message missing")
	}
	if backend.Requests() != 0 {
		t.Error("backend must not be contacted")
	}
}

func TestSubmitDirectory(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.Dirs["/srv/data"] = 3

	form := url.Values{"directory": {"  /srv/data "}, "dir-action": {"decrypt"}}
	req := httptest.NewRequest(http.MethodPost, "/submit/directory", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	page := rec.Body.String()
	if !strings.Contains(page, "Processed 3 file(s)") {
		t.Errorf("processed count missing")
	}
	if !strings.Contains(page, `<div id="download-links" hidden>`) {
		t.Error("directory flow has no downloads")
	}
	if !strings.Contains(page, `id="directory-tab" class="tab-content active"`) {
		t.Error("directory tab should stay active")
	}

	dirs := backend.Directories()
	if len(dirs) != 1 || dirs[0].Directory != "/srv/data" || dirs[0].Action != "decrypt" {
		t.Errorf("directories = %+v", dirs)
	}
}

func TestSubmitEscapesBackendError(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.Override = func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "<script>alert(1)</script>"})
	}

	form := url.Values{"directory": {"/x"}, "dir-action": {"encrypt"}}
	req := httptest.NewRequest(http.MethodPost, "/submit/directory", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	page := rec.Body.String()
	if strings.Contains(page, "<script>alert(1)</script>") {
		t.Error("backend error was not escaped")
	}
	if !strings.Contains(page, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("escaped error missing")
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("ListenAndServe = %v", err)
	}
}
