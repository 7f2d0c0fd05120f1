package api

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"Encrypty/internal/api/apitest"
	"Encrypty/internal/errors"
)

func newTestClient(t *testing.T, backend *apitest.Backend) *Client {
	t.Helper()
	c, err := NewClient(backend.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"encrypt", ActionEncrypt, false},
		{"Decrypt", ActionDecrypt, false},
		{" ENCRYPT ", ActionEncrypt, false},
		{"", "", true},
		{"shred", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAction(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrInvalidAction) {
			t.Errorf("ParseAction(%q) error should wrap ErrInvalidAction: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "://bad", "localhost:5000"} {
		if _, err := NewClient(raw); err == nil {
			t.Errorf("NewClient(%q) should fail", raw)
		}
	}
}

func TestDownloadURL(t *testing.T) {
	c, err := NewClient("http://backend.local:5000/")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"a.txt", "http://backend.local:5000/api/download/a.txt"},
		{"my file.txt", "http://backend.local:5000/api/download/my%20file.txt"},
		{"../etc/passwd", "http://backend.local:5000/api/download/..%2Fetc%2Fpasswd"},
		{"q?x=1#frag", "http://backend.local:5000/api/download/q%3Fx=1%23frag"},
	}

	for _, tt := range tests {
		if got := c.DownloadURL(tt.name); got != tt.want {
			t.Errorf("DownloadURL(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEncrypt(t *testing.T) {
	backend := apitest.Start(t)
	c := newTestClient(t, backend)

	resp, err := c.Encrypt(context.Background(), UploadRequest{
		Action: ActionEncrypt,
		Files: []UploadFile{
			{Name: "a.txt", Content: strings.NewReader("alpha")},
			{Name: "b.txt", Content: strings.NewReader("bravo")},
		},
	})
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if resp.Message != "Successfully encrypted 2 file(s)" {
		t.Errorf("Message = %q", resp.Message)
	}
	if len(resp.Files) != 2 || resp.Files[0] != "a.txt" || resp.Files[1] != "b.txt" {
		t.Errorf("Files = %v", resp.Files)
	}
	if resp.Output == nil {
		t.Error("Output should be present")
	}

	uploads := backend.Uploads()
	if len(uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(uploads))
	}
	if uploads[0].Action != "encrypt" {
		t.Errorf("action = %q", uploads[0].Action)
	}
	if uploads[0].Files["b.txt"] != "bravo" {
		t.Errorf("b.txt content = %q", uploads[0].Files["b.txt"])
	}
	if uploads[0].RequestID == "" {
		t.Error("request id header should be sent")
	}
}

func TestEncryptForwardsRequestID(t *testing.T) {
	backend := apitest.Start(t)
	c := newTestClient(t, backend)

	ctx := WithRequestID(context.Background(), "req-123")
	_, err := c.Encrypt(ctx, UploadRequest{
		Action: ActionDecrypt,
		Files:  []UploadFile{{Name: "x.bin", Content: strings.NewReader("x")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := backend.Uploads()[0].RequestID; got != "req-123" {
		t.Errorf("RequestID = %q, want req-123", got)
	}
}

func TestProcessDirectory(t *testing.T) {
	backend := apitest.Start(t)
	backend.Dirs["/srv/data"] = 7
	c := newTestClient(t, backend)

	resp, err := c.ProcessDirectory(context.Background(), DirectoryRequest{Directory: "/srv/data", Action: ActionDecrypt})
	if err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}
	if resp.FileCount == nil || *resp.FileCount != 7 {
		t.Errorf("FileCount = %v", resp.FileCount)
	}
	if len(resp.Files) != 0 {
		t.Errorf("directory responses carry no files, got %v", resp.Files)
	}

	calls := backend.Directories()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].ContentType != "application/json" {
		t.Errorf("Content-Type = %q", calls[0].ContentType)
	}
	if calls[0].Action != "decrypt" {
		t.Errorf("action = %q", calls[0].Action)
	}
}

func TestBackendError(t *testing.T) {
	backend := apitest.Start(t)
	c := newTestClient(t, backend)

	_, err := c.ProcessDirectory(context.Background(), DirectoryRequest{Directory: "/missing", Action: ActionEncrypt})
	var backendErr *errors.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if backendErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", backendErr.Status)
	}
	if backendErr.Text() != "Invalid directory path" {
		t.Errorf("Text() = %q", backendErr.Text())
	}
}

func TestBackendErrorWithoutMessage(t *testing.T) {
	backend := apitest.Start(t)
	backend.Override = func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusInternalServerError, map[string]string{})
	}
	c := newTestClient(t, backend)

	_, err := c.ProcessDirectory(context.Background(), DirectoryRequest{Directory: "/x", Action: ActionEncrypt})
	if got := errors.UserMessage(err); got != errors.FallbackMessage {
		t.Errorf("UserMessage = %q, want fallback", got)
	}
}

func TestNonJSONResponseIsNetworkError(t *testing.T) {
	backend := apitest.Start(t)
	backend.Override = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}
	c := newTestClient(t, backend)

	_, err := c.ProcessDirectory(context.Background(), DirectoryRequest{Directory: "/x", Action: ActionEncrypt})
	if !errors.IsNetwork(err) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !errors.Is(err, errors.ErrNotJSON) {
		t.Errorf("error should wrap ErrNotJSON: %v", err)
	}
}

func TestConnectionRefused(t *testing.T) {
	backend := apitest.NewBackend()
	url := backend.URL
	backend.Close()

	c, err := NewClient(url)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Encrypt(context.Background(), UploadRequest{
		Action: ActionEncrypt,
		Files:  []UploadFile{{Name: "a.txt", Content: strings.NewReader("a")}},
	})
	if !errors.IsNetwork(err) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !strings.HasPrefix(errors.UserMessage(err), "Network error: ") {
		t.Errorf("UserMessage = %q", errors.UserMessage(err))
	}
}

func TestDownload(t *testing.T) {
	backend := apitest.Start(t)
	backend.Store("report final.pdf.enc", "ciphertext")
	c := newTestClient(t, backend)

	var buf bytes.Buffer
	n, err := c.Download(context.Background(), "report final.pdf.enc", &buf)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if n != int64(len("ciphertext")) || buf.String() != "ciphertext" {
		t.Errorf("Download wrote %d bytes: %q", n, buf.String())
	}

	_, err = c.Download(context.Background(), "missing.bin", &buf)
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
