package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"Encrypty/internal/errors"
	"Encrypty/internal/log"
	"Encrypty/internal/util"

	"github.com/google/uuid"
)

// Endpoint paths of the backend contract.
const (
	EncryptPath   = "/api/encrypt"
	DirectoryPath = "/api/process-directory"
	DownloadPath  = "/api/download/"

	// RequestIDHeader carries the per-submission id to the backend.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the backend at baseURL.
// The default HTTP client has no timeout: encryption of large uploads can
// legitimately take minutes, and callers bound requests with their context.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:   u,
		http:   &http.Client{},
		logger: log.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// DownloadURL returns the absolute link for a processed file.
// The name is percent-escaped as a single path segment.
func (c *Client) DownloadURL(filename string) string {
	return c.base.String() + DownloadPath + url.PathEscape(filename)
}

// Encrypt uploads files to /api/encrypt as a multipart body.
// The body is streamed, so file contents are read while the request is sent.
func (c *Client) Encrypt(ctx context.Context, req UploadRequest) (*Response, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUpload(mw, req))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String()+EncryptPath, pr)
	if err != nil {
		_ = pr.Close()
		return nil, errors.NewNetworkError("encrypt", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(httpReq, "encrypt", log.Int("files", len(req.Files)), log.String("action", req.Action.String()))
}

// writeUpload writes every file under the "files" field followed by "action".
func writeUpload(mw *multipart.Writer, req UploadRequest) error {
	for _, f := range req.Files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return err
		}
		if f.Content == nil {
			continue
		}
		if _, err := util.UploadPool.Copy(part, f.Content); err != nil {
			return errors.NewFileError("read", f.Name, err)
		}
	}
	if err := mw.WriteField("action", req.Action.String()); err != nil {
		return err
	}
	return mw.Close()
}

// ProcessDirectory asks the backend to process a directory on its own disk.
func (c *Client) ProcessDirectory(ctx context.Context, req DirectoryRequest) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.NewNetworkError("process-directory", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String()+DirectoryPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewNetworkError("process-directory", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, "process-directory", log.String("directory", req.Directory), log.String("action", req.Action.String()))
}

// do sends the request and decodes the JSON payload.
// A body that is not JSON counts as a transport failure, whatever the status.
func (c *Client) do(req *http.Request, op string, fields ...log.Field) (*Response, error) {
	id := requestID(req.Context())
	req.Header.Set(RequestIDHeader, id)
	req.Header.Set("Accept", "application/json")

	logger := c.logger.WithFields(log.String("op", op), log.String("request_id", id))
	logger.Debug("sending request", fields...)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("request failed", log.Err(err))
		return nil, errors.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Warn("undecodable response", log.Int("status", resp.StatusCode), log.Err(err))
		return nil, errors.NewNetworkError(op, fmt.Errorf("%w: %v", errors.ErrNotJSON, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Info("backend rejected request", log.Int("status", resp.StatusCode), log.String("error", payload.Error))
		return &payload, errors.NewBackendError(resp.StatusCode, payload.Error)
	}

	logger.Debug("request completed", log.Int("status", resp.StatusCode), log.Int("output_files", len(payload.Files)))
	return &payload, nil
}

// Download streams a processed file into w and returns the byte count.
func (c *Client) Download(ctx context.Context, filename string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(filename), nil)
	if err != nil {
		return 0, errors.NewNetworkError("download", err)
	}
	req.Header.Set(RequestIDHeader, requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.NewNetworkError("download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%s: %w", filename, errors.ErrFileNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload Response
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return 0, errors.NewBackendError(resp.StatusCode, payload.Error)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, errors.NewNetworkError("download", err)
	}
	return n, nil
}

type requestIDKey struct{}

// WithRequestID attaches a request id to ctx; the client forwards it to the backend.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// NewRequestID returns a fresh random request id.
func NewRequestID() string {
	return uuid.NewString()
}

// RequestIDFrom returns the id attached by WithRequestID, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func requestID(ctx context.Context) string {
	if id, ok := RequestIDFrom(ctx); ok {
		return id
	}
	return NewRequestID()
}
