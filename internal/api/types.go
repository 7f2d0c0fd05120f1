// Package api is a client for the Encrypty backend HTTP contract:
//
//	POST /api/encrypt             multipart: files (repeated), action
//	POST /api/process-directory   JSON: {"directory", "action"}
//	GET  /api/download/{filename} processed output
//
// Transport failures are returned as *errors.NetworkError and non-2xx
// responses as *errors.BackendError.
package api

import (
	"fmt"
	"io"
	"strings"

	"Encrypty/internal/errors"
)

// Action is the operation applied to every file of a submission.
type Action string

const (
	ActionEncrypt Action = "encrypt"
	ActionDecrypt Action = "decrypt"
)

// ParseAction accepts "encrypt" or "decrypt" in any case.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionEncrypt:
		return ActionEncrypt, nil
	case ActionDecrypt:
		return ActionDecrypt, nil
	default:
		return "", fmt.Errorf("%w: %q (want encrypt or decrypt)", errors.ErrInvalidAction, s)
	}
}

func (a Action) String() string { return string(a) }

// UploadFile is one named blob of an upload.
type UploadFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

// UploadRequest is the multipart upload variant of a submission.
type UploadRequest struct {
	Files  []UploadFile
	Action Action
}

// DirectoryRequest is the directory-path variant of a submission.
type DirectoryRequest struct {
	Directory string `json:"directory"`
	Action    Action `json:"action"`
}

// Response is the JSON payload returned by both submission endpoints.
// Optional fields are pointers so "absent" stays distinguishable from zero.
type Response struct {
	Success   bool     `json:"success,omitempty"`
	Message   string   `json:"message"`
	Files     []string `json:"files,omitempty"`
	Output    *string  `json:"output,omitempty"`
	FileCount *int     `json:"file_count,omitempty"`
	Error     string   `json:"error,omitempty"`
	Stdout    string   `json:"stdout,omitempty"`
}
