package app

import (
	"context"
	"strings"
	"time"

	"Encrypty/internal/api"
	"Encrypty/internal/errors"
	"Encrypty/internal/log"
)

// Validation messages shown in the error banner.
const (
	msgNoFiles     = "Please select at least one file"
	msgNoDirectory = "Please enter a directory path"
	msgBadAction   = "Please choose encrypt or decrypt"
)

// Backend is the part of api.Client the controller needs.
type Backend interface {
	Encrypt(ctx context.Context, req api.UploadRequest) (*api.Response, error)
	ProcessDirectory(ctx context.Context, req api.DirectoryRequest) (*api.Response, error)
}

// Ensure api.Client satisfies Backend
var _ Backend = (*api.Client)(nil)

// UploadForm is the upload form's value at submit time.
type UploadForm struct {
	Files  []api.UploadFile
	Action string // value of the single checked action control
}

// DirectoryForm is the directory form's value at submit time.
type DirectoryForm struct {
	Directory string
	Action    string
}

// Controller runs the upload and directory submission flows.
// Every accepted submission sends exactly one request and renders exactly
// one outcome; the trigger always leaves its busy state afterwards.
type Controller struct {
	backend  Backend
	state    *State
	renderer Renderer
	logger   log.Logger
}

// NewController creates a controller with a fresh State.
func NewController(backend Backend, renderer Renderer) *Controller {
	return &Controller{
		backend:  backend,
		state:    NewState(),
		renderer: renderer,
		logger:   log.GetLogger(),
	}
}

// SetLogger replaces the controller's logger.
func (c *Controller) SetLogger(l log.Logger) {
	if l == nil {
		l = log.Nop()
	}
	c.logger = l
}

// State returns the state owned by the controller.
func (c *Controller) State() *State {
	return c.state
}

// SubmitUpload runs the upload flow.
// Validation failures are rendered without contacting the backend.
func (c *Controller) SubmitUpload(ctx context.Context, form UploadForm) (Outcome, error) {
	if c.state.IsBusy() {
		return Outcome{}, errors.ErrSubmissionInFlight
	}
	if len(form.Files) == 0 {
		return c.reject(errors.NewValidationError("files", msgNoFiles, errors.ErrNoFiles))
	}
	action, err := api.ParseAction(form.Action)
	if err != nil {
		return c.reject(errors.NewValidationError("action", msgBadAction, err))
	}

	req := api.UploadRequest{Files: form.Files, Action: action}
	return c.submit(ctx, TriggerUpload, func(ctx context.Context) (Outcome, error) {
		resp, err := c.backend.Encrypt(ctx, req)
		if err != nil {
			return Outcome{}, err
		}
		return successOutcome(resp, resp.Files, nil), nil
	}, log.Int("files", len(req.Files)), log.String("action", action.String()))
}

// SubmitDirectory runs the directory flow. The path is trimmed before use.
func (c *Controller) SubmitDirectory(ctx context.Context, form DirectoryForm) (Outcome, error) {
	if c.state.IsBusy() {
		return Outcome{}, errors.ErrSubmissionInFlight
	}
	directory := strings.TrimSpace(form.Directory)
	if directory == "" {
		return c.reject(errors.NewValidationError("directory", msgNoDirectory, errors.ErrEmptyDirectory))
	}
	action, err := api.ParseAction(form.Action)
	if err != nil {
		return c.reject(errors.NewValidationError("action", msgBadAction, err))
	}

	req := api.DirectoryRequest{Directory: directory, Action: action}
	return c.submit(ctx, TriggerDirectory, func(ctx context.Context) (Outcome, error) {
		resp, err := c.backend.ProcessDirectory(ctx, req)
		if err != nil {
			return Outcome{}, err
		}
		return successOutcome(resp, nil, resp.FileCount), nil
	}, log.String("directory", directory), log.String("action", action.String()))
}

// reject renders a validation error. The trigger never enters busy state.
func (c *Controller) reject(err error) (Outcome, error) {
	c.logger.Debug("submission rejected", log.Err(err))
	out := failureOutcome(errors.UserMessage(err))
	c.show(out)
	return out, err
}

// submit wraps one backend call in the busy/render protocol.
func (c *Controller) submit(ctx context.Context, trigger Trigger, send func(context.Context) (Outcome, error), fields ...log.Field) (Outcome, error) {
	if !c.state.TryBegin(trigger) {
		return Outcome{}, errors.ErrSubmissionInFlight
	}

	id := api.NewRequestID()
	ctx = api.WithRequestID(ctx, id)
	logger := c.logger.WithFields(log.String("trigger", string(trigger)), log.String("request_id", id))

	c.renderer.SetBusy(trigger, true)
	c.state.HideResults()
	c.renderer.HideResults()

	// Runs on every exit path, panics included.
	defer func() {
		c.state.End()
		c.renderer.SetBusy(trigger, false)
	}()

	start := time.Now()
	logger.Info("submitting", fields...)

	out, err := send(ctx)
	if err != nil {
		logger.Warn("submission failed", log.Err(err), log.String("kind", errors.Kind(err)), log.Duration("elapsed", time.Since(start)))
		out = failureOutcome(errors.UserMessage(err))
		c.show(out)
		return out, err
	}

	logger.Info("submission succeeded",
		log.Int("output_files", len(out.OutputFiles)),
		log.Duration("elapsed", time.Since(start)),
	)
	c.show(out)
	return out, nil
}

func (c *Controller) show(out Outcome) {
	c.state.ShowOutcome(out)
	c.renderer.Render(c.state)
}
