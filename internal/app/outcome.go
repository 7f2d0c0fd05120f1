package app

import "Encrypty/internal/api"

// Outcome is the normalized result of one submission, whichever flow produced it.
type Outcome struct {
	OK             bool
	Message        string
	OutputFiles    []string
	OutputText     *string
	ProcessedCount *int
}

// successOutcome builds an Outcome from a 2xx payload.
// An empty output string counts as absent.
func successOutcome(resp *api.Response, files []string, count *int) Outcome {
	o := Outcome{
		OK:             true,
		Message:        resp.Message,
		OutputFiles:    append([]string(nil), files...),
		ProcessedCount: count,
	}
	if resp.Output != nil && *resp.Output != "" {
		text := *resp.Output
		o.OutputText = &text
	}
	return o
}

// failureOutcome builds an error Outcome with the given banner text.
func failureOutcome(message string) Outcome {
	return Outcome{OK: false, Message: message}
}

// HasDownloads reports whether the download area should be shown.
func (o Outcome) HasDownloads() bool {
	return o.OK && len(o.OutputFiles) > 0
}
