// Package app provides the submission controller and the UI state it owns.
//
// This package serves three purposes:
//
//  1. State Management (state.go):
//     The State struct holds the transient UI state of one page or window:
//     whether a submission is in flight, whether the results container is
//     visible and the last rendered Outcome. Access is guarded by a mutex
//     because hosts finish network calls on background goroutines.
//
//  2. Submission Control (controller.go):
//     The Controller runs the upload and directory flows against the backend
//     and hands every Outcome to a Renderer.
//
//  3. Selection Reporting (selection.go):
//     ReportSelection projects the file picker's current value into the
//     numbered list shown under the picker.
//
// Hosts (GUI, web, CLI) implement Renderer; the controller itself never
// touches widgets or markup.
package app

import "sync"

// Trigger identifies the control that started a submission.
type Trigger string

const (
	TriggerUpload    Trigger = "upload-btn"
	TriggerDirectory Trigger = "directory-btn"
)

// UIState is a point-in-time copy of State.
type UIState struct {
	Busy           bool
	ActiveTrigger  Trigger
	ResultsVisible bool
	LastOutcome    *Outcome
}

// State holds the UI state shared by the controller and its renderer.
type State struct {
	mu sync.RWMutex
	ui UIState
}

// NewState creates an idle state with nothing rendered.
func NewState() *State {
	return &State{}
}

// TryBegin marks trigger as busy. It returns false if any submission is
// already in flight, in which case nothing changes.
func (s *State) TryBegin(trigger Trigger) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ui.Busy {
		return false
	}
	s.ui.Busy = true
	s.ui.ActiveTrigger = trigger
	return true
}

// End leaves the busy state.
func (s *State) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.Busy = false
	s.ui.ActiveTrigger = ""
}

// HideResults hides the results container. The last outcome is kept until
// the next one replaces it.
func (s *State) HideResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.ResultsVisible = false
}

// ShowOutcome replaces the displayed outcome and makes results visible.
func (s *State) ShowOutcome(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.LastOutcome = &o
	s.ui.ResultsVisible = true
}

// IsBusy returns true while a submission is in flight.
func (s *State) IsBusy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui.Busy
}

// Outcome returns the last outcome, if any.
func (s *State) Outcome() (Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ui.LastOutcome == nil {
		return Outcome{}, false
	}
	return *s.ui.LastOutcome, true
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() UIState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ui := s.ui
	if ui.LastOutcome != nil {
		o := *ui.LastOutcome
		ui.LastOutcome = &o
	}
	return ui
}
