// Package app provides application state management with optional Fyne data binding support.
package app

import (
	"fmt"

	"fyne.io/fyne/v2/data/binding"
)

// Button labels for idle and busy triggers.
const (
	UploadLabel    = "Process Files"
	DirectoryLabel = "Process Directory"
	BusyLabel      = "Processing..."
)

// BoundState provides Fyne data bindings for the widgets driven by State.
// Widgets built from these bindings update without manual SetText calls.
type BoundState struct {
	// Busy is true while any submission is in flight
	Busy binding.Bool

	// Trigger labels swap to BusyLabel while their flow runs
	UploadLabel    binding.String
	DirectoryLabel binding.String

	// Selection is the Selection Reporter output under the file picker
	Selection binding.String

	// ResultsVisible mirrors State's results container visibility
	ResultsVisible binding.Bool

	// Banner is the plain-text headline of the last outcome
	Banner binding.String
}

// NewBoundState creates bindings in the idle, empty state.
func NewBoundState() *BoundState {
	b := &BoundState{
		Busy:           binding.NewBool(),
		UploadLabel:    binding.NewString(),
		DirectoryLabel: binding.NewString(),
		Selection:      binding.NewString(),
		ResultsVisible: binding.NewBool(),
		Banner:         binding.NewString(),
	}
	b.Reset()
	return b
}

// Reset restores idle labels and the empty-selection placeholder.
func (b *BoundState) Reset() {
	_ = b.Busy.Set(false)
	_ = b.UploadLabel.Set(UploadLabel)
	_ = b.DirectoryLabel.Set(DirectoryLabel)
	_ = b.Selection.Set(NoFilesPlaceholder)
	_ = b.ResultsVisible.Set(false)
	_ = b.Banner.Set("")
}

// SetBusy swaps the label of trigger and toggles Busy.
func (b *BoundState) SetBusy(trigger Trigger, busy bool) {
	_ = b.Busy.Set(busy)

	label := b.UploadLabel
	idle := UploadLabel
	if trigger == TriggerDirectory {
		label = b.DirectoryLabel
		idle = DirectoryLabel
	}
	if busy {
		_ = label.Set(BusyLabel)
	} else {
		_ = label.Set(idle)
	}
}

// SetSelection publishes a Selection Reporter listing.
func (b *BoundState) SetSelection(l Listing) {
	_ = b.Selection.Set(l.String())
}

// SyncFromState copies results visibility and the banner text from s.
func (b *BoundState) SyncFromState(s *State) {
	snap := s.Snapshot()
	_ = b.ResultsVisible.Set(snap.ResultsVisible)

	if snap.LastOutcome == nil {
		_ = b.Banner.Set("")
		return
	}
	_ = b.Banner.Set(BannerText(*snap.LastOutcome))
}

// BannerText is the plain-text headline of an outcome, as shown by hosts
// that do not render markup.
func BannerText(o Outcome) string {
	if !o.OK {
		return "✗ Error: " + o.Message
	}
	text := "✓ Success! " + o.Message
	if o.ProcessedCount != nil {
		text += fmt.Sprintf("\nProcessed %d file(s)", *o.ProcessedCount)
	}
	return text
}
