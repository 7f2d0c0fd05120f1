package app

// Ensure FuncRenderer implements Renderer
var _ Renderer = (*FuncRenderer)(nil)

// Renderer turns state changes into something visible.
// Implementations receive the controller's State by reference and read the
// outcome to display from it.
type Renderer interface {
	// SetBusy switches a trigger between its busy and idle look.
	SetBusy(trigger Trigger, busy bool)

	// HideResults hides the results container.
	HideResults()

	// Render replaces the displayed view with state's last outcome and
	// brings the results container into view.
	Render(state *State)
}

// FuncRenderer bridges the controller with a host UI through callbacks.
// Nil callbacks are skipped.
type FuncRenderer struct {
	OnBusy   func(trigger Trigger, busy bool)
	OnHide   func()
	OnRender func(state *State)
}

// NewFuncRenderer creates a renderer with the given callbacks.
func NewFuncRenderer(
	onBusy func(Trigger, bool),
	onHide func(),
	onRender func(*State),
) *FuncRenderer {
	return &FuncRenderer{
		OnBusy:   onBusy,
		OnHide:   onHide,
		OnRender: onRender,
	}
}

// SetBusy implements Renderer.
func (r *FuncRenderer) SetBusy(trigger Trigger, busy bool) {
	if r.OnBusy != nil {
		r.OnBusy(trigger, busy)
	}
}

// HideResults implements Renderer.
func (r *FuncRenderer) HideResults() {
	if r.OnHide != nil {
		r.OnHide()
	}
}

// Render implements Renderer.
func (r *FuncRenderer) Render(state *State) {
	if r.OnRender != nil {
		r.OnRender(state)
	}
}

// MultiRenderer forwards every call to each renderer in order.
type MultiRenderer []Renderer

// SetBusy implements Renderer.
func (m MultiRenderer) SetBusy(trigger Trigger, busy bool) {
	for _, r := range m {
		r.SetBusy(trigger, busy)
	}
}

// HideResults implements Renderer.
func (m MultiRenderer) HideResults() {
	for _, r := range m {
		r.HideResults()
	}
}

// Render implements Renderer.
func (m MultiRenderer) Render(state *State) {
	for _, r := range m {
		r.Render(state)
	}
}
