package app

import "testing"

func TestFuncRenderer(t *testing.T) {
	var busyCalls, hideCalls, renderCalls int
	var lastTrigger Trigger
	var lastBusy bool

	r := NewFuncRenderer(
		func(trigger Trigger, busy bool) {
			busyCalls++
			lastTrigger = trigger
			lastBusy = busy
		},
		func() { hideCalls++ },
		func(s *State) { renderCalls++ },
	)

	r.SetBusy(TriggerDirectory, true)
	r.HideResults()
	r.Render(NewState())

	if busyCalls != 1 || lastTrigger != TriggerDirectory || !lastBusy {
		t.Errorf("OnBusy not called correctly: calls=%d trigger=%q busy=%v", busyCalls, lastTrigger, lastBusy)
	}
	if hideCalls != 1 {
		t.Errorf("OnHide calls = %d", hideCalls)
	}
	if renderCalls != 1 {
		t.Errorf("OnRender calls = %d", renderCalls)
	}
}

func TestFuncRendererNilCallbacks(t *testing.T) {
	r := NewFuncRenderer(nil, nil, nil)

	// Should not panic
	r.SetBusy(TriggerUpload, true)
	r.HideResults()
	r.Render(NewState())
}

func TestMultiRenderer(t *testing.T) {
	var order []string
	first := NewFuncRenderer(
		func(Trigger, bool) { order = append(order, "first:busy") },
		func() { order = append(order, "first:hide") },
		func(*State) { order = append(order, "first:render") },
	)
	second := NewFuncRenderer(
		func(Trigger, bool) { order = append(order, "second:busy") },
		func() { order = append(order, "second:hide") },
		func(*State) { order = append(order, "second:render") },
	)

	m := MultiRenderer{first, second}
	m.SetBusy(TriggerUpload, true)
	m.HideResults()
	m.Render(NewState())

	want := []string{"first:busy", "second:busy", "first:hide", "second:hide", "first:render", "second:render"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}
