package view

// Viewport is the scroll geometry reported by the page with each action, so
// the lock can restore the exact offset and compensate for the scrollbar.
type Viewport struct {
	ScrollY        int
	ScrollbarWidth int
}

// Modals tracks the named overlay panels and the global open count. Page
// scroll is locked exactly while the count is positive.
type Modals struct {
	open        map[string]bool
	count       int
	viewport    Viewport
	savedScroll int
	padRight    int
}

func NewModals() *Modals {
	return &Modals{open: map[string]bool{}}
}

func (m *Modals) SetViewport(v Viewport) {
	m.viewport = v
}

// Show makes the modal visible and increments the open count. The 0->1
// transition captures the current scroll offset and scrollbar width.
func (m *Modals) Show(id string) {
	m.open[id] = true
	m.count++
	if m.count == 1 {
		m.savedScroll = m.viewport.ScrollY
		m.padRight = m.viewport.ScrollbarWidth
	}
}

// Close hides the modal only if it is currently shown; closing a hidden
// modal is a no-op. The count never goes below zero.
func (m *Modals) Close(id string) {
	if !m.open[id] {
		return
	}
	m.open[id] = false
	if m.count > 0 {
		m.count--
	}
}

func (m *Modals) IsOpen(id string) bool {
	return m.open[id]
}

func (m *Modals) OpenCount() int {
	return m.count
}

// Locked is the scroll-lock state as a pure function of the open count.
func (m *Modals) Locked() bool {
	return m.count > 0
}

// Lock returns the style the render layer applies to the page body while
// locked: fixed at the negative saved offset, padded for the scrollbar.
type Lock struct {
	Locked        bool
	FixedTop      int
	PadRight      int
	RestoreScroll int
}

func (m *Modals) Lock() Lock {
	if m.Locked() {
		return Lock{Locked: true, FixedTop: -m.savedScroll, PadRight: m.padRight}
	}
	return Lock{RestoreScroll: m.savedScroll}
}
