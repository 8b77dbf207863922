package overlay

import tea "github.com/charmbracelet/bubbletea"

// Stack holds the open overlays. Only the top one receives input and is
// drawn. Overlays never pop themselves: they emit CloseOverlayMsg or
// SelectionMsg and the app decides when to Pop, so it can restore its mode
// and clear any edit state at the same time.
type Stack struct {
	overlays []Overlay
}

// NewStack creates an empty stack
func NewStack() *Stack {
	return &Stack{}
}

// Push opens o on top and returns its Init command
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop closes the top overlay and returns it, or nil when nothing is open
func (s *Stack) Pop() Overlay {
	top := s.Current()
	if top != nil {
		s.overlays[len(s.overlays)-1] = nil
		s.overlays = s.overlays[:len(s.overlays)-1]
	}
	return top
}

// Current returns the top overlay, or nil when nothing is open
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

// Len returns the number of open overlays
func (s *Stack) Len() int {
	return len(s.overlays)
}

// IsEmpty reports whether no overlay is open
func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Update sends msg to the top overlay and keeps the model it returns
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	top := s.Current()
	if top == nil {
		return nil
	}

	next, cmd := top.Update(msg)
	if o, ok := next.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}

// Top returns the top overlay when it has type T
func Top[T Overlay](s *Stack) (T, bool) {
	o, ok := s.Current().(T)
	return o, ok
}
