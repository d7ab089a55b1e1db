// Package viewport defines the window-geometry contract the host supplies.
// The menu layout service never talks to a real window; it only asks these
// questions.
package viewport

// Viewport reports the usable window geometry of the host application.
type Viewport interface {
	// Size returns the viewport width and height in layout units. ok is
	// false when no geometry is available (headless host, early startup).
	Size() (width, height int, ok bool)
	// KeyboardVisible reports whether an on-screen keyboard is visible or
	// in the process of opening.
	KeyboardVisible() bool
}

// Static is a fixed-geometry viewport, useful for tests and hosts that
// push explicit dimensions.
type Static struct {
	Width    int
	Height   int
	Keyboard bool
}

var _ Viewport = (*Static)(nil)

func (s *Static) Size() (int, int, bool) {
	if s == nil || (s.Width == 0 && s.Height == 0) {
		return 0, 0, false
	}
	return s.Width, s.Height, true
}

func (s *Static) KeyboardVisible() bool {
	return s != nil && s.Keyboard
}

// Nop reports no geometry at all.
type Nop struct{}

var _ Viewport = (*Nop)(nil)

func (n *Nop) Size() (int, int, bool) { return 0, 0, false }
func (n *Nop) KeyboardVisible() bool  { return false }
