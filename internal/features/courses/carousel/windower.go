package carousel

import "sync/atomic"

// Viewport breakpoints in CSS pixels
const (
	NarrowBreakpoint = 640
	MediumBreakpoint = 1024
)

// DefaultViewportWidth is assumed until the browser reports its width
const DefaultViewportWidth = 1280

// ViewportProvider reports the current display width
type ViewportProvider interface {
	Width() int
}

// Viewport is a ViewportProvider whose width is set by the host,
// typically from a resize event reported by the browser.
type Viewport struct {
	width atomic.Int64
}

// NewViewport returns a viewport with the given initial width
func NewViewport(width int) *Viewport {
	v := &Viewport{}
	v.SetWidth(width)
	return v
}

// Width implements ViewportProvider
func (v *Viewport) Width() int {
	return int(v.width.Load())
}

// SetWidth records a new width; non-positive widths are ignored
func (v *Viewport) SetWidth(width int) {
	if width > 0 {
		v.width.Store(int64(width))
	}
}

// WindowSize returns how many courses are visible at once for a viewport width
func WindowSize(width int) int {
	switch {
	case width < NarrowBreakpoint:
		return 1
	case width < MediumBreakpoint:
		return 2
	default:
		return 3
	}
}

// TotalWindows returns ceil(n / size)
func TotalWindows(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Window returns items[index*size : min(index*size+size, len(items))].
// An index outside the list yields an empty window.
func Window[T any](items []T, index, size int) []T {
	if size <= 0 || index < 0 {
		return nil
	}
	start := index * size
	if start >= len(items) {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// NextIndex advances one window, wrapping to the first after the last
func NextIndex(index, total int) int {
	if total <= 0 {
		return 0
	}
	return (index + 1) % total
}

// PrevIndex retreats one window, wrapping to the last before the first
func PrevIndex(index, total int) int {
	if total <= 0 {
		return 0
	}
	if index <= 0 {
		return total - 1
	}
	return index - 1
}
