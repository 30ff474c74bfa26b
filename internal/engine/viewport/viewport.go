// Package viewport tracks document scroll state.
//
// Scroll offsets are line-proportional: a fixed approximate row height
// converts line numbers into offsets, trading visual precision for
// O(1) scroll computation. Offsets are clamped to the content's
// height, never negative and never past the last line.
package viewport

import "sync"

// ApproxLineHeight is the fixed row height used to convert line
// numbers into scroll offsets.
const ApproxLineHeight = 18.0

// State tracks the vertical scroll position of one document view.
// All methods are thread-safe.
type State struct {
	mu        sync.RWMutex
	offset    float64
	lineCount int
}

// New creates a scroll state for content with the given line count.
// Line counts below 1 are clamped to 1, matching the buffer's
// minimum.
func New(lineCount int) *State {
	if lineCount < 1 {
		lineCount = 1
	}
	return &State{lineCount: lineCount}
}

// Offset returns the current scroll offset.
func (s *State) Offset() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offset
}

// LineCount returns the line count the state clamps against.
func (s *State) LineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lineCount
}

// MaxOffset returns the largest valid scroll offset.
func (s *State) MaxOffset() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxOffset()
}

func (s *State) maxOffset() float64 {
	return float64(s.lineCount) * ApproxLineHeight
}

// SetLineCount updates the line count after a content change and
// re-clamps the offset against the new bounds.
func (s *State) SetLineCount(lineCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lineCount < 1 {
		lineCount = 1
	}
	s.lineCount = lineCount
	s.offset = clamp(s.offset, 0, s.maxOffset())
}

// SetOffset moves the scroll position to the given offset, clamped to
// [0, MaxOffset]. Returns the offset actually applied.
func (s *State) SetOffset(offset float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offset = clamp(offset, 0, s.maxOffset())
	return s.offset
}

// ScrollToLine positions the view at the given line, at line times the
// approximate row height. Returns the offset actually applied.
func (s *State) ScrollToLine(line int) float64 {
	return s.SetOffset(float64(line) * ApproxLineHeight)
}

// ApplyDelta adjusts the scroll position by delta, clamping the result
// to [0, MaxOffset]. Returns the offset actually applied.
func (s *State) ApplyDelta(delta float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offset = clamp(s.offset+delta, 0, s.maxOffset())
	return s.offset
}

// Snapshot is a point-in-time copy of the scroll state.
type Snapshot struct {
	Offset    float64
	MaxOffset float64
	LineCount int
}

// Snapshot returns a copy of the current state for render-side use.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Offset:    s.offset,
		MaxOffset: s.maxOffset(),
		LineCount: s.lineCount,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
