// Package rating holds the state and rules of the half-star rating input.
// Rendering lives with the screens; everything here is terminal-agnostic.
package rating

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/Varun5711/cinerate/internal/apierr"
)

const (
	Stars = 10
	Step  = 0.5
	Max   = float64(Stars)
	// CellsPerStar is the width of one star in the terminal: the glyph and a gap.
	CellsPerStar = 2
)

const MessageInvalidRating = "pick a rating between 0.5 and 10"

type Fill int

const (
	Empty Fill = iota
	Half
	Full
)

// FillAt returns how the star at position (1..Stars) is lit for display.
func FillAt(position int, display float64) Fill {
	p := float64(position)
	switch {
	case display >= p:
		return Full
	case display >= p-Step:
		return Half
	}
	return Empty
}

// Label is the qualitative description of a rating value.
func Label(display float64) string {
	switch {
	case display >= 9:
		return "masterpiece"
	case display >= 8:
		return "excellent"
	case display >= 7:
		return "very good"
	case display >= 6:
		return "good"
	case display >= 5:
		return "average"
	case display >= 4:
		return "weak"
	case display >= 2:
		return "bad"
	case display > 0:
		return "very bad"
	}
	return ""
}

// ZoneValue is the value of the left or right half of a star.
func ZoneValue(position int, right bool) float64 {
	if right {
		return float64(position)
	}
	return float64(position) - Step
}

// Valid reports whether v may be submitted.
func Valid(v float64) bool {
	return v > 0 && v <= Max
}

// Format renders a value the way the backend stores it: "8", "7.5".
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SubmitFunc sends a rating. comment is empty when the user wrote none.
type SubmitFunc func(ctx context.Context, value float64, comment string) error

// Widget is the rating dialog state. It is safe for use from the UI loop and
// the goroutine running a submit.
type Widget struct {
	mu         sync.Mutex
	selected   float64
	hovered    float64
	hovering   bool
	comment    string
	editing    bool
	submitting bool
	origin     int
}

// New opens a widget, pre-filled when the subject already has a rating.
func New(existingVote float64, existingComment string) *Widget {
	w := &Widget{}
	if existingVote > 0 {
		w.selected = existingVote
		w.comment = existingComment
		w.editing = true
	}
	return w
}

func (w *Widget) Hover(v float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hovered = v
	w.hovering = true
}

func (w *Widget) Leave() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hovered = 0
	w.hovering = false
}

func (w *Widget) Click(v float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = v
}

// Display is the hovered value while previewing, else the selected one.
func (w *Widget) Display() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.display()
}

func (w *Widget) display() float64 {
	if w.hovering {
		return w.hovered
	}
	return w.selected
}

func (w *Widget) Selected() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected
}

func (w *Widget) Hovered() (float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hovered, w.hovering
}

func (w *Widget) Comment() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.comment
}

func (w *Widget) SetComment(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.comment = s
}

// Editing reports whether the widget was opened on an existing rating.
func (w *Widget) Editing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editing
}

func (w *Widget) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Fills is the lit state of every star for the current display value.
func (w *Widget) Fills() []Fill {
	d := w.Display()
	fills := make([]Fill, Stars)
	for p := 1; p <= Stars; p++ {
		fills[p-1] = FillAt(p, d)
	}
	return fills
}

// Nudge moves the preview by delta half-star steps, starting from whatever
// is displayed. The keyboard counterpart of moving the pointer.
func (w *Widget) Nudge(steps int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v := w.display() + float64(steps)*Step
	if v < Step {
		v = Step
	}
	if v > Max {
		v = Max
	}
	w.hovered = v
	w.hovering = true
}

// Commit selects whatever is displayed, as a click on the previewed zone would.
func (w *Widget) Commit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = w.display()
}

// SetOrigin records the terminal column where the first star is drawn.
func (w *Widget) SetOrigin(column int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.origin = column
}

// ValueAt maps a terminal column to the zone under it. Columns outside the
// stars report false.
func (w *Widget) ValueAt(column int) (float64, bool) {
	w.mu.Lock()
	rel := column - w.origin
	w.mu.Unlock()

	if rel < 0 || rel >= Stars*CellsPerStar {
		return 0, false
	}
	position := rel/CellsPerStar + 1
	return ZoneValue(position, rel%CellsPerStar == CellsPerStar-1), true
}

// HoverAt previews the zone under column, or leaves the control when the
// pointer is outside it.
func (w *Widget) HoverAt(column int) {
	if v, ok := w.ValueAt(column); ok {
		w.Hover(v)
		return
	}
	w.Leave()
}

// ClickAt commits the zone under column and reports whether one was hit.
func (w *Widget) ClickAt(column int) bool {
	v, ok := w.ValueAt(column)
	if ok {
		w.Click(v)
	}
	return ok
}

// Submit validates the selection and hands it to fn. Out-of-range values are
// rejected without calling fn. On success the widget resets; on failure it
// keeps the selection and comment so the user can retry.
func (w *Widget) Submit(ctx context.Context, fn SubmitFunc) error {
	w.mu.Lock()
	value := w.selected
	comment := strings.TrimSpace(w.comment)
	if !Valid(value) {
		w.mu.Unlock()
		return apierr.Validation(MessageInvalidRating)
	}
	w.submitting = true
	w.mu.Unlock()

	err := fn(ctx, value, comment)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return err
	}
	w.selected = 0
	w.comment = ""
	w.hovered = 0
	w.hovering = false
	return nil
}
