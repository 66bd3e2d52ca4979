package deck

import (
	"voxdemo/model"
)

// Deck provides ordered, read-only access to the scripted demo slides.
// The slide list is fixed at construction and shared by the interactive
// player, the narration generator and the HTTP API, so all of them pace
// the demo from the same source of truth.
type Deck struct {
	slides []model.Slide
}

// New creates a deck from an ordered slide list.
func New(slides []model.Slide) *Deck {
	return &Deck{slides: slides}
}

// Default returns the built-in product demo deck.
func Default() *Deck {
	return New(demoSlides)
}

// Slides returns the ordered slide sequence.
func (d *Deck) Slides() []model.Slide {
	return d.slides
}

// Len returns the number of slides in the deck.
func (d *Deck) Len() int {
	return len(d.slides)
}

// SlideByID looks up a slide by its id. The second return value is false
// when no slide carries that id; callers are expected to fall back rather
// than abort the session.
func (d *Deck) SlideByID(id int) (model.Slide, bool) {
	for _, s := range d.slides {
		if s.ID == id {
			return s, true
		}
	}
	return model.Slide{}, false
}

// SlideAt returns the slide at the given 0-based index.
func (d *Deck) SlideAt(index int) (model.Slide, bool) {
	if index < 0 || index >= len(d.slides) {
		return model.Slide{}, false
	}
	return d.slides[index], true
}

// TransitionTimestamps returns the cumulative start offset in seconds of
// each slide, derived from declared durations. The first element is always
// 0 and the sequence is non-decreasing. Used for seek math and for the
// batch tool's scheduling estimate.
func (d *Deck) TransitionTimestamps() []int {
	timestamps := make([]int, len(d.slides))
	elapsed := 0
	for i, s := range d.slides {
		timestamps[i] = elapsed
		elapsed += s.Duration
	}
	return timestamps
}

// TotalDuration returns the sum of all declared slide durations in seconds.
func (d *Deck) TotalDuration() int {
	total := 0
	for _, s := range d.slides {
		total += s.Duration
	}
	return total
}
