package deck

import (
	"testing"

	"voxdemo/model"
)

func testDeck() *Deck {
	return New([]model.Slide{
		{ID: 1, Title: "One", Duration: 10},
		{ID: 2, Title: "Two", Duration: 15},
		{ID: 3, Title: "Three", Duration: 5},
	})
}

func TestTransitionTimestamps(t *testing.T) {
	d := testDeck()
	got := d.TransitionTimestamps()

	want := []int{0, 10, 25}
	if len(got) != d.Len() {
		t.Fatalf("timestamps length = %d, want %d", len(got), d.Len())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("timestamps[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	// 每个时间戳都应等于之前所有声明时长之和，且单调不减
	sum := 0
	for i, s := range d.Slides() {
		if got[i] != sum {
			t.Errorf("timestamps[%d] = %d, want cumulative sum %d", i, got[i], sum)
		}
		if i > 0 && got[i] < got[i-1] {
			t.Errorf("timestamps not non-decreasing at %d", i)
		}
		sum += s.Duration
	}
}

func TestTotalDuration(t *testing.T) {
	if got := testDeck().TotalDuration(); got != 30 {
		t.Fatalf("TotalDuration = %d, want 30", got)
	}
}

func TestSlideByID(t *testing.T) {
	d := testDeck()

	slide, ok := d.SlideByID(2)
	if !ok {
		t.Fatal("SlideByID(2) not found")
	}
	if slide.Title != "Two" {
		t.Errorf("SlideByID(2).Title = %q, want %q", slide.Title, "Two")
	}

	if _, ok := d.SlideByID(99); ok {
		t.Error("SlideByID(99) should report not found")
	}
}

func TestSlideAtBounds(t *testing.T) {
	d := testDeck()
	if _, ok := d.SlideAt(-1); ok {
		t.Error("SlideAt(-1) should be out of range")
	}
	if _, ok := d.SlideAt(3); ok {
		t.Error("SlideAt(len) should be out of range")
	}
	if s, ok := d.SlideAt(0); !ok || s.ID != 1 {
		t.Errorf("SlideAt(0) = %+v, %v", s, ok)
	}
}

func TestDefaultDeckWellFormed(t *testing.T) {
	d := Default()
	if d.Len() == 0 {
		t.Fatal("default deck is empty")
	}
	for i, s := range d.Slides() {
		if s.ID != i+1 {
			t.Errorf("slide %d has id %d, want %d", i, s.ID, i+1)
		}
		if s.Title == "" {
			t.Errorf("slide %d has empty title", s.ID)
		}
		if s.Duration <= 0 {
			t.Errorf("slide %d has non-positive duration %d", s.ID, s.Duration)
		}
	}
}
