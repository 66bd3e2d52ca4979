package model

// Animation 幻灯片入场动画类型，仅影响前端展示
type Animation string

const (
	AnimationFade  Animation = "fade"
	AnimationSlide Animation = "slide"
	AnimationZoom  Animation = "zoom"
)

// Slide represents one slide of the scripted product demo deck.
// Slides are defined at build time and never mutated.
type Slide struct {
	ID       int       `json:"id"`       // 1-based, defines deck order
	Title    string    `json:"title"`    //
	Subtitle string    `json:"subtitle"` //
	Content  []string  `json:"content"`  // Empty entries are intentional visual spacing, not spoken text
	Duration int       `json:"duration"` // Authorial estimate in seconds, used when narration audio is unavailable
	Anim     Animation `json:"animation"`
}

// PlaybackState is the externally observable state of one demo playback
// session. A copy is pushed to the hosting UI on every transition.
type PlaybackState struct {
	CurrentSlide int     `json:"currentSlide"` // index into the deck, [0, len)
	IsPlaying    bool    `json:"isPlaying"`
	Progress     float64 `json:"progress"` // fraction of current slide's narration consumed, [0, 1]
	IsMuted      bool    `json:"isMuted"`
	Ended        bool    `json:"ended"`
}
