package deck

import (
	"voxdemo/model"
)

// demoSlides 产品演示剧本，id 即播放顺序，时长为无旁白时的估计停留秒数
var demoSlides = []model.Slide{
	{
		ID:       1,
		Title:    "Every Missed Call Is Money Walking Away",
		Subtitle: "The hidden cost of voicemail",
		Content: []string{
			"62% of calls to small businesses go unanswered",
			"85% of callers who reach voicemail never call back",
			"",
			"They just dial your competitor",
		},
		Duration: 14,
		Anim:     model.AnimationFade,
	},
	{
		ID:       2,
		Title:    "The Problem",
		Subtitle: "2:47 AM",
		Content: []string{
			"Water heater burst",
			"",
			"Called Bob's HVAC",
			"Got voicemail",
			"Called the next listing instead",
		},
		Duration: 12,
		Anim:     model.AnimationSlide,
	},
	{
		ID:       3,
		Title:    "Meet Ava",
		Subtitle: "Your AI receptionist",
		Content: []string{
			"Answers every call in under two rings",
			"Day or night, weekends and holidays",
			"",
			"Sounds human, because the conversation is",
		},
		Duration: 13,
		Anim:     model.AnimationZoom,
	},
	{
		ID:       4,
		Title:    "She Knows Your Business",
		Subtitle: "Trained on your services and pricing",
		Content: []string{
			"Quotes standard jobs on the spot",
			"Books appointments straight into your calendar",
			"Flags emergencies for immediate callback",
		},
		Duration: 12,
		Anim:     model.AnimationFade,
	},
	{
		ID:       5,
		Title:    "Every Call Becomes a Lead",
		Subtitle: "Nothing slips through",
		Content: []string{
			"Full transcript and summary after each call",
			"Caller name, number and intent captured automatically",
			"",
			"Synced to your CRM before you wake up",
		},
		Duration: 13,
		Anim:     model.AnimationSlide,
	},
	{
		ID:       6,
		Title:    "The Numbers",
		Subtitle: "What answering actually earns",
		Content: []string{
			"Average HVAC job: $450",
			"Ten recovered calls a month: $4,500",
			"Ava costs less than one missed job",
		},
		Duration: 12,
		Anim:     model.AnimationZoom,
	},
	{
		ID:       7,
		Title:    "Live in Fifteen Minutes",
		Subtitle: "No hardware, no new number",
		Content: []string{
			"Forward your existing line",
			"Answer a few questions about your business",
			"Ava takes the next call",
		},
		Duration: 11,
		Anim:     model.AnimationFade,
	},
	{
		ID:       8,
		Title:    "Stop Losing Calls Tonight",
		Subtitle: "Start your free trial",
		Content: []string{
			"Fourteen days free",
			"Cancel anytime",
			"",
			"Your phone never sleeps again",
		},
		Duration: 10,
		Anim:     model.AnimationZoom,
	},
}
