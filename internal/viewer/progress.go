package viewer

import (
	"time"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
)

// SampleInterval is how often a running session samples its clock.
const SampleInterval = 50 * time.Millisecond

const (
	imageDisplayMillis  = 5000
	defaultVideoSeconds = 10
	playbackCapMillis   = 60000
)

// displayMillis returns how long the story contributes to the progress
// bar. Images get a fixed window; videos use their declared duration.
func displayMillis(story *entity.Story) int64 {
	if story.MediaType == entity.MediaTypeVideo {
		seconds := story.Duration
		if seconds <= 0 {
			seconds = defaultVideoSeconds
		}
		return int64(seconds) * 1000
	}
	return imageDisplayMillis
}

// capMillis returns the elapsed time at which the session force-advances.
// Long videos are cut off at one minute regardless of declared duration.
func capMillis(story *entity.Story) int64 {
	display := displayMillis(story)
	if story.MediaType == entity.MediaTypeVideo && display > playbackCapMillis {
		return playbackCapMillis
	}
	return display
}

// Tick samples the clock and publishes progress for the active story.
// Ticks while closed or paused are no-ops. When elapsed time reaches the
// story's cap the session advances.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open || !s.playing {
		return
	}

	story := s.currentLocked()
	if story == nil {
		return
	}

	elapsed := s.clock().Sub(s.reference).Milliseconds()
	display := displayMillis(story)

	progress := float64(elapsed) / float64(display) * 100
	if progress > 100 {
		progress = 100
	}
	s.sink.Progress(progress)

	if elapsed >= capMillis(story) {
		s.advanceLocked()
	}
}
