package viewer

import (
	"sync"
	"time"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
)

// EventSink receives the outbound events of one session. The manager
// wires it to the owner's websocket connection.
type EventSink interface {
	StateChanged(state State)
	Progress(value float64)
	Closed()
}

// MarkViewedFunc is called when the viewer moves past an author's last
// story. It receives the ids of that author's stories still unviewed.
type MarkViewedFunc func(authorID string, storyIDs []string)

// State is the externally visible session state, published on every
// transition.
type State struct {
	Open        bool          `json:"open"`
	AuthorIndex int           `json:"author_index"`
	StoryIndex  int           `json:"story_index"`
	Playing     bool          `json:"playing"`
	Story       *entity.Story `json:"story,omitempty"`
}

// Session is the story viewer state machine for one connected user. It
// is either closed or viewing a (author, story) position across an
// immutable snapshot of story groups taken at open time.
//
// All transitions run under the session mutex; the clock is injected so
// the countdown can be driven deterministically in tests.
type Session struct {
	mu         sync.Mutex
	clock      func() time.Time
	sink       EventSink
	markViewed MarkViewedFunc
	playback   *Playback

	groups    []entity.UserStoryGroup
	open      bool
	authorIdx int
	storyIdx  int
	playing   bool

	// Start of the current countdown span. Reset on every story change
	// and on resume, so a paused story restarts its countdown.
	reference time.Time
}

func NewSession(clock func() time.Time, sink EventSink, markViewed MarkViewedFunc, commands CommandFunc) *Session {
	s := &Session{
		clock:      clock,
		sink:       sink,
		markViewed: markViewed,
	}
	s.playback = newPlayback(commands, s.advanceLocked, s.setPlayingLocked)
	return s
}

// Open enters viewing at the first story of the given author. An empty
// group set, an out-of-range index, or an author with no stories closes
// the session immediately.
func (s *Session) Open(groups []entity.UserStoryGroup, authorIdx int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(groups) == 0 || authorIdx < 0 || authorIdx >= len(groups) || len(groups[authorIdx].Stories) == 0 {
		wasOpen := s.open
		s.closeLocked()
		if !wasOpen {
			s.sink.Closed()
		}
		return
	}

	s.groups = groups
	s.open = true
	s.authorIdx = authorIdx
	s.storyIdx = 0
	s.enterStoryLocked()
}

// Advance moves to the next story, crossing into the next author when
// the current one is exhausted. Moving past an author marks their
// stories viewed; moving past the last author closes the session.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.advanceLocked()
}

// Retreat moves to the previous story of the current author. At the
// first story it is a no-op: the viewer never crosses back into the
// previous author.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open || s.storyIdx == 0 {
		return
	}
	s.storyIdx--
	s.enterStoryLocked()
}

// TogglePlay pauses a running story or resumes a paused one. Resuming
// restarts the countdown from a fresh reference point.
func (s *Session) TogglePlay() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}
	s.setPlayingLocked(!s.playing)
}

// Tap maps a tap position to a transition: left third retreats, right
// third advances, the middle toggles playback.
func (s *Session) Tap(x, width float64) {
	if width <= 0 {
		return
	}

	switch {
	case x < width/3:
		s.Retreat()
	case x > width*2/3:
		s.Advance()
	default:
		s.TogglePlay()
	}
}

// Close tears the session down without marking anything viewed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// HandleMediaEvent feeds a media element lifecycle report into the
// playback coordinator.
func (s *Session) HandleMediaEvent(event string, position float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}
	s.playback.handleEvent(event, position)
}

// Playing reports whether the countdown is currently running.
func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open && s.playing
}

func (s *Session) currentLocked() *entity.Story {
	if !s.open {
		return nil
	}
	return &s.groups[s.authorIdx].Stories[s.storyIdx]
}

func (s *Session) advanceLocked() {
	if !s.open {
		return
	}

	group := s.groups[s.authorIdx]
	if s.storyIdx+1 < len(group.Stories) {
		s.storyIdx++
		s.enterStoryLocked()
		return
	}

	// Leaving the author: their stories count as seen now.
	s.markGroupViewedLocked(group)

	if s.authorIdx+1 < len(s.groups) {
		s.authorIdx++
		s.storyIdx = 0
		s.enterStoryLocked()
		return
	}

	s.closeLocked()
}

func (s *Session) markGroupViewedLocked(group entity.UserStoryGroup) {
	if s.markViewed == nil {
		return
	}

	var unviewed []string
	for _, story := range group.Stories {
		if !story.Viewed {
			unviewed = append(unviewed, story.ID)
		}
	}
	if len(unviewed) > 0 {
		s.markViewed(group.AuthorID, unviewed)
	}
}

// enterStoryLocked resets the countdown and playback for the story at
// the current position and publishes the new state.
func (s *Session) enterStoryLocked() {
	s.playing = true
	s.reference = s.clock()
	s.playback.resetForStory(s.currentLocked())
	s.publishStateLocked()
}

func (s *Session) setPlayingLocked(playing bool) {
	if playing == s.playing {
		return
	}
	s.playing = playing
	if playing {
		s.reference = s.clock()
	}
	s.playback.setActive(playing)
	s.publishStateLocked()
}

func (s *Session) closeLocked() {
	wasOpen := s.open
	s.open = false
	s.playing = false
	s.groups = nil
	s.playback.teardown()
	if wasOpen {
		s.sink.Closed()
	}
}

func (s *Session) publishStateLocked() {
	s.sink.StateChanged(State{
		Open:        s.open,
		AuthorIndex: s.authorIdx,
		StoryIndex:  s.storyIdx,
		Playing:     s.playing,
		Story:       s.currentLocked(),
	})
}
