package viewer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/infrastructure/websocket"
	"github.com/Vadim-maker-source/vexnum/pkg/logger"
)

// StorySource supplies the manager with story groups and persists view
// marks. The story use case implements it.
type StorySource interface {
	ListGroups(ctx context.Context, viewerID, viewMode string) ([]entity.UserStoryGroup, error)
	MarkViewed(ctx context.Context, authorID, viewerID string) error
}

// Manager owns at most one viewer session per connected user and
// bridges websocket frames to session transitions. Each open session is
// driven by its own sampling ticker until it closes or the owner
// disconnects.
type Manager struct {
	ws      *websocket.Manager
	stories StorySource
	clock   func() time.Time

	mu       sync.Mutex
	sessions map[string]*liveSession
}

type liveSession struct {
	session *Session
	stop    chan struct{}
}

func NewManager(ws *websocket.Manager, stories StorySource) *Manager {
	return &Manager{
		ws:       ws,
		stories:  stories,
		clock:    time.Now,
		sessions: make(map[string]*liveSession),
	}
}

// HandleFrame dispatches a decoded client frame to the owner's session.
func (m *Manager) HandleFrame(client *websocket.Client, frame websocket.Frame) {
	switch frame.Type {
	case websocket.FrameTypeViewerOpen:
		var data websocket.ViewerOpenData
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			logger.Warn("Dropping malformed viewer_open from %s: %v", client.UserID, err)
			return
		}
		m.openSession(client.UserID, data.AuthorID, data.ViewMode)

	case websocket.FrameTypeViewerTap:
		var data websocket.ViewerTapData
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			logger.Warn("Dropping malformed viewer_tap from %s: %v", client.UserID, err)
			return
		}
		if s := m.get(client.UserID); s != nil {
			s.session.Tap(data.X, data.Width)
		}

	case websocket.FrameTypeViewerToggle:
		if s := m.get(client.UserID); s != nil {
			s.session.TogglePlay()
		}

	case websocket.FrameTypeViewerMediaEvent:
		var data websocket.ViewerMediaEventData
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			logger.Warn("Dropping malformed media event from %s: %v", client.UserID, err)
			return
		}
		if s := m.get(client.UserID); s != nil {
			s.session.HandleMediaEvent(data.Event, data.Position)
		}

	case websocket.FrameTypeViewerClose:
		m.teardown(client.UserID)

	default:
		logger.Debug("Unhandled frame type %s from %s", frame.Type, client.UserID)
	}
}

// HandleDisconnect tears down the user's session when the connection
// goes away.
func (m *Manager) HandleDisconnect(userID string) {
	m.teardown(userID)
}

func (m *Manager) openSession(userID, authorID, viewMode string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	groups, err := m.stories.ListGroups(ctx, userID, viewMode)
	if err != nil {
		logger.Error("Failed to load story groups for %s: %v", userID, err)
		m.sendFrame(userID, websocket.FrameTypeViewerClosed, nil)
		return
	}

	authorIdx := -1
	for i, group := range groups {
		if group.AuthorID == authorID {
			authorIdx = i
			break
		}
	}

	// Replace any existing session before opening a new one.
	m.teardown(userID)

	session := NewSession(
		m.clock,
		&userSink{manager: m, userID: userID},
		func(markAuthorID string, _ []string) {
			m.persistViewed(markAuthorID, userID)
		},
		func(command string) {
			m.sendFrame(userID, websocket.FrameTypeViewerMedia, map[string]string{"command": command})
		},
	)

	live := &liveSession{session: session, stop: make(chan struct{})}
	m.mu.Lock()
	m.sessions[userID] = live
	m.mu.Unlock()

	session.Open(groups, authorIdx)

	// Opening an author counts as seeing their stories, even if the
	// viewer closes before the sequence finishes.
	if authorIdx >= 0 && groups[authorIdx].HasUnviewed {
		m.persistViewed(groups[authorIdx].AuthorID, userID)
	}

	go m.runTicker(live)
}

func (m *Manager) runTicker(live *liveSession) {
	ticker := time.NewTicker(SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			live.session.Tick()
		case <-live.stop:
			return
		}
	}
}

func (m *Manager) persistViewed(authorID, viewerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.stories.MarkViewed(ctx, authorID, viewerID); err != nil {
		logger.Error("Failed to mark stories viewed for author %s: %v", authorID, err)
	}
}

func (m *Manager) get(userID string) *liveSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// stopTicker releases the ticker without touching the session. Used
// when the session has already closed itself.
func (m *Manager) stopTicker(userID string) {
	m.mu.Lock()
	live, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()

	if ok {
		close(live.stop)
	}
}

func (m *Manager) teardown(userID string) {
	m.mu.Lock()
	live, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()

	if ok {
		close(live.stop)
		live.session.Close()
	}
}

func (m *Manager) sendFrame(userID, frameType string, data interface{}) {
	payload, err := websocket.NewFrame(frameType, data)
	if err != nil {
		logger.Error("Failed to encode %s frame: %v", frameType, err)
		return
	}
	m.ws.SendToUser(userID, payload)
}

// userSink publishes session events to the owning client.
type userSink struct {
	manager *Manager
	userID  string
}

func (s *userSink) StateChanged(state State) {
	s.manager.sendFrame(s.userID, websocket.FrameTypeViewerState, state)
}

func (s *userSink) Progress(value float64) {
	s.manager.sendFrame(s.userID, websocket.FrameTypeViewerProgress, map[string]float64{"progress": value})
}

func (s *userSink) Closed() {
	s.manager.sendFrame(s.userID, websocket.FrameTypeViewerClosed, nil)
	go s.manager.stopTicker(s.userID)
}
