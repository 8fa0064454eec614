package websocket

import (
	"encoding/json"
	"time"

	"github.com/Vadim-maker-source/vexnum/pkg/logger"
)

// Frame types exchanged over the push channel.
const (
	FrameTypePing = "ping"
	FrameTypePong = "pong"

	// Server -> client: a document was created in a collection the
	// client cares about. Payload carries the full document.
	FrameTypeDocumentCreated = "document_created"

	// Client -> server: story viewer control.
	FrameTypeViewerOpen   = "viewer_open"
	FrameTypeViewerTap    = "viewer_tap"
	FrameTypeViewerToggle = "viewer_toggle"
	FrameTypeViewerClose  = "viewer_close"

	// Client -> server: media element lifecycle reports
	// (canplay, timeupdate, ended, play, pause, play_rejected).
	FrameTypeViewerMediaEvent = "viewer_media_event"

	// Server -> client: story viewer state.
	FrameTypeViewerState    = "viewer_state"
	FrameTypeViewerProgress = "viewer_progress"
	FrameTypeViewerClosed   = "viewer_closed"

	// Server -> client: media element command (load, play, pause, mute, reset).
	FrameTypeViewerMedia = "viewer_media"
)

// Frame is the wire structure for every websocket exchange.
type Frame struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type DocumentCreatedData struct {
	Collection string      `json:"collection"`
	Document   interface{} `json:"document"`
}

type ViewerOpenData struct {
	AuthorID string `json:"author_id"`
	ViewMode string `json:"view_mode"` // "all" or "subscriptions"
}

type ViewerTapData struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

type ViewerMediaEventData struct {
	Event    string  `json:"event"`
	Position float64 `json:"position,omitempty"` // seconds, timeupdate only
}

// NewFrame marshals data into a timestamped frame, ready to send.
func NewFrame(frameType string, data interface{}) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	return json.Marshal(Frame{
		Type:      frameType,
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleClientMessage decodes an incoming frame and dispatches it.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var frame Frame
	if err := json.Unmarshal(messageBytes, &frame); err != nil {
		logger.Warn("Dropping malformed frame from %s: %v", client.UserID, err)
		return
	}

	if frame.Type == FrameTypePing {
		pong, err := NewFrame(FrameTypePong, nil)
		if err == nil {
			m.SendToUser(client.UserID, pong)
		}
		return
	}

	if m.handler != nil {
		m.handler.HandleFrame(client, frame)
	}
}

// PublishDocumentCreated pushes a document-created event to each
// recipient, in emit order. Recipients append without reordering.
func (m *Manager) PublishDocumentCreated(collection string, document interface{}, recipients []string) {
	payload, err := NewFrame(FrameTypeDocumentCreated, DocumentCreatedData{
		Collection: collection,
		Document:   document,
	})
	if err != nil {
		logger.Error("Failed to encode document event: %v", err)
		return
	}

	for _, userID := range recipients {
		m.SendToUser(userID, payload)
	}
}
