package viewer

import (
	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
)

// Media element commands sent to the client.
const (
	CommandLoad  = "load"  // buffer the new source, muted
	CommandPlay  = "play"
	CommandPause = "pause"
	CommandMute  = "mute"
	CommandReset = "reset" // drop listeners and rewind to zero
)

// Media element events reported by the client.
const (
	EventCanPlay      = "canplay"
	EventTimeUpdate   = "timeupdate"
	EventEnded        = "ended"
	EventPlay         = "play"
	EventPause        = "pause"
	EventPlayRejected = "play_rejected"
)

// Videos are cut off after this many seconds of reported playback even
// if their declared duration says otherwise.
const maxPlaybackSeconds = 60

// CommandFunc delivers a media command to the session owner's client.
type CommandFunc func(command string)

// Playback coordinates the client's media element for the active story:
// it requests buffering and playback, retries autoplay muted when the
// client rejects it, and forces advancement when the media ends or runs
// past the cap. It is owned by a Session and relies on its lock.
type Playback struct {
	send       CommandFunc
	advance    func()
	setPlaying func(bool)

	isVideo bool
	ready   bool
	muted   bool
	active  bool
}

func newPlayback(send CommandFunc, advance func(), setPlaying func(bool)) *Playback {
	if send == nil {
		send = func(string) {}
	}
	return &Playback{
		send:       send,
		advance:    advance,
		setPlaying: setPlaying,
	}
}

// resetForStory prepares the media element for a new story. Videos
// start muted and buffering; readiness is re-established per story.
func (p *Playback) resetForStory(story *entity.Story) {
	p.send(CommandReset)

	p.ready = false
	p.muted = false
	p.active = true
	p.isVideo = story != nil && story.MediaType == entity.MediaTypeVideo

	if p.isVideo {
		p.muted = true
		p.send(CommandMute)
		p.send(CommandLoad)
	}
}

// setActive mirrors the session's play state into the media element.
func (p *Playback) setActive(active bool) {
	p.active = active
	if !p.isVideo {
		return
	}
	if active {
		p.send(CommandPlay)
	} else {
		p.send(CommandPause)
	}
}

func (p *Playback) handleEvent(event string, position float64) {
	switch event {
	case EventCanPlay:
		p.ready = true
		if p.active {
			p.send(CommandPlay)
		}

	case EventPlayRejected:
		// Autoplay policies reject unmuted playback; retry muted.
		if !p.muted {
			p.muted = true
			p.send(CommandMute)
		}
		p.send(CommandPlay)

	case EventTimeUpdate:
		if position >= maxPlaybackSeconds {
			p.advance()
		}

	case EventEnded:
		p.advance()

	case EventPlay:
		p.setPlaying(true)

	case EventPause:
		p.setPlaying(false)
	}
}

func (p *Playback) teardown() {
	p.ready = false
	p.active = false
	p.send(CommandReset)
}
