package main

import (
	"github.com/gogpu/polysketch"
	"github.com/gogpu/polysketch/session"
)

// maxPending bounds the events queued before the session exists.
const maxPending = 256

// host routes window callbacks to the session. The session needs the GPU
// device, which the window only provides on the first frame; input that
// arrives earlier is queued and replayed once the session is attached.
type host struct {
	s       *session.Session
	pending []session.Event
}

// dispatch delivers ev to the session, or queues it until attach.
func (h *host) dispatch(ev session.Event) error {
	if h.s == nil {
		if len(h.pending) >= maxPending {
			polysketch.Logger().Warn("polysketch: event dropped before start", "event", ev)
			return nil
		}
		h.pending = append(h.pending, ev)
		return nil
	}
	return h.s.Handle(ev)
}

// attach installs s, reports the surface size and replays queued events,
// so early presses map with the real viewport.
func (h *host) attach(s *session.Session, width, height int) error {
	h.s = s
	if err := s.Handle(session.Resize{Width: width, Height: height}); err != nil {
		return err
	}
	pending := h.pending
	h.pending = nil
	for _, ev := range pending {
		if err := s.Handle(ev); err != nil {
			return err
		}
	}
	return nil
}

// syncSize re-sends the surface size when it changed or the session lost
// its configuration.
func (h *host) syncSize(width, height int) error {
	if h.s == nil {
		return nil
	}
	vp := h.s.Viewport()
	if h.s.Configured() && uint32(width) == vp.Width && uint32(height) == vp.Height { //nolint:gosec // window sizes are non-negative
		return nil
	}
	return h.s.Handle(session.Resize{Width: width, Height: height})
}
