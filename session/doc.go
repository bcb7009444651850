// Package session is the owning context of one sketching window.
//
// A Session holds the viewport, the cursor readout, the clear color and the
// GPU synchronizer. The host feeds it input events through Handle and asks
// for frames through Render, both from the same event loop:
//
//	s, err := session.New(dev, cfg, session.NewTerminalOverlay(os.Stdout))
//	...
//	s.Handle(session.Resize{Width: 800, Height: 600})
//	s.Handle(session.PointerPress{X: 400, Y: 300})
//	s.Render(view)
//
// A pointer press finishes geometry regeneration and the buffer upload
// before Handle returns, so Render always sees a complete node list.
package session
