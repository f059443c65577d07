package main

import (
	"errors"
	"time"

	"github.com/ncruces/zenity"

	"viewer/internal/backend"
	"viewer/internal/imagepath"
	"viewer/internal/session"
)

const dialogPollInterval = 10 * time.Millisecond

var errNoFileChosen = errors.New("no file chosen")

// chooseFile shows the open-file dialog on its own goroutine and polls for
// its result, watching the event queue for a window close meanwhile. A
// close returns session.ErrQuit.
func chooseFile(b *ebitenBackend) (string, error) {
	type result struct {
		path string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Open image"),
			zenity.FileFilters{{
				Name:     "Images and archives",
				Patterns: imagepath.SupportedPatterns(),
				CaseFold: true,
			}},
		)
		done <- result{path: path, err: err}
	}()

	ticker := time.NewTicker(dialogPollInterval)
	defer ticker.Stop()
	for {
		select {
		case r := <-done:
			if errors.Is(r.err, zenity.ErrCanceled) {
				return "", errNoFileChosen
			}
			if r.err != nil {
				return "", r.err
			}
			return r.path, nil
		case <-ticker.C:
			if quitRequested(b) {
				return "", session.ErrQuit
			}
		}
	}
}

// quitRequested drains pending events and reports whether one was a quit.
func quitRequested(b backend.Backend) bool {
	for {
		ev, ok := b.WaitEvent(0)
		if !ok {
			return false
		}
		if ev.Type == backend.EventQuit {
			return true
		}
	}
}
