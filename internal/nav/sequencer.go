// Package nav walks the files next to the current image.
package nav

import (
	"errors"
	"fmt"
	"log"

	"viewer/internal/debug"
	"viewer/internal/imagepath"
)

// ErrNoLoadableFile is returned when a full pass over the listing finds
// nothing that loads.
var ErrNoLoadableFile = errors.New("no loadable file")

// LoadFunc tries to load a candidate. ok=false with a nil error means the
// candidate was rejected and the scan continues; a non-nil error aborts it.
type LoadFunc func(p imagepath.ImagePath) (ok bool, err error)

// Sequencer owns the listing cursor. The listing is built on the first
// Step after the current file changes.
type Sequencer struct {
	lister   Lister
	strategy SortStrategy

	current imagepath.ImagePath
	listing []Entry
	index   int
}

// NewSequencer creates a sequencer. A nil strategy sorts by modification
// time.
func NewSequencer(lister Lister, strategy SortStrategy) *Sequencer {
	if strategy == nil {
		strategy = &ModTimeSortStrategy{}
	}
	return &Sequencer{lister: lister, strategy: strategy}
}

// SetCurrent records the image on screen and drops any listing.
func (s *Sequencer) SetCurrent(p imagepath.ImagePath) {
	s.current = p
	s.listing = nil
	s.index = 0
}

// Current returns the image on screen.
func (s *Sequencer) Current() imagepath.ImagePath {
	return s.current
}

// Listing returns the populated listing, or nil.
func (s *Sequencer) Listing() []Entry {
	return s.listing
}

// populate builds the listing if needed. It reports false when the current
// file is missing from a fresh listing; the listing is then left empty so
// the next request scans again.
func (s *Sequencer) populate() bool {
	if s.listing != nil {
		return true
	}

	entries, err := s.lister.List(s.current)
	if err != nil {
		log.Printf("Warning: Failed to list files next to %s, navigation disabled: %v", s.current, err)
		s.listing = []Entry{{Path: s.current, Name: s.current.Name()}}
		s.index = 0
		return true
	}

	sorted := s.strategy.Sort(entries)
	name := s.current.Name()
	for i, e := range sorted {
		if e.Name == name {
			s.listing = sorted
			s.index = i
			debug.Logf("listed %d files, %s at %d", len(sorted), name, i)
			return true
		}
	}
	log.Printf("Warning: %s is no longer in its directory", s.current)
	return false
}

// Step moves to the next (or, with reverse, previous) candidate that
// loads, wrapping around. Candidates that fail to load are skipped. When
// the scan returns to the starting position without success it returns
// ErrNoLoadableFile.
func (s *Sequencer) Step(reverse bool, load LoadFunc) error {
	if !s.populate() {
		ok, err := load(s.current)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("reloading %s: %w", s.current, ErrNoLoadableFile)
		}
		return nil
	}

	n := len(s.listing)
	step := 1
	if reverse {
		step = n - 1
	}
	start := s.index
	for {
		s.index = (s.index + step) % n
		cand := s.listing[s.index]
		ok, err := load(cand.Path)
		if err != nil {
			return err
		}
		if ok {
			s.current = cand.Path
			return nil
		}
		debug.Logf("skipping %s", cand.Path)
		if s.index == start {
			return fmt.Errorf("scanned %d files: %w", n, ErrNoLoadableFile)
		}
	}
}
