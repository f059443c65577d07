// Package anim decides which animation frame is current and when the event
// loop has to wake up for the next one. Callers pass the time in; nothing
// here reads the clock.
package anim

import "time"

// Scheduler tracks the current frame of a looping animation.
type Scheduler struct {
	delays   []time.Duration
	current  int
	nextDue  time.Time
	paused   bool
	pausedAt time.Time
}

// NewScheduler returns a scheduler for frames with the given delays,
// started at now.
func NewScheduler(delays []time.Duration, now time.Time) *Scheduler {
	s := &Scheduler{}
	s.Reset(delays, now)
	return s
}

// Reset replaces the frame sequence and starts it from frame 0 at now.
// A sequence of fewer than two frames never schedules a wakeup.
func (s *Scheduler) Reset(delays []time.Duration, now time.Time) {
	s.delays = append(s.delays[:0], delays...)
	s.current = 0
	s.paused = false
	s.pausedAt = time.Time{}
	if len(s.delays) > 0 {
		s.nextDue = now.Add(s.delays[0])
	} else {
		s.nextDue = time.Time{}
	}
}

// Len returns the number of frames.
func (s *Scheduler) Len() int {
	return len(s.delays)
}

// Current returns the index of the frame on screen.
func (s *Scheduler) Current() int {
	return s.current
}

// NextDue returns when the current frame is due to be replaced.
func (s *Scheduler) NextDue() time.Time {
	return s.nextDue
}

// Paused reports whether playback is paused.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Running reports whether the loop needs timer wakeups.
func (s *Scheduler) Running() bool {
	return len(s.delays) >= 2 && !s.paused
}

// Timeout returns how long the loop may block waiting for input before the
// next frame is due. ok is false when the loop should block on input alone.
// A non-positive timeout means the frame is already due.
func (s *Scheduler) Timeout(now time.Time) (timeout time.Duration, ok bool) {
	if !s.Running() {
		return 0, false
	}
	return s.nextDue.Sub(now), true
}

// Advance moves to the next frame and schedules its due time relative to
// the previous due time, so lateness does not accumulate drift. It advances
// exactly one frame; late reports whether the new due time is already in
// the past, in which case the caller will come straight back for another
// step.
func (s *Scheduler) Advance(now time.Time) (late bool) {
	if len(s.delays) == 0 {
		return false
	}
	s.current = (s.current + 1) % len(s.delays)
	s.nextDue = s.nextDue.Add(s.delays[s.current])
	return s.nextDue.Before(now)
}

// Pause stops playback at now.
func (s *Scheduler) Pause(now time.Time) {
	if s.paused {
		return
	}
	s.paused = true
	s.pausedAt = now
}

// Resume continues playback, shifting the due time by the time spent
// paused.
func (s *Scheduler) Resume(now time.Time) {
	if !s.paused {
		return
	}
	s.nextDue = s.nextDue.Add(now.Sub(s.pausedAt))
	s.paused = false
}

// TogglePause pauses or resumes and returns the new paused state.
func (s *Scheduler) TogglePause(now time.Time) bool {
	if s.paused {
		s.Resume(now)
	} else {
		s.Pause(now)
	}
	return s.paused
}
