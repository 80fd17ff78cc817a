package core

import (
	"sort"
	"time"
)

// TaskID identifies a scheduled task.
type TaskID uint64

type scheduledTask struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// Scheduler runs one-shot tasks against a simulated clock that only moves
// when Advance is called. Games drive it from Step, so timers are
// deterministic and die with the game that owns them.
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	tasks  []scheduledTask
	due    []scheduledTask // tasks being run by Advance
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulated time elapsed so far.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once when the clock has advanced by d.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, scheduledTask{id: s.nextID, due: s.now + d, fn: fn})
	return s.nextID
}

// Cancel removes a pending task. It returns false if the task already ran
// or was never scheduled.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	for i, t := range s.due {
		if t.id == id {
			s.due = append(s.due[:i], s.due[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task and returns how many were dropped.
func (s *Scheduler) CancelAll() int {
	n := len(s.tasks) + len(s.due)
	s.tasks = s.tasks[:0]
	s.due = s.due[:0]
	return n
}

// Advance moves the clock forward and runs every task that became due, in
// due order. Due tasks are removed before any of them runs, so a callback
// may cancel or schedule tasks freely; tasks it schedules wait for the next
// Advance. Returns the number of tasks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.due <= s.now {
			s.due = append(s.due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept

	sort.SliceStable(s.due, func(i, j int) bool {
		return s.due[i].due < s.due[j].due
	})

	ran := 0
	for len(s.due) > 0 {
		t := s.due[0]
		s.due = s.due[1:]
		t.fn()
		ran++
	}
	return ran
}
