package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// renderDueMsg fires a scheduled controller task on the update loop
type renderDueMsg struct {
	id uint64
}

// TeaScheduler runs controller tasks on the Bubble Tea update loop.
// Scheduling queues a tea.Tick; the tick delivers renderDueMsg back to
// Update, which runs the task unless it was cancelled in between. It must
// only be used from the update loop.
type TeaScheduler struct {
	next  uint64
	tasks map[uint64]func()
	queue []tea.Cmd
}

// NewTeaScheduler creates an empty scheduler
func NewTeaScheduler() *TeaScheduler {
	return &TeaScheduler{tasks: make(map[uint64]func())}
}

// Schedule implements catalog.Scheduler. A non-positive delay runs the
// task immediately.
func (s *TeaScheduler) Schedule(delay time.Duration, task func()) func() {
	if delay <= 0 {
		task()
		return func() {}
	}

	s.next++
	id := s.next
	s.tasks[id] = task
	s.queue = append(s.queue, tea.Tick(delay, func(time.Time) tea.Msg {
		return renderDueMsg{id: id}
	}))
	return func() { delete(s.tasks, id) }
}

// Drain returns the ticks queued since the last call
func (s *TeaScheduler) Drain() tea.Cmd {
	if len(s.queue) == 0 {
		return nil
	}
	cmds := s.queue
	s.queue = nil
	return tea.Batch(cmds...)
}

// Fire runs the task for id. It reports false for cancelled or unknown ids.
func (s *TeaScheduler) Fire(id uint64) bool {
	task, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	task()
	return true
}

// Pending reports how many tasks are waiting to fire
func (s *TeaScheduler) Pending() int {
	return len(s.tasks)
}
