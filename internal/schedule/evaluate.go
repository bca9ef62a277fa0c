// Package schedule decides which of a user's tasks are due for a reminder and
// which should fire their alarm. It is the piece the UI polls on every render
// cycle; everything it emits is derived from one task snapshot and one instant.
package schedule

import (
	"fmt"
	"time"

	"github.com/toodles-app/toodles/internal/models"
)

// SignalKind distinguishes the two alert signals.
type SignalKind string

const (
	// KindReminder means the task is inside its notify window
	// [due - notification_time, due).
	KindReminder SignalKind = "reminder"

	// KindAlarmFired means the task's due instant has passed and its alarm
	// just transitioned to triggered.
	KindAlarmFired SignalKind = "alarm_fired"
)

// Signal is one alert decision for one task.
type Signal struct {
	Kind SignalKind
	Task models.Task
}

// Diagnostic reports a per-task failure that did not stop the pass.
type Diagnostic struct {
	TaskID uint64
	Err    error
}

// Result is the outcome of one evaluation pass. Signals follow the input task
// order.
type Result struct {
	Signals     []Signal
	Diagnostics []Diagnostic
}

// AlarmStore persists the one-way alarm_triggered transition. The write must
// be idempotent: a second call for the same task is a no-op.
type AlarmStore interface {
	SetAlarmTriggered(taskID uint64) error
}

// Evaluator walks a task snapshot and produces reminder and alarm signals.
type Evaluator struct {
	store AlarmStore
}

// NewEvaluator creates an Evaluator backed by the given store.
func NewEvaluator(store AlarmStore) *Evaluator {
	return &Evaluator{store: store}
}

// Evaluate compares every task against the single instant now.
//
// Done tasks are exempt from both signals. A task inside its notify window
// emits a reminder on every pass; the window re-emits until the due instant
// passes. A task at or past its due instant with the alarm enabled and not yet
// triggered has the flag persisted first, then emits an alarm signal; if the
// write fails the task is skipped with a diagnostic and the pass continues.
func (e *Evaluator) Evaluate(tasks []models.Task, now time.Time) Result {
	var res Result

	for _, task := range tasks {
		if task.Done {
			continue
		}

		due, err := task.DueAt()
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{TaskID: task.ID, Err: err})
			continue
		}
		notifyAt := due.Add(-time.Duration(task.NotificationTime) * time.Minute)

		switch {
		case !now.Before(due):
			if !task.AlarmEnabled || task.AlarmTriggered {
				continue
			}
			if err := e.store.SetAlarmTriggered(task.ID); err != nil {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					TaskID: task.ID,
					Err:    fmt.Errorf("persist alarm for task %d: %w", task.ID, err),
				})
				continue
			}
			task.AlarmTriggered = true
			res.Signals = append(res.Signals, Signal{Kind: KindAlarmFired, Task: task})

		case !now.Before(notifyAt):
			res.Signals = append(res.Signals, Signal{Kind: KindReminder, Task: task})
		}
	}

	return res
}
