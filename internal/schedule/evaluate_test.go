package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toodles-app/toodles/internal/models"
)

// fakeAlarmStore records SetAlarmTriggered calls and can fail selected tasks.
type fakeAlarmStore struct {
	calls   []uint64
	failFor map[uint64]error
}

func (s *fakeAlarmStore) SetAlarmTriggered(taskID uint64) error {
	if err, ok := s.failFor[taskID]; ok {
		return err
	}
	s.calls = append(s.calls, taskID)
	return nil
}

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func makeTask(id uint64, due time.Time, notification int) models.Task {
	return models.Task{
		ID:               id,
		Name:             "task",
		DueDate:          time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC),
		DueTime:          due.Format("15:04"),
		TimeEstimate:     30,
		NotificationTime: notification,
	}
}

func TestEvaluate_ReminderWindow(t *testing.T) {
	store := &fakeAlarmStore{}
	e := NewEvaluator(store)

	due := date(2024, time.June, 1, 9, 0)
	task := makeTask(1, due, 15)

	// Before the window opens: nothing.
	res := e.Evaluate([]models.Task{task}, date(2024, time.June, 1, 8, 44))
	assert.Empty(t, res.Signals)

	// Exactly at notify_at: reminder (window is closed at the left edge).
	res = e.Evaluate([]models.Task{task}, date(2024, time.June, 1, 8, 45))
	require.Len(t, res.Signals, 1)
	assert.Equal(t, KindReminder, res.Signals[0].Kind)
	assert.Equal(t, uint64(1), res.Signals[0].Task.ID)

	// Still inside: reminders re-emit every pass.
	res = e.Evaluate([]models.Task{task}, date(2024, time.June, 1, 8, 50))
	require.Len(t, res.Signals, 1)
	assert.Equal(t, KindReminder, res.Signals[0].Kind)

	// Exactly at due with no alarm enabled: no reminder, no alarm.
	res = e.Evaluate([]models.Task{task}, due)
	assert.Empty(t, res.Signals)
	assert.Empty(t, store.calls)
}

func TestEvaluate_AlarmFiresAtDue(t *testing.T) {
	store := &fakeAlarmStore{}
	e := NewEvaluator(store)

	due := date(2024, time.June, 1, 9, 0)
	task := makeTask(1, due, 15)
	task.AlarmEnabled = true

	// At the exact due instant the alarm fires, not a reminder.
	res := e.Evaluate([]models.Task{task}, due)
	require.Len(t, res.Signals, 1)
	assert.Equal(t, KindAlarmFired, res.Signals[0].Kind)
	assert.True(t, res.Signals[0].Task.AlarmTriggered)
	assert.Equal(t, []uint64{1}, store.calls)

	// A later pass with the persisted flag never fires again.
	task.AlarmTriggered = true
	res = e.Evaluate([]models.Task{task}, date(2024, time.June, 1, 9, 5))
	assert.Empty(t, res.Signals)
	assert.Equal(t, []uint64{1}, store.calls)
}

func TestEvaluate_FullScenario(t *testing.T) {
	store := &fakeAlarmStore{}
	e := NewEvaluator(store)

	due := date(2024, time.June, 1, 9, 0)
	task := makeTask(1, due, 15)
	task.AlarmEnabled = true

	// 08:50 -> reminder
	res := e.Evaluate([]models.Task{task}, date(2024, time.June, 1, 8, 50))
	require.Len(t, res.Signals, 1)
	assert.Equal(t, KindReminder, res.Signals[0].Kind)

	// 09:00 -> alarm fires and the transition is persisted
	res = e.Evaluate([]models.Task{task}, date(2024, time.June, 1, 9, 0))
	require.Len(t, res.Signals, 1)
	assert.Equal(t, KindAlarmFired, res.Signals[0].Kind)
	assert.Equal(t, []uint64{1}, store.calls)

	// 09:05 re-evaluation with the updated snapshot -> silence
	task.AlarmTriggered = true
	res = e.Evaluate([]models.Task{task}, date(2024, time.June, 1, 9, 5))
	assert.Empty(t, res.Signals)
}

func TestEvaluate_DoneTasksAreExempt(t *testing.T) {
	store := &fakeAlarmStore{}
	e := NewEvaluator(store)

	due := date(2024, time.June, 1, 9, 0)

	inWindow := makeTask(1, due, 15)
	inWindow.Done = true

	overdue := makeTask(2, due, 0)
	overdue.AlarmEnabled = true
	overdue.Done = true

	res := e.Evaluate([]models.Task{inWindow, overdue}, date(2024, time.June, 1, 8, 50))
	assert.Empty(t, res.Signals)

	res = e.Evaluate([]models.Task{inWindow, overdue}, date(2024, time.June, 1, 10, 0))
	assert.Empty(t, res.Signals)
	assert.Empty(t, store.calls)
}

func TestEvaluate_OverdueWithoutAlarmStaysSilent(t *testing.T) {
	e := NewEvaluator(&fakeAlarmStore{})

	task := makeTask(1, date(2024, time.June, 1, 9, 0), 0)

	res := e.Evaluate([]models.Task{task}, date(2024, time.June, 2, 9, 0))
	assert.Empty(t, res.Signals)
	assert.Empty(t, res.Diagnostics)
}

func TestEvaluate_LeadTimeLongerThanTimeToDue(t *testing.T) {
	e := NewEvaluator(&fakeAlarmStore{})

	// The window opened before the task existed; it is simply already open.
	due := date(2024, time.June, 1, 9, 0)
	task := makeTask(1, due, 24*60)

	res := e.Evaluate([]models.Task{task}, date(2024, time.May, 31, 12, 0))
	require.Len(t, res.Signals, 1)
	assert.Equal(t, KindReminder, res.Signals[0].Kind)
}

func TestEvaluate_InvalidDueTimeIsDiagnosed(t *testing.T) {
	store := &fakeAlarmStore{}
	e := NewEvaluator(store)

	bad := makeTask(1, date(2024, time.June, 1, 9, 0), 0)
	bad.DueTime = "nonsense"
	bad.AlarmEnabled = true

	good := makeTask(2, date(2024, time.June, 1, 9, 0), 15)

	res := e.Evaluate([]models.Task{bad, good}, date(2024, time.June, 1, 8, 50))

	// The bad record is reported, the good one still gets its reminder.
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, uint64(1), res.Diagnostics[0].TaskID)
	require.Len(t, res.Signals, 1)
	assert.Equal(t, uint64(2), res.Signals[0].Task.ID)
	assert.Empty(t, store.calls)
}

func TestEvaluate_StoreFailureDoesNotAbortPass(t *testing.T) {
	storeErr := errors.New("record vanished")
	store := &fakeAlarmStore{failFor: map[uint64]error{1: storeErr}}
	e := NewEvaluator(store)

	due := date(2024, time.June, 1, 9, 0)

	first := makeTask(1, due, 0)
	first.AlarmEnabled = true
	second := makeTask(2, due, 0)
	second.AlarmEnabled = true

	res := e.Evaluate([]models.Task{first, second}, date(2024, time.June, 1, 9, 0))

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, uint64(1), res.Diagnostics[0].TaskID)
	assert.ErrorIs(t, res.Diagnostics[0].Err, storeErr)

	require.Len(t, res.Signals, 1)
	assert.Equal(t, KindAlarmFired, res.Signals[0].Kind)
	assert.Equal(t, uint64(2), res.Signals[0].Task.ID)
	assert.Equal(t, []uint64{2}, store.calls)
}

func TestEvaluate_SignalsFollowInputOrder(t *testing.T) {
	store := &fakeAlarmStore{}
	e := NewEvaluator(store)

	due := date(2024, time.June, 1, 9, 0)

	overdue := makeTask(1, date(2024, time.June, 1, 8, 0), 0)
	overdue.AlarmEnabled = true
	reminded := makeTask(2, due, 30)
	alsoOverdue := makeTask(3, date(2024, time.June, 1, 8, 30), 0)
	alsoOverdue.AlarmEnabled = true

	res := e.Evaluate([]models.Task{overdue, reminded, alsoOverdue}, date(2024, time.June, 1, 8, 45))

	require.Len(t, res.Signals, 3)
	assert.Equal(t, uint64(1), res.Signals[0].Task.ID)
	assert.Equal(t, KindAlarmFired, res.Signals[0].Kind)
	assert.Equal(t, uint64(2), res.Signals[1].Task.ID)
	assert.Equal(t, KindReminder, res.Signals[1].Kind)
	assert.Equal(t, uint64(3), res.Signals[2].Task.ID)
	assert.Equal(t, KindAlarmFired, res.Signals[2].Kind)
}

func TestEvaluate_ZeroLeadTimeNotifiesOnlyAtDue(t *testing.T) {
	store := &fakeAlarmStore{}
	e := NewEvaluator(store)

	due := date(2024, time.June, 1, 9, 0)
	task := makeTask(1, due, 0)

	// With a zero lead time the window [due, due) is empty, so no reminder
	// ever fires.
	res := e.Evaluate([]models.Task{task}, date(2024, time.June, 1, 8, 59))
	assert.Empty(t, res.Signals)

	res = e.Evaluate([]models.Task{task}, due)
	assert.Empty(t, res.Signals)
}

func TestEvaluate_EmptyInput(t *testing.T) {
	e := NewEvaluator(&fakeAlarmStore{})

	res := e.Evaluate(nil, time.Now())
	assert.Empty(t, res.Signals)
	assert.Empty(t, res.Diagnostics)
}
