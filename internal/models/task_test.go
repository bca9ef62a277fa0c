package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskDueAt(t *testing.T) {
	task := Task{
		ID:      1,
		DueDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		DueTime: "09:30",
	}

	due, err := task.DueAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC), due)
}

func TestTaskDueAt_InvalidTime(t *testing.T) {
	task := Task{
		ID:      1,
		DueDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		DueTime: "9 o'clock",
	}

	_, err := task.DueAt()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid due time")
}
