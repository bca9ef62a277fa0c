// Package eisenhower partitions tasks into the four urgency/importance
// quadrants of the Eisenhower matrix.
package eisenhower

import (
	"github.com/toodles-app/toodles/internal/models"
)

// Matrix holds the four quadrants. Every input task lands in exactly one of
// them, and each quadrant preserves the input's relative order.
type Matrix struct {
	DoFirst   []models.Task // urgent and important
	Schedule  []models.Task // important, not urgent
	Delegate  []models.Task // urgent, not important
	Eliminate []models.Task // neither
}

// Classify partitions tasks by their (urgency, importance) pair. It is a pure
// function of the input sequence.
func Classify(tasks []models.Task) Matrix {
	var m Matrix

	for _, task := range tasks {
		switch {
		case task.Urgency && task.Importance:
			m.DoFirst = append(m.DoFirst, task)
		case !task.Urgency && task.Importance:
			m.Schedule = append(m.Schedule, task)
		case task.Urgency && !task.Importance:
			m.Delegate = append(m.Delegate, task)
		default:
			m.Eliminate = append(m.Eliminate, task)
		}
	}

	return m
}
