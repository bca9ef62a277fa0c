// Package calendar builds the month grid the task calendar view renders.
package calendar

import (
	"time"

	"github.com/toodles-app/toodles/internal/models"
)

// Day is one cell of the month grid. Day 0 marks padding cells outside the
// month, matching the way week rows are squared off.
type Day struct {
	Day      int    `json:"day"`
	HasTask  bool   `json:"has_task"`
	TaskName string `json:"task_name,omitempty"`
	Done     bool   `json:"done,omitempty"`
}

// Week is one Monday-first row of the grid.
type Week [7]Day

// Month is the full grid for one month.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks []Week     `json:"weeks"`
}

// MonthGrid lays out the given month with the user's tasks placed on their due
// dates. When several tasks share a date the last one in task order wins the
// cell, which mirrors how the due-date lookup has always behaved.
func MonthGrid(year int, month time.Month, tasks []models.Task) Month {
	byDay := make(map[int]models.Task)
	for _, task := range tasks {
		if task.DueDate.Year() == year && task.DueDate.Month() == month {
			byDay[task.DueDate.Day()] = task
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-first column index of the 1st.
	col := (int(first.Weekday()) + 6) % 7

	m := Month{Year: year, Month: month}
	var week Week

	for day := 1; day <= daysInMonth; day++ {
		cell := Day{Day: day}
		if task, ok := byDay[day]; ok {
			cell.HasTask = true
			cell.TaskName = task.Name
			cell.Done = task.Done
		}
		week[col] = cell

		col++
		if col == 7 {
			m.Weeks = append(m.Weeks, week)
			week = Week{}
			col = 0
		}
	}
	if col != 0 {
		m.Weeks = append(m.Weeks, week)
	}

	return m
}
