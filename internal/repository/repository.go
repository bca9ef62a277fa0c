package repository

import (
	"github.com/toodles-app/toodles/internal/models"
	"github.com/toodles-app/toodles/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByUser returns all of a user's tasks in insertion order
	ListByUser(userID uint64) ([]models.Task, error)

	// ListPage returns one page of a user's tasks, plus the total count
	ListPage(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// Search returns the user's tasks whose name contains term, in insertion order
	Search(userID uint64, term string) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// MarkDone sets a task's done flag
	MarkDone(id uint64) error

	// SetAlarmTriggered sets a task's alarm_triggered flag. The flag only ever
	// goes from false to true, so calling this twice is a no-op on the second
	// call.
	SetAlarmTriggered(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByName finds a user by name
	FindByName(name string) (*models.User, error)
}
