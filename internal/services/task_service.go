package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/toodles-app/toodles/internal/calendar"
	"github.com/toodles-app/toodles/internal/constants"
	"github.com/toodles-app/toodles/internal/eisenhower"
	"github.com/toodles-app/toodles/internal/models"
	"github.com/toodles-app/toodles/internal/repository"
	"github.com/toodles-app/toodles/internal/schedule"
	"github.com/toodles-app/toodles/internal/utils"
)

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrNameRequired            = errors.New("task name is required")
	ErrNameEmpty               = errors.New("task name cannot be empty")
	ErrInvalidTimeEstimate     = errors.New("time estimate must be at least one minute")
	ErrInvalidNotificationTime = errors.New("notification time cannot be negative")
	ErrInvalidDueTime          = errors.New("due time must be in HH:MM format")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	evaluator *schedule.Evaluator
	clock     schedule.Clock
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, clock schedule.Clock) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		evaluator: schedule.NewEvaluator(taskRepo),
		clock:     clock,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name             string
	DueDate          time.Time
	DueTime          string
	TimeEstimate     int
	Urgency          bool
	Importance       bool
	NotificationTime int
	AlarmEnabled     bool
	UserID           uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Name    *string
	DueDate *time.Time
	DueTime *string
}

// CreateTask validates and creates a new task
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.TimeEstimate < 1 {
		return nil, ErrInvalidTimeEstimate
	}
	if input.NotificationTime < 0 {
		return nil, ErrInvalidNotificationTime
	}
	if _, err := time.Parse(constants.DueTimeLayout, input.DueTime); err != nil {
		return nil, ErrInvalidDueTime
	}

	task := &models.Task{
		Name:             name,
		DueDate:          input.DueDate,
		DueTime:          input.DueTime,
		TimeEstimate:     input.TimeEstimate,
		Urgency:          input.Urgency,
		Importance:       input.Importance,
		NotificationTime: input.NotificationTime,
		AlarmEnabled:     input.AlarmEnabled,
		UserID:           input.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns one page of the user's tasks plus the total count
func (s *TaskService) ListTasks(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListPage(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// SearchTasks returns the user's tasks whose name contains term
func (s *TaskService) SearchTasks(userID uint64, term string) ([]models.Task, error) {
	tasks, err := s.taskRepo.Search(userID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask updates a task's name, due date and due time
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameEmpty
		}
		task.Name = name
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.DueTime != nil {
		if _, err := time.Parse(constants.DueTimeLayout, *input.DueTime); err != nil {
			return nil, ErrInvalidDueTime
		}
		task.DueTime = *input.DueTime
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// MarkDone marks a task as done
func (s *TaskService) MarkDone(taskID uint64) error {
	if err := s.taskRepo.MarkDone(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to mark task done: %w", err)
	}
	return nil
}

// CheckAlerts runs one evaluation pass over the user's tasks at the current
// clock instant. Alarm transitions are persisted before the result returns.
func (s *TaskService) CheckAlerts(userID uint64) (schedule.Result, error) {
	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return schedule.Result{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return s.evaluator.Evaluate(tasks, s.clock.Now()), nil
}

// Matrix classifies the user's tasks into the four Eisenhower quadrants
func (s *TaskService) Matrix(userID uint64) (eisenhower.Matrix, error) {
	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return eisenhower.Matrix{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return eisenhower.Classify(tasks), nil
}

// CalendarMonth builds the month grid for the user's tasks along with the full
// task list shown beside it
func (s *TaskService) CalendarMonth(userID uint64, year int, month time.Month) (calendar.Month, []models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return calendar.Month{}, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return calendar.MonthGrid(year, month, tasks), tasks, nil
}
