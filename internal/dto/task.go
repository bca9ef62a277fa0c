package dto

import (
	"time"

	"github.com/toodles-app/toodles/internal/eisenhower"
	"github.com/toodles-app/toodles/internal/models"
	"github.com/toodles-app/toodles/internal/schedule"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	DueDate          string    `json:"due_date"`
	DueTime          string    `json:"due_time"`
	TimeEstimate     int       `json:"time_estimate"`
	Urgency          bool      `json:"urgency"`
	Importance       bool      `json:"importance"`
	Done             bool      `json:"done"`
	NotificationTime int       `json:"notification_time"`
	AlarmEnabled     bool      `json:"alarm_enabled"`
	AlarmTriggered   bool      `json:"alarm_triggered"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SignalDTO represents one reminder or alarm signal in the alerts response
type SignalDTO struct {
	Kind schedule.SignalKind `json:"kind"`
	Task TaskDTO             `json:"task"`
}

// DiagnosticDTO reports a task that was skipped during an evaluation pass
type DiagnosticDTO struct {
	TaskID uint64 `json:"task_id"`
	Error  string `json:"error"`
}

// AlertsResponse is the payload of one evaluation pass
type AlertsResponse struct {
	Signals     []SignalDTO     `json:"signals"`
	Diagnostics []DiagnosticDTO `json:"diagnostics,omitempty"`
}

// ScheduleEntryDTO is one task in a matrix quadrant listing
type ScheduleEntryDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	DueDate      string `json:"due_date"`
	TimeEstimate int    `json:"time_estimate"`
}

// MatrixResponse holds the four Eisenhower quadrants
type MatrixResponse struct {
	DoFirst   []ScheduleEntryDTO `json:"do_first"`
	Schedule  []ScheduleEntryDTO `json:"schedule"`
	Delegate  []ScheduleEntryDTO `json:"delegate"`
	Eliminate []ScheduleEntryDTO `json:"eliminate"`
}

// dueDateLayout is the date-only wire format for due dates.
const dueDateLayout = "2006-01-02"

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:   user.ID,
		Name: user.Name,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:               task.ID,
		Name:             task.Name,
		DueDate:          task.DueDate.Format(dueDateLayout),
		DueTime:          task.DueTime,
		TimeEstimate:     task.TimeEstimate,
		Urgency:          task.Urgency,
		Importance:       task.Importance,
		Done:             task.Done,
		NotificationTime: task.NotificationTime,
		AlarmEnabled:     task.AlarmEnabled,
		AlarmTriggered:   task.AlarmTriggered,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToAlertsResponse converts an evaluation result to the alerts payload
func ToAlertsResponse(result schedule.Result) AlertsResponse {
	resp := AlertsResponse{
		Signals: make([]SignalDTO, len(result.Signals)),
	}

	for i, signal := range result.Signals {
		resp.Signals[i] = SignalDTO{
			Kind: signal.Kind,
			Task: ToTaskDTO(signal.Task),
		}
	}

	for _, diag := range result.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, DiagnosticDTO{
			TaskID: diag.TaskID,
			Error:  diag.Err.Error(),
		})
	}

	return resp
}

// ToMatrixResponse converts a classified matrix to the schedule payload
func ToMatrixResponse(m eisenhower.Matrix) MatrixResponse {
	return MatrixResponse{
		DoFirst:   toScheduleEntries(m.DoFirst),
		Schedule:  toScheduleEntries(m.Schedule),
		Delegate:  toScheduleEntries(m.Delegate),
		Eliminate: toScheduleEntries(m.Eliminate),
	}
}

func toScheduleEntries(tasks []models.Task) []ScheduleEntryDTO {
	entries := make([]ScheduleEntryDTO, len(tasks))
	for i, task := range tasks {
		entries[i] = ScheduleEntryDTO{
			ID:           task.ID,
			Name:         task.Name,
			DueDate:      task.DueDate.Format(dueDateLayout),
			TimeEstimate: task.TimeEstimate,
		}
	}
	return entries
}
