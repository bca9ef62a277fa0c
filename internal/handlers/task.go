package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/toodles-app/toodles/internal/dto"
	apierrors "github.com/toodles-app/toodles/internal/errors"
	"github.com/toodles-app/toodles/internal/middleware"
	"github.com/toodles-app/toodles/internal/services"
	"github.com/toodles-app/toodles/internal/utils"
)

// dueDateLayout is the date-only wire format for due dates.
const dueDateLayout = "2006-01-02"

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns one page of the current user's tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateTask creates a new task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Name             string `json:"name" binding:"required"`
		DueDate          string `json:"due_date" binding:"required"`
		DueTime          string `json:"due_time" binding:"required"`
		TimeEstimate     int    `json:"time_estimate" binding:"required"`
		Urgency          bool   `json:"urgency"`
		Importance       bool   `json:"importance"`
		NotificationTime int    `json:"notification_time"`
		AlarmEnabled     bool   `json:"alarm_enabled"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := time.Parse(dueDateLayout, req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:             req.Name,
		DueDate:          dueDate,
		DueTime:          req.DueTime,
		TimeEstimate:     req.TimeEstimate,
		Urgency:          req.Urgency,
		Importance:       req.Importance,
		NotificationTime: req.NotificationTime,
		AlarmEnabled:     req.AlarmEnabled,
		UserID:           userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns the task loaded by the RequireTaskOwner middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// UpdateTask updates a task's name, due date and due time
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateTaskRequest struct {
		Name    *string `json:"name"`
		DueDate *string `json:"due_date"`
		DueTime *string `json:"due_time"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Name:    req.Name,
		DueTime: req.DueTime,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
			return
		}
		input.DueDate = &dueDate
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// MarkDone marks a task as done
func (h *TaskHandler) MarkDone(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.MarkDone(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task marked as done",
	})
}

// SearchTasks returns the user's tasks matching the q query parameter
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	term := c.Query("q")
	if term == "" {
		apierrors.BadRequest(c, "Missing search term")
		return
	}

	tasks, err := h.taskService.SearchTasks(userID, term)
	if err != nil {
		apierrors.InternalError(c, "Failed to search tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// Calendar returns the month grid for the user's tasks. Defaults to the
// current month when year/month are not given.
func (h *TaskHandler) Calendar(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid year")
			return
		}
		year = y
	}
	if monthStr := c.Query("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			apierrors.BadRequest(c, "Invalid month")
			return
		}
		month = time.Month(m)
	}

	grid, tasks, err := h.taskService.CalendarMonth(userID, year, month)
	if err != nil {
		apierrors.InternalError(c, "Failed to build calendar")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"calendar": grid,
		"tasks":    dto.ToTaskDTOs(tasks),
	})
}

// Alerts runs one reminder/alarm evaluation pass over the user's tasks
func (h *TaskHandler) Alerts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	result, err := h.taskService.CheckAlerts(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to check alerts")
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertsResponse(result))
}

// Matrix returns the user's tasks classified into Eisenhower quadrants
func (h *TaskHandler) Matrix(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	matrix, err := h.taskService.Matrix(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to build schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToMatrixResponse(matrix))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameEmpty),
		errors.Is(err, services.ErrInvalidTimeEstimate),
		errors.Is(err, services.ErrInvalidNotificationTime),
		errors.Is(err, services.ErrInvalidDueTime):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
