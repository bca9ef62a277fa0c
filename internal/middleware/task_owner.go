package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/toodles-app/toodles/internal/database"
	apierrors "github.com/toodles-app/toodles/internal/errors"
	"github.com/toodles-app/toodles/internal/models"
)

// ContextKeyTask is the gin context key the loaded task is stored under.
const ContextKeyTask = "task"

// RequireTaskOwner checks that the task in the URL exists and belongs to the
// current user, then stores it on the context for the handler.
func RequireTaskOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		// Return 404 for other users' tasks to avoid leaking their existence
		if task.UserID != userID {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskOwner from context
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := value.(models.Task)
	return task, ok
}
