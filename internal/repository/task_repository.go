package repository

import (
	"gorm.io/gorm"

	"github.com/toodles-app/toodles/internal/database"
	"github.com/toodles-app/toodles/internal/models"
	"github.com/toodles-app/toodles/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns all of a user's tasks ordered by id, which is insertion
// order. Callers downstream rely on this ordering staying stable.
func (r *GormTaskRepository) ListByUser(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListPage returns one page of a user's tasks, plus the total count
func (r *GormTaskRepository) ListPage(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := query.
		Order("id ASC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Search returns the user's tasks whose name contains term
func (r *GormTaskRepository) Search(userID uint64, term string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ? AND name LIKE ?", userID, "%"+term+"%").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// MarkDone sets a task's done flag
func (r *GormTaskRepository) MarkDone(id uint64) error {
	result := r.db.Model(&models.Task{}).Where("id = ?", id).Update("done", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetAlarmTriggered sets a task's alarm_triggered flag. The WHERE clause keeps
// the write one-way: a task that already fired is left untouched, so repeated
// calls are no-ops.
func (r *GormTaskRepository) SetAlarmTriggered(id uint64) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND alarm_triggered = ?", id, false).
		Update("alarm_triggered", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the record vanished or the flag was already set; check which.
		var count int64
		if err := r.db.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}
