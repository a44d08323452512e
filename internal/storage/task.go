package storage

import (
	"errors"
	"tubescribe/internal/types"

	"gorm.io/gorm"
)

func SaveTask(task *types.TranscriptionTask) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	// Upsert by TaskId: Id is the primary key but TaskId is the external handle
	var existing types.TranscriptionTask
	result := DB.Where("task_id = ?", task.TaskId).First(&existing)

	if result.Error == nil {
		task.Id = existing.Id // Preserve ID
		return DB.Save(task).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(task).Error
	}
	return result.Error
}

func GetTask(taskId string) (*types.TranscriptionTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var task types.TranscriptionTask
	if err := DB.Preload("OutputFiles").Where("task_id = ?", taskId).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func GetTaskHistory(limit int) ([]types.TranscriptionTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var tasks []types.TranscriptionTask
	if err := DB.Preload("OutputFiles").Order("create_time desc").Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func DeleteTask(taskId string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	if err := DB.Where("task_ref = ?", taskId).Delete(&types.TaskOutputFile{}).Error; err != nil {
		return err
	}
	return DB.Where("task_id = ?", taskId).Delete(&types.TranscriptionTask{}).Error
}

// MarkStaleTasks marks all tasks still in processing state as failed.
// Called on serve startup to clean up zombie tasks from a previous run.
func MarkStaleTasks() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&types.TranscriptionTask{}).
		Where("status = ?", types.TaskStatusProcessing).
		Updates(map[string]interface{}{
			"status":      types.TaskStatusFailed,
			"fail_reason": "服务重启，任务被中断 Task interrupted by restart",
			"status_msg":  "任务中断 Task Interrupted",
		})
	return result.RowsAffected, result.Error
}
