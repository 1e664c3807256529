package repository

import (
	"course_platform_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Find 取 (用户, 课程) 的进度记录，不存在时返回 gorm.ErrRecordNotFound
func (r *ProgressRepository) Find(userID uint, courseID string) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Save 整条记录写回，首次完成事件时创建
func (r *ProgressRepository) Save(progress *model.Progress) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.Progress
		err := tx.Where("user_id = ? AND course_id = ?", progress.UserID, progress.CourseID).
			First(&existing).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			return tx.Create(progress).Error
		}

		existing.CompletedVideos = progress.CompletedVideos
		return tx.Save(&existing).Error
	})
}
