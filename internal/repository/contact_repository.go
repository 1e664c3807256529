package repository

import (
	"course_platform_backend/internal/model"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(submission *model.ContactSubmission) error {
	return r.DB.Create(submission).Error
}

// List 分页列出提交记录，最新在前
func (r *ContactRepository) List(page, limit int) ([]model.ContactSubmission, int64, error) {
	var submissions []model.ContactSubmission
	var total int64

	if err := r.DB.Model(&model.ContactSubmission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *ContactRepository) Delete(id string) error {
	result := r.DB.Delete(&model.ContactSubmission{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
