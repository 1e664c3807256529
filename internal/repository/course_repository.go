package repository

import (
	"course_platform_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// FindByID 取整棵课程目录树，章节与视频按 order 排序
func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.`order` ASC")
		}).
		Preload("Modules.Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("videos.`order` ASC")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindAll 课程列表，不展开章节
func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("created_at ASC").Find(&courses).Error
	return courses, err
}
