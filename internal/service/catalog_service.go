package service

import (
	"context"
	"encoding/json"
	"time"

	"course_platform_backend/internal/model"
	"course_platform_backend/internal/repository"
	"course_platform_backend/internal/util"
	"course_platform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseCacheKeyPrefix = "course:"
	courseCacheTTL       = 10 * time.Minute
)

// courseStore 课程目录的只读查询
type courseStore interface {
	FindByID(id string) (*model.Course, error)
	FindAll() ([]model.Course, error)
}

// CatalogService 课程目录只读服务，目录树在构建后不可变，适合整树缓存
type CatalogService struct {
	CourseRepo courseStore
	Redis      redisCache
}

func NewCatalogService(courseRepo *repository.CourseRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		CourseRepo: courseRepo,
		Redis:      rdb,
	}
}

// GetCourse 取整棵课程目录树，Redis 缓存优先
func (s *CatalogService) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	key := courseCacheKeyPrefix + id

	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var course model.Course
		if jsonErr := json.Unmarshal([]byte(cached), &course); jsonErr == nil {
			return &course, nil
		}
		s.Redis.Del(ctx, key)
	}

	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if encoded, err := json.Marshal(course); err == nil {
		if err := s.Redis.Set(ctx, key, encoded, courseCacheTTL).Err(); err != nil {
			logger.Log.Warn("failed to cache course", zap.String("courseId", id), zap.Error(err))
		}
	}

	return course, nil
}

// ListCourses 课程列表，不展开章节
func (s *CatalogService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.CourseRepo.FindAll()
}
