package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"course_platform_backend/internal/model"
	"course_platform_backend/internal/repository"
	"course_platform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const progressCacheTTL = 30 * time.Minute

// progressStore 进度记录的持久化读写，未命中返回 gorm.ErrRecordNotFound
type progressStore interface {
	Find(userID uint, courseID string) (*model.Progress, error)
	Save(progress *model.Progress) error
}

type ProgressService struct {
	ProgressRepo progressStore
	Redis        redisCache
}

func NewProgressService(progressRepo *repository.ProgressRepository, rdb *redis.Client) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		Redis:        rdb,
	}
}

func progressKey(userID uint, courseID string) string {
	return fmt.Sprintf("progress:%d:%s", userID, courseID)
}

// decodeCompleted 解析持久化的已完成视频列表
// 损坏的数据按"尚无进度"处理，只记日志不向上抛错
func decodeCompleted(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var completed []string
	if err := json.Unmarshal([]byte(raw), &completed); err != nil {
		logger.Log.Warn("discarding unparseable progress payload", zap.Error(err))
		return []string{}
	}
	if completed == nil {
		return []string{}
	}
	return completed
}

// appendIfMissing 幂等追加：已存在时返回原切片
func appendIfMissing(completed []string, videoID string) []string {
	for _, id := range completed {
		if id == videoID {
			return completed
		}
	}
	return append(completed, videoID)
}

// Load 读取 (用户, 课程) 的已完成视频ID列表
// 记录不存在与数据损坏都返回空列表，仅数据库故障返回错误
func (s *ProgressService) Load(ctx context.Context, userID uint, courseID string) ([]string, error) {
	key := progressKey(userID, courseID)

	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var completed []string
		if jsonErr := json.Unmarshal([]byte(cached), &completed); jsonErr == nil {
			if completed == nil {
				completed = []string{}
			}
			return completed, nil
		}
		// 缓存损坏：删掉后回源
		logger.Log.Warn("corrupt progress cache entry, falling back to database",
			zap.Uint("userId", userID), zap.String("courseId", courseID))
		s.Redis.Del(ctx, key)
	}

	progress, err := s.ProgressRepo.Find(userID, courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []string{}, nil
		}
		return nil, err
	}

	completed := decodeCompleted(progress.CompletedVideos)
	s.cache(ctx, key, completed)
	return completed, nil
}

// MarkCompleted 将视频加入完成集合并整条写回，重复标记是无操作
// 返回更新后的完成集合
func (s *ProgressService) MarkCompleted(ctx context.Context, userID uint, courseID, videoID string) ([]string, error) {
	completed, err := s.Load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	updated := appendIfMissing(completed, videoID)
	if len(updated) == len(completed) {
		return completed, nil
	}

	encoded, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}

	progress := &model.Progress{
		UserID:          userID,
		CourseID:        courseID,
		CompletedVideos: string(encoded),
	}
	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}

	s.cache(ctx, progressKey(userID, courseID), updated)
	return updated, nil
}

// IsCompleted 完成集合的成员判断
func (s *ProgressService) IsCompleted(ctx context.Context, userID uint, courseID, videoID string) (bool, error) {
	completed, err := s.Load(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	for _, id := range completed {
		if id == videoID {
			return true, nil
		}
	}
	return false, nil
}

func (s *ProgressService) cache(ctx context.Context, key string, completed []string) {
	encoded, err := json.Marshal(completed)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, encoded, progressCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache progress", zap.String("key", key), zap.Error(err))
	}
}

// CalculateModuleProgress 章节完成百分比，四舍五入取整
// 章节不存在或没有视频时返回 0
func CalculateModuleProgress(course *model.Course, moduleID string, completed []string) int {
	module := course.FindModule(moduleID)
	if module == nil || len(module.Videos) == 0 {
		return 0
	}

	done := 0
	for i := range module.Videos {
		for _, id := range completed {
			if module.Videos[i].ID == id {
				done++
				break
			}
		}
	}

	return roundPercent(done, len(module.Videos))
}

// CalculateCourseProgress 课程整体完成百分比，按全部视频的精确分数计算
// 不累加各章节百分比，避免舍入误差导致全部完成时不是 100
func CalculateCourseProgress(course *model.Course, completed []string) int {
	total := course.VideoCount()
	if total == 0 {
		return 0
	}

	done := 0
	for i := range course.Modules {
		for j := range course.Modules[i].Videos {
			for _, id := range completed {
				if course.Modules[i].Videos[j].ID == id {
					done++
					break
				}
			}
		}
	}

	return roundPercent(done, total)
}

func roundPercent(done, total int) int {
	return int(math.Round(float64(done) / float64(total) * 100))
}
