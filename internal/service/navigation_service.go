package service

import (
	"context"
	"encoding/json"
	"fmt"

	"course_platform_backend/internal/model"
	"course_platform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NavigationCursor 当前选中的章节/视频对
// 不变式：VideoID 非空时必须属于 ModuleID 对应的章节
type NavigationCursor struct {
	ModuleID string `json:"moduleId"`
	VideoID  string `json:"videoId,omitempty"`
}

type NavigationService struct {
	Redis redisCache
}

func NewNavigationService(rdb *redis.Client) *NavigationService {
	return &NavigationService{Redis: rdb}
}

func navKey(userID uint, courseID string) string {
	return fmt.Sprintf("nav:%d:%s", userID, courseID)
}

// defaultCursor 课程加载且无历史选择时的初始游标：
// 第一个章节及其第一个视频，级联选择，空课程返回零值游标
func defaultCursor(course *model.Course) NavigationCursor {
	var cursor NavigationCursor
	if len(course.Modules) == 0 {
		return cursor
	}
	cursor.ModuleID = course.Modules[0].ID
	if len(course.Modules[0].Videos) > 0 {
		cursor.VideoID = course.Modules[0].Videos[0].ID
	}
	return cursor
}

// cursorForModule 选中章节：命中后当前视频切到该章节第一个视频（无视频则置空）
func cursorForModule(course *model.Course, moduleID string) (NavigationCursor, bool) {
	module := course.FindModule(moduleID)
	if module == nil {
		return NavigationCursor{}, false
	}
	cursor := NavigationCursor{ModuleID: module.ID}
	if len(module.Videos) > 0 {
		cursor.VideoID = module.Videos[0].ID
	}
	return cursor, true
}

// cursorForVideo 按文档顺序查找视频，命中后章节与视频成对更新
func cursorForVideo(course *model.Course, videoID string) (NavigationCursor, bool) {
	module, video := course.FindVideo(videoID)
	if video == nil {
		return NavigationCursor{}, false
	}
	return NavigationCursor{ModuleID: module.ID, VideoID: video.ID}, true
}

// cursorValid 校验存量游标在当前目录树下仍然一致
func cursorValid(course *model.Course, cursor NavigationCursor) bool {
	module := course.FindModule(cursor.ModuleID)
	if module == nil {
		return false
	}
	if cursor.VideoID == "" {
		return len(module.Videos) == 0
	}
	for i := range module.Videos {
		if module.Videos[i].ID == cursor.VideoID {
			return true
		}
	}
	return false
}

// Current 读取用户在课程内的导航游标
// 无记录、记录损坏或与目录树不一致时回退到初始游标
func (s *NavigationService) Current(ctx context.Context, userID uint, course *model.Course) (NavigationCursor, error) {
	key := navKey(userID, course.ID)

	raw, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("failed to read navigation cursor", zap.String("key", key), zap.Error(err))
		}
		return defaultCursor(course), nil
	}

	var cursor NavigationCursor
	if err := json.Unmarshal([]byte(raw), &cursor); err != nil {
		logger.Log.Warn("discarding unparseable navigation cursor", zap.String("key", key), zap.Error(err))
		s.Redis.Del(ctx, key)
		return defaultCursor(course), nil
	}

	if !cursorValid(course, cursor) {
		return defaultCursor(course), nil
	}
	return cursor, nil
}

// SelectModule 选中章节并持久化游标
// 未命中时返回 found=false，游标保持不变
func (s *NavigationService) SelectModule(ctx context.Context, userID uint, course *model.Course, moduleID string) (NavigationCursor, bool, error) {
	cursor, found := cursorForModule(course, moduleID)
	if !found {
		current, err := s.Current(ctx, userID, course)
		return current, false, err
	}
	return cursor, true, s.save(ctx, userID, course.ID, cursor)
}

// SelectVideo 选中视频并持久化游标，章节随视频成对切换
func (s *NavigationService) SelectVideo(ctx context.Context, userID uint, course *model.Course, videoID string) (NavigationCursor, bool, error) {
	cursor, found := cursorForVideo(course, videoID)
	if !found {
		current, err := s.Current(ctx, userID, course)
		return current, false, err
	}
	return cursor, true, s.save(ctx, userID, course.ID, cursor)
}

func (s *NavigationService) save(ctx context.Context, userID uint, courseID string, cursor NavigationCursor) error {
	encoded, err := json.Marshal(cursor)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, navKey(userID, courseID), encoded, 0).Err()
}
