package service

import (
	"context"
	"testing"

	"course_platform_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCursor(t *testing.T) {
	course := sampleCourse()
	cursor := defaultCursor(course)
	assert.Equal(t, "module-1", cursor.ModuleID)
	assert.Equal(t, "video-1-1", cursor.VideoID)
}

func TestDefaultCursorEmptyCourse(t *testing.T) {
	course := &model.Course{UUIDBase: model.UUIDBase{ID: "empty"}}
	cursor := defaultCursor(course)
	assert.Empty(t, cursor.ModuleID)
	assert.Empty(t, cursor.VideoID)
}

func TestDefaultCursorFirstModuleWithoutVideos(t *testing.T) {
	course := &model.Course{
		UUIDBase: model.UUIDBase{ID: "course-x"},
		Modules: []model.CourseModule{
			{UUIDBase: model.UUIDBase{ID: "module-a"}},
			{
				UUIDBase: model.UUIDBase{ID: "module-b"},
				Videos:   []model.Video{{UUIDBase: model.UUIDBase{ID: "video-b-1"}}},
			},
		},
	}
	// 初始游标不跳过空章节，视频留空
	cursor := defaultCursor(course)
	assert.Equal(t, "module-a", cursor.ModuleID)
	assert.Empty(t, cursor.VideoID)
}

func TestCursorForModule(t *testing.T) {
	course := sampleCourse()

	cursor, found := cursorForModule(course, "module-2")
	assert.True(t, found)
	assert.Equal(t, "module-2", cursor.ModuleID)
	assert.Equal(t, "video-2-1", cursor.VideoID)
}

func TestCursorForModuleMiss(t *testing.T) {
	course := sampleCourse()
	_, found := cursorForModule(course, "no-such-module")
	assert.False(t, found)
}

func TestCursorForModuleWithoutVideos(t *testing.T) {
	course := sampleCourse()
	course.Modules = append(course.Modules, model.CourseModule{
		UUIDBase: model.UUIDBase{ID: "module-empty"},
	})

	cursor, found := cursorForModule(course, "module-empty")
	assert.True(t, found)
	assert.Equal(t, "module-empty", cursor.ModuleID)
	assert.Empty(t, cursor.VideoID)
}

func TestCursorForVideo(t *testing.T) {
	course := sampleCourse()

	cursor, found := cursorForVideo(course, "video-3-2")
	assert.True(t, found)
	// 章节随视频成对更新
	assert.Equal(t, "module-3", cursor.ModuleID)
	assert.Equal(t, "video-3-2", cursor.VideoID)
}

func TestCursorForVideoMiss(t *testing.T) {
	course := sampleCourse()
	_, found := cursorForVideo(course, "no-such-video")
	assert.False(t, found)
}

func TestCursorForVideoDocumentOrder(t *testing.T) {
	// 同ID重复出现时取文档顺序的第一个
	course := &model.Course{
		UUIDBase: model.UUIDBase{ID: "course-dup"},
		Modules: []model.CourseModule{
			{
				UUIDBase: model.UUIDBase{ID: "module-a"},
				Videos:   []model.Video{{UUIDBase: model.UUIDBase{ID: "video-dup"}}},
			},
			{
				UUIDBase: model.UUIDBase{ID: "module-b"},
				Videos:   []model.Video{{UUIDBase: model.UUIDBase{ID: "video-dup"}}},
			},
		},
	}

	cursor, found := cursorForVideo(course, "video-dup")
	assert.True(t, found)
	assert.Equal(t, "module-a", cursor.ModuleID)
}

func TestSelectModulePersistsCursor(t *testing.T) {
	course := sampleCourse()
	svc := &NavigationService{Redis: newFakeRedis()}
	ctx := context.Background()

	cursor, found, err := svc.SelectModule(ctx, 7, course, "module-2")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "module-2", cursor.ModuleID)
	assert.Equal(t, "video-2-1", cursor.VideoID)

	current, err := svc.Current(ctx, 7, course)
	assert.NoError(t, err)
	assert.Equal(t, cursor, current)
}

func TestSelectModuleMissKeepsCursor(t *testing.T) {
	course := sampleCourse()
	svc := &NavigationService{Redis: newFakeRedis()}
	ctx := context.Background()

	_, found, err := svc.SelectVideo(ctx, 7, course, "video-3-2")
	assert.NoError(t, err)
	assert.True(t, found)

	// 未命中：返回 found=false，游标原样
	cursor, found, err := svc.SelectModule(ctx, 7, course, "no-such-module")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "module-3", cursor.ModuleID)
	assert.Equal(t, "video-3-2", cursor.VideoID)
}

func TestCurrentCorruptCursorFallsBack(t *testing.T) {
	course := sampleCourse()
	cache := newFakeRedis()
	cache.values[navKey(7, course.ID)] = `not a cursor{`

	svc := &NavigationService{Redis: cache}
	cursor, err := svc.Current(context.Background(), 7, course)
	assert.NoError(t, err)
	assert.Equal(t, defaultCursor(course), cursor)
}

func TestCurrentNoStoredCursor(t *testing.T) {
	course := sampleCourse()
	svc := &NavigationService{Redis: newFakeRedis()}

	cursor, err := svc.Current(context.Background(), 7, course)
	assert.NoError(t, err)
	assert.Equal(t, "module-1", cursor.ModuleID)
	assert.Equal(t, "video-1-1", cursor.VideoID)
}

func TestCursorValid(t *testing.T) {
	course := sampleCourse()

	assert.True(t, cursorValid(course, NavigationCursor{ModuleID: "module-1", VideoID: "video-1-2"}))

	// 视频不属于该章节
	assert.False(t, cursorValid(course, NavigationCursor{ModuleID: "module-1", VideoID: "video-2-1"}))

	// 章节已不存在
	assert.False(t, cursorValid(course, NavigationCursor{ModuleID: "gone", VideoID: "video-1-1"}))

	// 空视频只在无视频章节下合法
	assert.False(t, cursorValid(course, NavigationCursor{ModuleID: "module-1"}))

	course.Modules = append(course.Modules, model.CourseModule{
		UUIDBase: model.UUIDBase{ID: "module-empty"},
	})
	assert.True(t, cursorValid(course, NavigationCursor{ModuleID: "module-empty"}))
}
