package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"course_platform_backend/internal/model"
	"course_platform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

// fakeProgressStore 内存实现，按 (用户, 课程) 存整条记录
type fakeProgressStore struct {
	rows map[string]*model.Progress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: make(map[string]*model.Progress)}
}

func rowKey(userID uint, courseID string) string {
	return fmt.Sprintf("%d/%s", userID, courseID)
}

func (f *fakeProgressStore) Find(userID uint, courseID string) (*model.Progress, error) {
	row, ok := f.rows[rowKey(userID, courseID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeProgressStore) Save(progress *model.Progress) error {
	f.rows[rowKey(progress.UserID, progress.CourseID)] = progress
	return nil
}

// fakeRedis 只实现服务层用到的命令
type fakeRedis struct {
	values map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.values[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

// 构造 3/2/3 结构的目录树
func sampleCourse() *model.Course {
	return &model.Course{
		UUIDBase: model.UUIDBase{ID: "course-1"},
		Title:    "Sample Course",
		Modules: []model.CourseModule{
			{
				UUIDBase: model.UUIDBase{ID: "module-1"},
				Title:    "Module 1",
				Order:    1,
				Videos: []model.Video{
					{UUIDBase: model.UUIDBase{ID: "video-1-1"}, Title: "V11", Order: 1},
					{UUIDBase: model.UUIDBase{ID: "video-1-2"}, Title: "V12", Order: 2},
					{UUIDBase: model.UUIDBase{ID: "video-1-3"}, Title: "V13", Order: 3},
				},
			},
			{
				UUIDBase: model.UUIDBase{ID: "module-2"},
				Title:    "Module 2",
				Order:    2,
				Videos: []model.Video{
					{UUIDBase: model.UUIDBase{ID: "video-2-1"}, Title: "V21", Order: 1},
					{UUIDBase: model.UUIDBase{ID: "video-2-2"}, Title: "V22", Order: 2},
				},
			},
			{
				UUIDBase: model.UUIDBase{ID: "module-3"},
				Title:    "Module 3",
				Order:    3,
				Videos: []model.Video{
					{UUIDBase: model.UUIDBase{ID: "video-3-1"}, Title: "V31", Order: 1},
					{UUIDBase: model.UUIDBase{ID: "video-3-2"}, Title: "V32", Order: 2},
					{UUIDBase: model.UUIDBase{ID: "video-3-3"}, Title: "V33", Order: 3},
				},
			},
		},
	}
}

func TestCalculateModuleProgress(t *testing.T) {
	course := sampleCourse()
	completed := []string{"video-1-1", "video-1-2", "video-3-1"}

	assert.Equal(t, 67, CalculateModuleProgress(course, "module-1", completed))
	assert.Equal(t, 0, CalculateModuleProgress(course, "module-2", completed))
	assert.Equal(t, 33, CalculateModuleProgress(course, "module-3", completed))
}

func TestCalculateModuleProgressUnknownModule(t *testing.T) {
	course := sampleCourse()
	assert.Equal(t, 0, CalculateModuleProgress(course, "no-such-module", []string{"video-1-1"}))
}

func TestCalculateModuleProgressEmptyModule(t *testing.T) {
	course := sampleCourse()
	course.Modules = append(course.Modules, model.CourseModule{
		UUIDBase: model.UUIDBase{ID: "module-empty"},
		Title:    "Empty",
		Order:    4,
	})
	assert.Equal(t, 0, CalculateModuleProgress(course, "module-empty", nil))
}

func TestCalculateCourseProgress(t *testing.T) {
	course := sampleCourse()

	// 8 个视频完成 4 个：首尾两章各完成 2 个
	completed := []string{"video-1-1", "video-1-2", "video-3-1", "video-3-2"}
	assert.Equal(t, 67, CalculateModuleProgress(course, "module-1", completed))
	assert.Equal(t, 0, CalculateModuleProgress(course, "module-2", completed))
	assert.Equal(t, 67, CalculateModuleProgress(course, "module-3", completed))
	assert.Equal(t, 50, CalculateCourseProgress(course, completed))

	// 精确分数：3/8 = 37.5 四舍五入到 38
	assert.Equal(t, 38, CalculateCourseProgress(course, []string{"video-1-1", "video-1-2", "video-2-1"}))
}

func TestCalculateCourseProgressComplete(t *testing.T) {
	course := sampleCourse()
	all := []string{}
	for _, m := range course.Modules {
		for _, v := range m.Videos {
			all = append(all, v.ID)
		}
	}
	assert.Equal(t, 100, CalculateCourseProgress(course, all))
}

func TestCalculateCourseProgressEmptyCourse(t *testing.T) {
	course := &model.Course{UUIDBase: model.UUIDBase{ID: "empty"}}
	assert.Equal(t, 0, CalculateCourseProgress(course, []string{"video-1-1"}))
}

func TestCalculateCourseProgressIgnoresUnknownIDs(t *testing.T) {
	course := sampleCourse()
	// 完成集合里的陈旧ID不计入
	completed := []string{"video-1-1", "removed-video", "another-ghost"}
	assert.Equal(t, 13, CalculateCourseProgress(course, completed))
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		done, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 8, 13},
		{3, 8, 38},
		{1, 2, 50},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_of_%d", tc.done, tc.total), func(t *testing.T) {
			assert.Equal(t, tc.want, roundPercent(tc.done, tc.total))
		})
	}
}

func TestAppendIfMissing(t *testing.T) {
	completed := []string{"video-1-1"}

	updated := appendIfMissing(completed, "video-1-2")
	assert.Equal(t, []string{"video-1-1", "video-1-2"}, updated)

	// 重复追加是无操作
	again := appendIfMissing(updated, "video-1-2")
	assert.Equal(t, updated, again)
	assert.Len(t, again, 2)
}

func TestAppendIfMissingEmpty(t *testing.T) {
	updated := appendIfMissing(nil, "video-1-1")
	assert.Equal(t, []string{"video-1-1"}, updated)
}

func TestMarkCompletedRoundTrip(t *testing.T) {
	store := newFakeProgressStore()
	svc := &ProgressService{ProgressRepo: store, Redis: newFakeRedis()}
	ctx := context.Background()

	done, err := svc.IsCompleted(ctx, 7, "course-1", "video-1-1")
	assert.NoError(t, err)
	assert.False(t, done)

	completed, err := svc.MarkCompleted(ctx, 7, "course-1", "video-1-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"video-1-1"}, completed)

	// 标记后立即可见
	done, err = svc.IsCompleted(ctx, 7, "course-1", "video-1-1")
	assert.NoError(t, err)
	assert.True(t, done)

	// 重复标记不改变集合
	completed, err = svc.MarkCompleted(ctx, 7, "course-1", "video-1-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"video-1-1"}, completed)

	// 整条记录落库
	row, err := store.Find(7, "course-1")
	assert.NoError(t, err)
	assert.JSONEq(t, `["video-1-1"]`, row.CompletedVideos)
}

func TestIsCompletedSurvivesReload(t *testing.T) {
	store := newFakeProgressStore()
	ctx := context.Background()

	first := &ProgressService{ProgressRepo: store, Redis: newFakeRedis()}
	_, err := first.MarkCompleted(ctx, 7, "course-1", "video-2-1")
	assert.NoError(t, err)

	// 新进程视角：缓存为空，只剩持久化记录
	second := &ProgressService{ProgressRepo: store, Redis: newFakeRedis()}
	done, err := second.IsCompleted(ctx, 7, "course-1", "video-2-1")
	assert.NoError(t, err)
	assert.True(t, done)
}

func TestLoadCorruptCacheFallsBackToStore(t *testing.T) {
	store := newFakeProgressStore()
	store.rows[rowKey(7, "course-1")] = &model.Progress{
		UserID:          7,
		CourseID:        "course-1",
		CompletedVideos: `["video-1-1"]`,
	}

	cache := newFakeRedis()
	cache.values[progressKey(7, "course-1")] = `{{{not json`

	svc := &ProgressService{ProgressRepo: store, Redis: cache}
	completed, err := svc.Load(context.Background(), 7, "course-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"video-1-1"}, completed)

	// 损坏的缓存条目被回源结果覆盖
	assert.JSONEq(t, `["video-1-1"]`, cache.values[progressKey(7, "course-1")])
}

func TestLoadCorruptStorePayload(t *testing.T) {
	store := newFakeProgressStore()
	store.rows[rowKey(7, "course-1")] = &model.Progress{
		UserID:          7,
		CourseID:        "course-1",
		CompletedVideos: `garbage`,
	}

	svc := &ProgressService{ProgressRepo: store, Redis: newFakeRedis()}
	completed, err := svc.Load(context.Background(), 7, "course-1")
	assert.NoError(t, err)
	assert.Empty(t, completed)
}

func TestDecodeCompleted(t *testing.T) {
	assert.Equal(t, []string{}, decodeCompleted(""))
	assert.Equal(t, []string{"video-1-1"}, decodeCompleted(`["video-1-1"]`))
	assert.Equal(t, []string{}, decodeCompleted(`null`))

	// 损坏数据按空进度处理
	assert.Equal(t, []string{}, decodeCompleted(`{"not":"a list"`))
	assert.Equal(t, []string{}, decodeCompleted(`garbage`))
}
