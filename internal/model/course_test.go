package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func catalogFixture() *Course {
	return &Course{
		UUIDBase: UUIDBase{ID: "course-1"},
		Title:    "Sample Course",
		Modules: []CourseModule{
			{
				UUIDBase: UUIDBase{ID: "module-1"},
				Videos: []Video{
					{UUIDBase: UUIDBase{ID: "video-1-1"}},
					{UUIDBase: UUIDBase{ID: "video-1-2"}},
				},
			},
			{
				UUIDBase: UUIDBase{ID: "module-2"},
				Videos: []Video{
					{UUIDBase: UUIDBase{ID: "video-2-1"}},
				},
			},
			{
				UUIDBase: UUIDBase{ID: "module-3"},
			},
		},
	}
}

func TestFindModule(t *testing.T) {
	course := catalogFixture()

	module := course.FindModule("module-2")
	assert.NotNil(t, module)
	assert.Equal(t, "module-2", module.ID)

	assert.Nil(t, course.FindModule("missing"))
	assert.Nil(t, course.FindModule(""))
}

func TestFindVideo(t *testing.T) {
	course := catalogFixture()

	module, video := course.FindVideo("video-2-1")
	assert.NotNil(t, video)
	assert.Equal(t, "video-2-1", video.ID)
	assert.Equal(t, "module-2", module.ID)

	module, video = course.FindVideo("missing")
	assert.Nil(t, module)
	assert.Nil(t, video)
}

func TestVideoCount(t *testing.T) {
	course := catalogFixture()
	assert.Equal(t, 3, course.VideoCount())

	empty := &Course{UUIDBase: UUIDBase{ID: "empty"}}
	assert.Equal(t, 0, empty.VideoCount())
}
