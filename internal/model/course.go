package model

// Course 课程目录树的顶层，章节按 Order 排序
// swagger:model Course
type Course struct {
	UUIDBase
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Instructor  string         `gorm:"size:100" json:"instructor"`
	Thumbnail   string         `gorm:"size:255" json:"thumbnail"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID" json:"modules"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseModule
type CourseModule struct {
	UUIDBase
	CourseID    string  `gorm:"index;type:varchar(36)" json:"courseId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Order       int     `gorm:"default:0" json:"order"`
	Videos      []Video `gorm:"foreignKey:ModuleID" json:"videos"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// Video 单个可播放的课时，播放地址指向第三方嵌入播放器
// swagger:model Video
type Video struct {
	UUIDBase
	ModuleID    string `gorm:"index;type:varchar(36)" json:"moduleId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Duration    string `gorm:"size:20" json:"duration"` // 展示用时长，如 "10:15"
	VideoURL    string `gorm:"size:255;not null" json:"videoUrl"`
	Thumbnail   string `gorm:"size:255" json:"thumbnail,omitempty"`
	Order       int    `gorm:"default:0" json:"order"`
}

func (Video) TableName() string {
	return "videos"
}

// FindModule 按ID查找章节，未命中返回 nil
func (c *Course) FindModule(moduleID string) *CourseModule {
	for i := range c.Modules {
		if c.Modules[i].ID == moduleID {
			return &c.Modules[i]
		}
	}
	return nil
}

// FindVideo 按文档顺序在所有章节中查找视频，返回视频所在章节与视频本身
// 视频ID在整个课程内唯一，跨章节查找依赖这一约定
func (c *Course) FindVideo(videoID string) (*CourseModule, *Video) {
	for i := range c.Modules {
		for j := range c.Modules[i].Videos {
			if c.Modules[i].Videos[j].ID == videoID {
				return &c.Modules[i], &c.Modules[i].Videos[j]
			}
		}
	}
	return nil, nil
}

// VideoCount 课程内视频总数
func (c *Course) VideoCount() int {
	total := 0
	for i := range c.Modules {
		total += len(c.Modules[i].Videos)
	}
	return total
}
