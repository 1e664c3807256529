package model

// Progress 一个 (用户, 课程) 只有一行，已完成视频ID列表整体序列化存储
// swagger:model Progress
type Progress struct {
	BaseModel
	UserID          uint   `gorm:"index:idx_user_course,unique" json:"userId"`
	CourseID        string `gorm:"index:idx_user_course,unique;type:varchar(36)" json:"courseId"`
	CompletedVideos string `gorm:"type:text" json:"-"` // JSON 编码的视频ID数组
}

func (Progress) TableName() string {
	return "progress"
}
