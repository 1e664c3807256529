package model

// ContactSubmission 支持联系表单的提交记录，提交时间即 CreatedAt
// swagger:model ContactSubmission
type ContactSubmission struct {
	UUIDBase
	Name    string `gorm:"size:100;not null" json:"name"`
	Message string `gorm:"type:text;not null" json:"message"`
	UserID  uint   `gorm:"index;default:0" json:"userId,omitempty"` // 提交时已登录则记录用户
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
