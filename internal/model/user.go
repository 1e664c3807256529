package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100" json:"-"` // 手机号登录的用户没有密码
	Phone     string    `gorm:"size:20;index" json:"phone,omitempty"`
	Role      UserRole  `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	PhotoURL  string    `gorm:"size:255" json:"photoURL"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
