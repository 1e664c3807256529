package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrInvalidCode      = errors.New("验证码错误或已过期")
	ErrCourseNotFound   = errors.New("course not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrVideoNotFound    = errors.New("video not found")
	ErrContactNotFound  = errors.New("contact submission not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidImageType = errors.New("invalid image type")
)
