package service

import (
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"course_platform_backend/internal/model"
	"course_platform_backend/internal/repository"
	"course_platform_backend/internal/util"
)

type UserService struct {
	UserRepo       *repository.UserRepository
	StorageService *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storageService *StorageService) *UserService {
	return &UserService{
		UserRepo:       userRepo,
		StorageService: storageService,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

func (s *UserService) UpdateProfile(userID uint, name string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	user.Name = name
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 校验图片类型后上传，并更新用户头像地址
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 深度验证 MIME 类型
	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", util.ErrInvalidImageType
	}
	// 重置读取指针
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := filepath.Ext(file.Filename)
	filename := "avatars/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext

	photoURL, err := s.StorageService.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	user.PhotoURL = photoURL
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	return photoURL, nil
}
