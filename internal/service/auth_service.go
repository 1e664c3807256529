package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"course_platform_backend/internal/config"
	"course_platform_backend/internal/model"
	"course_platform_backend/internal/repository"
	"course_platform_backend/internal/util"
	"course_platform_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	phoneCodeKeyPrefix = "phone_code:"
	phoneCodeTTL       = 5 * time.Minute
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	if user.PhotoURL == "" {
		user.PhotoURL = avatarURL(user.Name)
	}

	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrUnauthorized
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// RequestPhoneCode 生成手机验证码并暂存 Redis
// 没接短信网关，验证码仅写日志（演示用途）
func (s *AuthService) RequestPhoneCode(ctx context.Context, phone string) error {
	code := util.GenerateNumericCode(6)
	key := phoneCodeKeyPrefix + phone

	if err := s.Redis.Set(ctx, key, code, phoneCodeTTL).Err(); err != nil {
		return err
	}

	logger.Log.Info("phone verification code issued",
		zap.String("phone", phone), zap.String("code", code))
	return nil
}

// PhoneLogin 校验验证码，首次登录自动建号，返回JWT
func (s *AuthService) PhoneLogin(ctx context.Context, phone, code string) (string, error) {
	key := phoneCodeKeyPrefix + phone

	stored, err := s.Redis.Get(ctx, key).Result()
	if err != nil || stored != code {
		return "", util.ErrInvalidCode
	}
	s.Redis.Del(ctx, key)

	user, err := s.UserRepo.FindByPhone(phone)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return "", err
		}

		suffix := phone
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}
		user = &model.User{
			Name:     "User " + suffix,
			Email:    fmt.Sprintf("phone_%s@course-platform.local", phone),
			Phone:    phone,
			Role:     model.Student,
			PhotoURL: avatarURL("Phone User"),
		}
		if err := s.UserRepo.Create(user); err != nil {
			return "", err
		}
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

// avatarURL 默认头像，按姓名生成
func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
