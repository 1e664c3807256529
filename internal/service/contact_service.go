package service

import (
	"fmt"
	"net/url"

	"course_platform_backend/internal/config"
	"course_platform_backend/internal/model"
	"course_platform_backend/internal/repository"
	"course_platform_backend/internal/util"

	"gorm.io/gorm"
)

type ContactService struct {
	ContactRepo *repository.ContactRepository
	Cfg         *config.Config
}

func NewContactService(contactRepo *repository.ContactRepository, cfg *config.Config) *ContactService {
	return &ContactService{
		ContactRepo: contactRepo,
		Cfg:         cfg,
	}
}

// BuildWhatsAppLink 拼 wa.me 深链，文案预填并URL编码
// 纯跳转动作，消息是否真的发出无从确认
func BuildWhatsAppLink(number, name, message string) string {
	text := fmt.Sprintf("Hello, my name is %s. %s", name, message)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

// Submit 落库并返回跳转链接
func (s *ContactService) Submit(name, message string, userID uint) (*model.ContactSubmission, string, error) {
	submission := &model.ContactSubmission{
		Name:    name,
		Message: message,
		UserID:  userID,
	}

	if err := s.ContactRepo.Create(submission); err != nil {
		return nil, "", err
	}

	link := BuildWhatsAppLink(s.Cfg.Contact.WhatsAppNumber, name, message)
	return submission, link, nil
}

// List 分页查询，提交记录只增不减，管理端必须分页
func (s *ContactService) List(page, limit int) ([]model.ContactSubmission, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ContactRepo.List(page, limit)
}

func (s *ContactService) Delete(id string) error {
	if err := s.ContactRepo.Delete(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrContactNotFound
		}
		return err
	}
	return nil
}
