package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/internal/app/repository"
	"github.com/mallow/storefront/pkg/logger"
)

var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidContact = errors.New("invalid contact message")
)

const (
	SubscribeWelcomeMessage = "Bedankt voor je inschrijving!"
	SubscribeRepeatMessage  = "Je bent al ingeschreven voor onze nieuwsbrief."
)

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactService interface {
	SubmitMessage(input ContactInput) (*model.ContactMessage, error)
	Subscribe(email string) (string, error)
}

type contactService struct {
	contactRepo    repository.ContactRepository
	subscriberRepo repository.SubscriberRepository
}

func NewContactService(contactRepo repository.ContactRepository, subscriberRepo repository.SubscriberRepository) ContactService {
	return &contactService{
		contactRepo:    contactRepo,
		subscriberRepo: subscriberRepo,
	}
}

func (s *contactService) SubmitMessage(input ContactInput) (*model.ContactMessage, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, ErrInvalidContact
	}

	msg := &model.ContactMessage{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(input.Name),
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if err := s.contactRepo.Create(msg); err != nil {
		return nil, err
	}

	logger.Info("Contact message stored", map[string]interface{}{
		"message_id": msg.ID,
		"subject":    msg.Subject,
	})
	return msg, nil
}

// Subscribe adds email to the newsletter. Subscribing twice is not an error.
func (s *contactService) Subscribe(email string) (string, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	created, err := s.subscriberRepo.Create(&model.Subscriber{Email: normalized})
	if err != nil {
		return "", err
	}
	if !created {
		logger.Debug("Repeat newsletter subscription", map[string]interface{}{
			"email": normalized,
		})
		return SubscribeRepeatMessage, nil
	}

	logger.Info("Newsletter subscriber added", nil)
	return SubscribeWelcomeMessage, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
