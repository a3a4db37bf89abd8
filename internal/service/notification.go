package service

import (
	"context"
	"fmt"

	"picshare/internal/model"
	"picshare/internal/repository"
)

type NotificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// Create appends a notification addressed to req.UserID.
func (s *NotificationService) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	n, err := s.notifRepo.Create(ctx, &model.Notification{
		UserID:   req.UserID,
		SenderID: req.SenderID,
		Type:     req.Type,
		Content:  req.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// GetAllForUser returns the recipient's notifications, newest first.
func (s *NotificationService) GetAllForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	notifications, err := s.notifRepo.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}
