package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-dashboard-be/internal/dto"
	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/pkg/logger"
	"ai-dashboard-be/internal/repository/specification"
	"ai-dashboard-be/internal/repository/unitofwork"
	"ai-dashboard-be/pkg/events"
	pktNats "ai-dashboard-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// NotificationDelivery pushes real-time updates to connected users.
// Implemented by the WebSocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
}

type INotificationService interface {
	Start()
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *notificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber configured, notifications disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	// The NATS subject includes the stream prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", typeCode), nil)

	var notif *entity.Notification
	switch typeCode {
	case "DOCUMENT_PROCESSED":
		notif = documentNotification(event, entity.NotificationTypeDocumentProcessed,
			"Document ready", "%q has been processed and is ready for chat context.")
	case "DOCUMENT_FAILED":
		notif = documentNotification(event, entity.NotificationTypeDocumentFailed,
			"Document processing failed", "%q could not be processed.")
	default:
		return nil
	}
	if notif == nil {
		s.logger.Warn("NotificationService", "Event payload missing user_id, dropping", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notif); err != nil {
		s.logger.Error("NotificationService", "Failed to save notification", map[string]interface{}{"error": err})
		return err // NATS will redeliver
	}

	if s.delivery != nil {
		s.delivery.Send(notif.UserId, *notif)
	}
	return nil
}

func documentNotification(event events.Event, notifType, title, bodyFormat string) *entity.Notification {
	payload := event.Payload()

	uidStr, _ := payload["user_id"].(string)
	userId, err := uuid.Parse(uidStr)
	if err != nil {
		return nil
	}

	name, _ := payload["name"].(string)
	if name == "" {
		name = "Your document"
	}
	body := fmt.Sprintf(bodyFormat, name)
	if reason, _ := payload["reason"].(string); reason != "" {
		body = fmt.Sprintf("%s (%s)", body, reason)
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"document_id": payload["document_id"],
		"name":        name,
	})

	return &entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Type:      notifType,
		Title:     title,
		Body:      body,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}

func (s *notificationService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.NotificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = &dto.NotificationResponse{
			Id:        n.Id,
			Type:      n.Type,
			Title:     n.Title,
			Body:      n.Body,
			Metadata:  n.Metadata,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return result, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().Count(ctx,
		specification.OwnedBy{UserId: userId},
		specification.Unread{},
	)
}

func (s *notificationService) MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notif, err := uow.NotificationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return err
	}
	if notif == nil {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}
	return uow.NotificationRepository().MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx, userId)
}
