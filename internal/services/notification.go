package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/api/middleware"
	"github.com/nppdeals/inventory-platform/internal/catalog"
	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	repository "github.com/nppdeals/inventory-platform/internal/repositories"
	"github.com/nppdeals/inventory-platform/pkg/sendgrid"
)

type NotificationService interface {
	SendProductEmail(ctx context.Context, productID int64) (*models.NotificationResponse, error)
	SendGroupEmail(ctx context.Context, productIDs []int64) (*models.NotificationResponse, error)
	ListNotifications(ctx context.Context, page int, size int) ([]*models.Notification, int, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	products     ProductService
	emailService sendgrid.EmailService
	recipients   []string
	now          func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository, products ProductService, emailService sendgrid.EmailService, recipients []string) NotificationService {
	return &notificationService{
		repo:         repo,
		products:     products,
		emailService: emailService,
		recipients:   recipients,
		now:          time.Now,
	}
}

// SendProductEmail implements NotificationService.
func (n *notificationService) SendProductEmail(ctx context.Context, productID int64) (*models.NotificationResponse, error) {

	product, err := n.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	body, err := catalog.EmailBody(product)
	if err != nil {
		return nil, errors.InternalError("Failed to render email").WithError(err)
	}

	return n.deliver(ctx, models.NotificationTypeProductEmail, product.DisplayTitle(), body, []int64{product.ID})
}

// SendGroupEmail implements NotificationService.
func (n *notificationService) SendGroupEmail(ctx context.Context, productIDs []int64) (*models.NotificationResponse, error) {

	ids := slices.Clone(productIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	if len(ids) == 0 {
		return nil, errors.ValidationError("No products selected")
	}

	products, err := n.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if len(products) != len(ids) {
		found := make(map[int64]bool, len(products))
		for _, p := range products {
			found[p.ID] = true
		}

		var missing []string
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, fmt.Sprint(id))
			}
		}

		return nil, errors.NotFoundError("Product not found").WithDetail(strings.Join(missing, ", "))
	}

	body, err := catalog.GroupEmailBody(products)
	if err != nil {
		return nil, errors.InternalError("Failed to render email").WithError(err)
	}

	return n.deliver(ctx, models.NotificationTypeGroupEmail, catalog.GroupSubject(len(products)), body, ids)
}

// deliver records the draft, sends it and stamps last_sent on success.
func (n *notificationService) deliver(ctx context.Context, kind models.NotificationType, subject, body string, productIDs []int64) (*models.NotificationResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	if len(n.recipients) == 0 {
		return nil, errors.InternalError("No draft recipients configured")
	}

	notification := &models.Notification{
		ID:         uuid.New(),
		Type:       kind,
		Recipient:  strings.Join(n.recipients, ","),
		Subject:    subject,
		Content:    body,
		ProductIDs: productIDs,
		Status:     models.StatusPending,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to create notification record").WithError(err)
	}

	err := n.emailService.Send(ctx, &sendgrid.Message{
		To:      n.recipients,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		logger.Error("Email delivery failed", "notificationId", notification.ID, "error", err)

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error(), nil); updateErr != nil {
			logger.Error("Failed to record email failure", "notificationId", notification.ID, "error", updateErr)
		}

		return nil, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	sentAt := n.now().UTC()
	notification.Status = models.StatusSent
	notification.SentAt = &sentAt

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, "", &sentAt); err != nil {
		return nil, errors.DatabaseError("Email sent but failed to update notification status").WithError(err)
	}

	if err := n.products.RecordSent(ctx, productIDs, sentAt); err != nil {
		return nil, err
	}

	logger.Info("Email draft sent", "notificationId", notification.ID, "products", len(productIDs))

	return &models.NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Subject:   notification.Subject,
		Status:    notification.Status,
		CreatedAt: notification.CreatedAt,
		SentAt:    notification.SentAt,
	}, nil
}

// ListNotifications implements NotificationService.
func (n *notificationService) ListNotifications(ctx context.Context, page int, size int) ([]*models.Notification, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	notifications, total, err := n.repo.ListNotifications(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, total, nil
}
