package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nppdeals/inventory-platform/internal/models"
	repository "github.com/nppdeals/inventory-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotificationRepoTest(t *testing.T) (repository.NotificationRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := repository.NewNotificationRepo(db)
	require.NotNil(t, repo, "NewNotificationRepo should return a non-nil repository")

	return repo, mock
}

func TestNotificationRepository(t *testing.T) {
	ctx := t.Context()

	t.Run("CreateNotification", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			repo, mock := setupNotificationRepoTest(t)
			notification := &models.Notification{
				ID:         uuid.New(),
				Type:       models.NotificationTypeGroupEmail,
				Recipient:  "drafts@nppdeals.com",
				Subject:    "Group Deal: 2 Products Available!",
				Content:    "<p>deal</p>",
				ProductIDs: pq.Int64Array{4, 9},
				Status:     models.StatusPending,
			}
			now := time.Now()

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notifications (id, type, recipient, subject, content, product_ids, status, error, created_at, updated_at)`)).
				WithArgs(notification.ID, notification.Type, notification.Recipient, notification.Subject,
					notification.Content, sqlmock.AnyArg(), notification.Status, "").
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.CreateNotification(ctx, notification)

			// Assert
			require.NoError(t, err)
			assert.WithinDuration(t, now, notification.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure", func(t *testing.T) {
			repo, mock := setupNotificationRepoTest(t)
			mock.ExpectQuery(`INSERT INTO notifications`).WillReturnError(errors.New("insert failed"))

			err := repo.CreateNotification(ctx, &models.Notification{ID: uuid.New()})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to create notification")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("UpdateNotificationStatus", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			repo, mock := setupNotificationRepoTest(t)
			id := uuid.New()
			sent := time.Now()

			mock.ExpectExec(`UPDATE notifications SET status = \$1, error = \$2, sent_at = \$3, updated_at = NOW\(\)`).
				WithArgs(models.StatusSent, "", sent, id).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.UpdateNotificationStatus(ctx, id, models.StatusSent, "", &sent)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NotFound", func(t *testing.T) {
			repo, mock := setupNotificationRepoTest(t)
			id := uuid.New()

			mock.ExpectExec(`UPDATE notifications`).WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.UpdateNotificationStatus(ctx, id, models.StatusFailed, "boom", nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "notification not found")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListNotifications", func(t *testing.T) {
		// Arrange
		repo, mock := setupNotificationRepoTest(t)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT id, type, recipient, subject, content, product_ids, status, error, created_at, updated_at, sent_at`).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "type", "recipient", "subject", "content", "product_ids", "status", "error", "created_at", "updated_at", "sent_at"}).
				AddRow(id.String(), "product_email", "drafts@nppdeals.com", "Desk", "<p/>", "{3}", "sent", "", now, now, now))

		// Act
		list, total, err := repo.ListNotifications(ctx, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, list, 1)
		assert.Equal(t, pq.Int64Array{3}, list[0].ProductIDs)
		assert.Equal(t, models.StatusSent, list[0].Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
