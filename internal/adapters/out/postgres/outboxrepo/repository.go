// Package outboxrepo stores production notifications waiting for delivery.
package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/notification"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null"`
	Status      string    `gorm:"type:varchar(16);not null"`
	Attempts    int
	LastError   string
	AvailableAt time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	SentAt      *time.Time
}

func (NotificationDTO) TableName() string {
	return "production_notifications"
}

// GormNotificationOutbox implements ports.NotificationOutbox.
type GormNotificationOutbox struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormNotificationOutbox(db *gorm.DB, tracker aggregateTracker) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db, tracker: tracker}
}

func (o *GormNotificationOutbox) Add(ctx context.Context, n *notification.ProductionNotification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	if err := o.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	o.tracker.TrackAggregate(n.ID(), n)
	return nil
}

// Update writes the delivery outcome only while the stored row is still PENDING.
// A row another attempt already closed is left untouched and
// notification.ErrNotificationIsClosed is returned.
func (o *GormNotificationOutbox) Update(ctx context.Context, n *notification.ProductionNotification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	result := o.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND status = ?", dto.ID, notification.Pending.String()).
		Updates(map[string]any{
			"status":       dto.Status,
			"attempts":     dto.Attempts,
			"last_error":   dto.LastError,
			"available_at": dto.AvailableAt,
			"sent_at":      dto.SentAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return o.missingRowError(ctx, dto.ID, n)
	}

	o.tracker.TrackAggregate(n.ID(), n)
	return nil
}

func (o *GormNotificationOutbox) missingRowError(
	ctx context.Context,
	id uuid.UUID,
	n *notification.ProductionNotification,
) error {
	var count int64
	if err := o.db.WithContext(ctx).Model(&NotificationDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("production notification", n.ID().String())
	}
	return fmt.Errorf("production notification %s: %w", n.ID(), notification.ErrNotificationIsClosed)
}

// GetPending locks the returned rows with SKIP LOCKED when called inside a
// transaction, so concurrent dispatchers never pick the same notification.
func (o *GormNotificationOutbox) GetPending(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*notification.ProductionNotification, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []NotificationDTO
	err := o.db.WithContext(ctx).
		Where("status = ? AND available_at <= ?", notification.Pending.String(), now).
		Order("created_at ASC").
		Limit(limit).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	pending := make([]*notification.ProductionNotification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		pending = append(pending, n)
	}
	return pending, nil
}

func fromDomain(n *notification.ProductionNotification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID().Bytes(),
		OrderID:     n.OrderID().Bytes(),
		Status:      n.Status().String(),
		Attempts:    n.Attempts(),
		LastError:   n.LastError(),
		AvailableAt: n.AvailableAt(),
		CreatedAt:   n.CreatedAt(),
		SentAt:      n.SentAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.ProductionNotification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := notification.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return notification.RestoreProductionNotification(notification.State{
		ID:          id,
		OrderID:     orderID,
		Status:      status,
		Attempts:    dto.Attempts,
		LastError:   dto.LastError,
		AvailableAt: dto.AvailableAt,
		CreatedAt:   dto.CreatedAt,
		SentAt:      dto.SentAt,
	})
}
