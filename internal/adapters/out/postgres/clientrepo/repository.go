// Package clientrepo reads customers from the clients table.
package clientrepo

import (
	"context"
	"errors"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/client"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string
}

func (ClientDTO) TableName() string {
	return "clients"
}

// GormClientStore implements ports.ClientStore.
type GormClientStore struct {
	db *gorm.DB
}

func NewGormClientStore(db *gorm.DB) *GormClientStore {
	return &GormClientStore{db: db}
}

func (s *GormClientStore) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClientDTO
	if err := s.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("client", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// ToDomain restores the aggregate from its row.
func ToDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return client.RestoreClient(id, dto.Name, dto.Email)
}
