// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// principalRepository implements repository.PrincipalRepository using GORM.
type principalRepository struct {
	db *gorm.DB
}

// NewPrincipalRepository is the constructor for principalRepository.
func NewPrincipalRepository(db *gorm.DB) repository.PrincipalRepository {
	return &principalRepository{db: db}
}

// FindByDisplayName retrieves the principal registered under name.
func (repo *principalRepository) FindByDisplayName(ctx context.Context, name string) (*entity.Principal, error) {
	var principalM model.PrincipalModel
	err := repo.db.WithContext(ctx).
		Where("display_name = ?", name).
		First(&principalM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, errors.Wrap(err, "failed to find principal by display name")
	}

	return toPrincipalDomain(&principalM), nil
}

// FindByID retrieves a principal by its identifier.
func (repo *principalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	var principalM model.PrincipalModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&principalM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, errors.Wrap(err, "failed to find principal by id")
	}

	return toPrincipalDomain(&principalM), nil
}

// Insert persists a new principal. The id is generated by PostgreSQL and written back.
func (repo *principalRepository) Insert(ctx context.Context, principal *entity.Principal) (uuid.UUID, error) {
	principalM := fromPrincipalDomain(principal)

	if err := repo.db.WithContext(ctx).Create(principalM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return uuid.Nil, domainerrors.ErrPrincipalAlreadyExists.WrapMessage("display name already exists")
		}
		if isNotNullConstraintViolation(err) {
			return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("missing required principal information")
		}

		return uuid.Nil, domainerrors.NewDatabaseExecuteError(err, "failed to insert principal")
	}

	principal.ID = principalM.ID
	principal.CreatedAt = principalM.CreatedAt
	principal.UpdatedAt = principalM.UpdatedAt

	return principalM.ID, nil
}

// --- Mapper Functions ---

func toPrincipalDomain(data *model.PrincipalModel) *entity.Principal {
	if data == nil {
		return nil
	}

	return &entity.Principal{
		ID:           data.ID,
		DisplayName:  data.DisplayName,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromPrincipalDomain(data *entity.Principal) *model.PrincipalModel {
	if data == nil {
		return nil
	}

	return &model.PrincipalModel{
		ID:           data.ID,
		DisplayName:  data.DisplayName,
		PasswordHash: data.PasswordHash,
	}
}
