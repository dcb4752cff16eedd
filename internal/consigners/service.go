package consigners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
	"github.com/slabtrack/slabtrack-backend/pkg/outbox"
	"github.com/slabtrack/slabtrack-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service manages consigner records and the single-default invariant.
type Service interface {
	CreateConsigner(ctx context.Context, input CreateInput) (*models.Consigner, error)
	UpdateConsigner(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Consigner, error)
	SetDefault(ctx context.Context, id uuid.UUID) (*models.Consigner, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Consigner, error)
	ListConsigners(ctx context.Context, filters ListFilters) ([]models.Consigner, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds a consigner service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("consigners repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outbox}, nil
}

func (s *service) CreateConsigner(ctx context.Context, input CreateInput) (*models.Consigner, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "consigner name required")
	}

	var created *models.Consigner
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		consigner := &models.Consigner{
			ID:        uuid.New(),
			Name:      name,
			Email:     input.Email,
			Phone:     input.Phone,
			Notes:     input.Notes,
			IsDefault: input.IsDefault,
			Active:    true,
		}

		// clear before insert so the partial unique index on is_default
		// never sees two defaults
		if input.IsDefault {
			if err := repo.ClearDefault(ctx, consigner.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear prior default")
			}
		}
		if _, err := repo.Create(ctx, consigner); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create consigner")
		}

		created = consigner
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateConsigner(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Consigner, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "consigner id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "consigner name required")
		}
		updates["name"] = name
	}
	if input.Email != nil {
		updates["email"] = input.Email
	}
	if input.Phone != nil {
		updates["phone"] = input.Phone
	}
	if input.Notes != nil {
		updates["notes"] = input.Notes
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	var updated *models.Consigner
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "consigner not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consigner")
		}
		if err := repo.Update(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update consigner")
		}

		consigner, err := repo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload consigner")
		}
		updated = consigner
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetDefault flags the consigner as the fallback for price resolution. Any
// previously flagged consigner loses the flag in the same transaction.
func (s *service) SetDefault(ctx context.Context, id uuid.UUID) (*models.Consigner, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "consigner id required")
	}

	var updated *models.Consigner
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		consigner, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "consigner not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consigner")
		}
		if !consigner.Active {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot set an inactive consigner as default")
		}
		if consigner.IsDefault {
			updated = consigner
			return nil
		}

		var previousID *uuid.UUID
		previous, err := repo.FindDefault(ctx)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current default")
		}
		if previous != nil {
			previousID = &previous.ID
		}

		if err := repo.ClearDefault(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear prior default")
		}
		if err := repo.Update(ctx, id, map[string]any{"is_default": true}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set default consigner")
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventConsignerDefaultReassigned,
			AggregateType: enums.OutboxAggregateConsigner,
			AggregateID:   id,
			Version:       1,
			Data: payloads.ConsignerDefaultReassignedEvent{
				ConsignerID:         id,
				PreviousConsignerID: previousID,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		consigner, err = repo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload consigner")
		}
		updated = consigner
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Consigner, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "consigner id required")
	}
	consigner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "consigner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consigner")
	}
	return consigner, nil
}

func (s *service) ListConsigners(ctx context.Context, filters ListFilters) ([]models.Consigner, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list consigners")
	}
	return rows, nil
}
