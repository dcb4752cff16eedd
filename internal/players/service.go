package players

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
)

// Service manages the player directory referenced by price entries.
type Service interface {
	CreatePlayer(ctx context.Context, input CreateInput) (*models.Player, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, filters ListFilters) ([]models.Player, error)
}

type service struct {
	repo Repository
}

// NewService builds a player service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("players repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreatePlayer(ctx context.Context, input CreateInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "player name required")
	}

	player := &models.Player{
		ID:    uuid.New(),
		Name:  name,
		Sport: input.Sport,
	}
	created, err := s.repo.Create(ctx, player)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create player")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "player id required")
	}
	player, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "player not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load player")
	}
	return player, nil
}

func (s *service) ListPlayers(ctx context.Context, filters ListFilters) ([]models.Player, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list players")
	}
	return rows, nil
}
