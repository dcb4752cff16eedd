package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	playersvc "github.com/slabtrack/slabtrack-backend/internal/players"
	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
)

func TestCreatePlayer(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubPlayerService{
			createFn: func(ctx context.Context, input playersvc.CreateInput) (*models.Player, error) {
				if input.Name != "Ken Griffey Jr" {
					t.Fatalf("unexpected name %q", input.Name)
				}
				if input.Sport == nil || *input.Sport != "baseball" {
					t.Fatalf("expected sport, got %v", input.Sport)
				}
				return &models.Player{ID: uuid.New(), Name: input.Name, Sport: input.Sport}, nil
			},
		}
		body := `{"name":"Ken Griffey Jr","sport":"baseball"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreatePlayer(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(`{"sport":"baseball"}`))
		rec := httptest.NewRecorder()
		CreatePlayer(&stubPlayerService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		stub := &stubPlayerService{
			createFn: func(ctx context.Context, input playersvc.CreateInput) (*models.Player, error) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "player already exists")
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(`{"name":"Ken Griffey Jr"}`))
		rec := httptest.NewRecorder()
		CreatePlayer(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestGetPlayer(t *testing.T) {
	logg := testLogger()
	playerID := uuid.New()

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players/nope", nil)
		req = withURLParam(req, "playerID", "nope")
		rec := httptest.NewRecorder()
		GetPlayer(&stubPlayerService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubPlayerService{
			getFn: func(ctx context.Context, id uuid.UUID) (*models.Player, error) {
				return &models.Player{ID: id, Name: "Mia Hamm"}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players/"+playerID.String(), nil)
		req = withURLParam(req, "playerID", playerID.String())
		rec := httptest.NewRecorder()
		GetPlayer(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestListPlayers(t *testing.T) {
	logg := testLogger()

	stub := &stubPlayerService{
		listFn: func(ctx context.Context, filters playersvc.ListFilters) ([]models.Player, error) {
			if filters.Sport == nil || *filters.Sport != "basketball" {
				t.Fatalf("expected sport filter, got %v", filters.Sport)
			}
			if filters.Name == nil || *filters.Name != "jordan" {
				t.Fatalf("expected name filter, got %v", filters.Name)
			}
			return []models.Player{}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/players?sport=basketball&name=jordan", nil)
	rec := httptest.NewRecorder()
	ListPlayers(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "players") {
		t.Fatalf("expected players key, got %s", rec.Body.String())
	}
}

type stubPlayerService struct {
	createFn func(ctx context.Context, input playersvc.CreateInput) (*models.Player, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*models.Player, error)
	listFn   func(ctx context.Context, filters playersvc.ListFilters) ([]models.Player, error)
}

func (s *stubPlayerService) CreatePlayer(ctx context.Context, input playersvc.CreateInput) (*models.Player, error) {
	if s.createFn == nil {
		panic("unimplemented")
	}
	return s.createFn(ctx, input)
}

func (s *stubPlayerService) Get(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	if s.getFn == nil {
		panic("unimplemented")
	}
	return s.getFn(ctx, id)
}

func (s *stubPlayerService) ListPlayers(ctx context.Context, filters playersvc.ListFilters) ([]models.Player, error) {
	if s.listFn == nil {
		panic("unimplemented")
	}
	return s.listFn(ctx, filters)
}
