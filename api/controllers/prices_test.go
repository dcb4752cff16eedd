package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pricesvc "github.com/slabtrack/slabtrack-backend/internal/prices"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withURLParam(req *http.Request, name, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestUpsertPrice(t *testing.T) {
	logg := testLogger()
	consignerID := uuid.New()
	playerID := uuid.New()

	t.Run("created", func(t *testing.T) {
		stub := &stubPriceService{
			upsertFn: func(ctx context.Context, input pricesvc.UpsertPriceInput) (*pricesvc.UpsertOutcome, error) {
				if input.ConsignerID != consignerID || input.PlayerID != playerID {
					t.Fatalf("unexpected input ids: %v %v", input.ConsignerID, input.PlayerID)
				}
				return &pricesvc.UpsertOutcome{
					EntryID:      uuid.New(),
					ConsignerID:  input.ConsignerID,
					PlayerID:     input.PlayerID,
					PricePerCard: input.PricePerCard,
				}, nil
			},
		}
		body := `{"consigner_id":"` + consignerID.String() + `","player_id":"` + playerID.String() + `","price_per_card":"12.50"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpsertPrice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("replaced returns 200", func(t *testing.T) {
		stub := &stubPriceService{
			upsertFn: func(ctx context.Context, input pricesvc.UpsertPriceInput) (*pricesvc.UpsertOutcome, error) {
				return &pricesvc.UpsertOutcome{EntryID: uuid.New(), Replaced: true}, nil
			},
		}
		body := `{"consigner_id":"` + consignerID.String() + `","player_id":"` + playerID.String() + `","price_per_card":"9.00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpsertPrice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 on replace, got %d", rec.Code)
		}
	})

	t.Run("missing consigner id", func(t *testing.T) {
		body := `{"player_id":"` + playerID.String() + `","price_per_card":"5.00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpsertPrice(&stubPriceService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "consigner_id") {
			t.Fatalf("expected field detail in body, got %s", rec.Body.String())
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		body := `{"consigner_id":"` + consignerID.String() + `","player_id":"` + playerID.String() + `","price":"5.00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpsertPrice(&stubPriceService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
		}
	})

	t.Run("service error maps to status", func(t *testing.T) {
		stub := &stubPriceService{
			upsertFn: func(ctx context.Context, input pricesvc.UpsertPriceInput) (*pricesvc.UpsertOutcome, error) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "entry already replaced")
			},
		}
		body := `{"consigner_id":"` + consignerID.String() + `","player_id":"` + playerID.String() + `","price_per_card":"5.00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpsertPrice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestBulkUpsertPrices(t *testing.T) {
	logg := testLogger()

	t.Run("partial failures reported", func(t *testing.T) {
		stub := &stubPriceService{
			bulkFn: func(ctx context.Context, entries []pricesvc.UpsertPriceInput) (*pricesvc.BulkUpsertResult, error) {
				if len(entries) != 2 {
					t.Fatalf("expected 2 entries, got %d", len(entries))
				}
				return &pricesvc.BulkUpsertResult{
					Created: 1,
					Failed:  []pricesvc.BulkUpsertFailure{{Index: 1, Error: "price per card must be >= 0"}},
				}, nil
			},
		}
		body := `{"entries":[` +
			`{"consigner_id":"` + uuid.NewString() + `","player_id":"` + uuid.NewString() + `","price_per_card":"3.00"},` +
			`{"consigner_id":"` + uuid.NewString() + `","player_id":"` + uuid.NewString() + `","price_per_card":"-1"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/prices/bulk", strings.NewReader(body))
		rec := httptest.NewRecorder()
		BulkUpsertPrices(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var envelope struct {
			Data pricesvc.BulkUpsertResult `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Data.Created != 1 || len(envelope.Data.Failed) != 1 {
			t.Fatalf("unexpected bulk result: %+v", envelope.Data)
		}
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/prices/bulk", strings.NewReader(`{"entries":[]}`))
		rec := httptest.NewRecorder()
		BulkUpsertPrices(&stubPriceService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty batch, got %d", rec.Code)
		}
	})
}

func TestDeactivatePrice(t *testing.T) {
	logg := testLogger()
	priceID := uuid.New()

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/prices/not-a-uuid", nil)
		req = withURLParam(req, "priceID", "not-a-uuid")
		rec := httptest.NewRecorder()
		DeactivatePrice(&stubPriceService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubPriceService{
			deactivateFn: func(ctx context.Context, id uuid.UUID) error {
				return pkgerrors.New(pkgerrors.CodeNotFound, "price entry not found")
			},
		}
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/prices/"+priceID.String(), nil)
		req = withURLParam(req, "priceID", priceID.String())
		rec := httptest.NewRecorder()
		DeactivatePrice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		var got uuid.UUID
		stub := &stubPriceService{
			deactivateFn: func(ctx context.Context, id uuid.UUID) error {
				got = id
				return nil
			},
		}
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/prices/"+priceID.String(), nil)
		req = withURLParam(req, "priceID", priceID.String())
		rec := httptest.NewRecorder()
		DeactivatePrice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got != priceID {
			t.Fatalf("expected service called with %s, got %s", priceID, got)
		}
	})
}

func TestLookupPlayerPrice(t *testing.T) {
	logg := testLogger()
	playerID := uuid.New()
	consignerID := uuid.New()

	t.Run("passes preferred consigner", func(t *testing.T) {
		stub := &stubPriceService{
			lookupFn: func(ctx context.Context, gotPlayer uuid.UUID, prefer *uuid.UUID) (*pricesvc.LookupResult, error) {
				if gotPlayer != playerID {
					t.Fatalf("expected player %s, got %s", playerID, gotPlayer)
				}
				if prefer == nil || *prefer != consignerID {
					t.Fatalf("expected preferred consigner %s, got %v", consignerID, prefer)
				}
				return &pricesvc.LookupResult{PlayerID: gotPlayer}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players/"+playerID.String()+"/prices?consigner_id="+consignerID.String(), nil)
		req = withURLParam(req, "playerID", playerID.String())
		rec := httptest.NewRecorder()
		LookupPlayerPrice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("invalid consigner query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players/"+playerID.String()+"/prices?consigner_id=nope", nil)
		req = withURLParam(req, "playerID", playerID.String())
		rec := httptest.NewRecorder()
		LookupPlayerPrice(&stubPriceService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("empty price list still succeeds", func(t *testing.T) {
		stub := &stubPriceService{
			lookupFn: func(ctx context.Context, gotPlayer uuid.UUID, prefer *uuid.UUID) (*pricesvc.LookupResult, error) {
				return &pricesvc.LookupResult{PlayerID: gotPlayer, AllPrices: []pricesvc.PriceQuote{}}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players/"+playerID.String()+"/prices", nil)
		req = withURLParam(req, "playerID", playerID.String())
		rec := httptest.NewRecorder()
		LookupPlayerPrice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var envelope struct {
			Data pricesvc.LookupResult `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Data.BestPrice != nil {
			t.Fatalf("expected nil best price, got %v", envelope.Data.BestPrice)
		}
	})
}

func TestConsignerPriceSummary(t *testing.T) {
	logg := testLogger()
	consignerID := uuid.New()

	avg := decimal.RequireFromString("7.25")
	stub := &stubPriceService{
		summaryFn: func(ctx context.Context, id uuid.UUID) (*pricesvc.ConsignerSummary, error) {
			return &pricesvc.ConsignerSummary{ConsignerID: id, EntryCount: 4, AvgPrice: &avg}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/consigners/"+consignerID.String()+"/prices/summary", nil)
	req = withURLParam(req, "consignerID", consignerID.String())
	rec := httptest.NewRecorder()
	ConsignerPriceSummary(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"entry_count":4`) {
		t.Fatalf("expected entry count in body, got %s", rec.Body.String())
	}
}

type stubPriceService struct {
	upsertFn     func(ctx context.Context, input pricesvc.UpsertPriceInput) (*pricesvc.UpsertOutcome, error)
	bulkFn       func(ctx context.Context, entries []pricesvc.UpsertPriceInput) (*pricesvc.BulkUpsertResult, error)
	deactivateFn func(ctx context.Context, priceID uuid.UUID) error
	lookupFn     func(ctx context.Context, playerID uuid.UUID, preferConsignerID *uuid.UUID) (*pricesvc.LookupResult, error)
	summaryFn    func(ctx context.Context, consignerID uuid.UUID) (*pricesvc.ConsignerSummary, error)
}

func (s *stubPriceService) UpsertPrice(ctx context.Context, input pricesvc.UpsertPriceInput) (*pricesvc.UpsertOutcome, error) {
	if s.upsertFn == nil {
		panic("unimplemented")
	}
	return s.upsertFn(ctx, input)
}

func (s *stubPriceService) BulkUpsert(ctx context.Context, entries []pricesvc.UpsertPriceInput) (*pricesvc.BulkUpsertResult, error) {
	if s.bulkFn == nil {
		panic("unimplemented")
	}
	return s.bulkFn(ctx, entries)
}

func (s *stubPriceService) DeactivatePrice(ctx context.Context, priceID uuid.UUID) error {
	if s.deactivateFn == nil {
		panic("unimplemented")
	}
	return s.deactivateFn(ctx, priceID)
}

func (s *stubPriceService) LookupPlayerPrice(ctx context.Context, playerID uuid.UUID, preferConsignerID *uuid.UUID) (*pricesvc.LookupResult, error) {
	if s.lookupFn == nil {
		panic("unimplemented")
	}
	return s.lookupFn(ctx, playerID, preferConsignerID)
}

func (s *stubPriceService) GetConsignerSummary(ctx context.Context, consignerID uuid.UUID) (*pricesvc.ConsignerSummary, error) {
	if s.summaryFn == nil {
		panic("unimplemented")
	}
	return s.summaryFn(ctx, consignerID)
}
