package consigners

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
	"github.com/slabtrack/slabtrack-backend/pkg/outbox"
)

type stubConsignersRepo struct {
	consigners map[uuid.UUID]*models.Consigner
}

func newStubConsignersRepo() *stubConsignersRepo {
	return &stubConsignersRepo{consigners: make(map[uuid.UUID]*models.Consigner)}
}

func (s *stubConsignersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubConsignersRepo) Create(ctx context.Context, consigner *models.Consigner) (*models.Consigner, error) {
	clone := *consigner
	s.consigners[consigner.ID] = &clone
	return consigner, nil
}

func (s *stubConsignersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Consigner, error) {
	consigner, ok := s.consigners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *consigner
	return &clone, nil
}

func (s *stubConsignersRepo) FindDefault(ctx context.Context) (*models.Consigner, error) {
	for _, consigner := range s.consigners {
		if consigner.IsDefault {
			clone := *consigner
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubConsignersRepo) List(ctx context.Context, filters ListFilters) ([]models.Consigner, error) {
	var rows []models.Consigner
	for _, consigner := range s.consigners {
		if filters.ActiveOnly && !consigner.Active {
			continue
		}
		rows = append(rows, *consigner)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (s *stubConsignersRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	consigner, ok := s.consigners[id]
	if !ok {
		return nil
	}
	if name, ok := updates["name"].(string); ok {
		consigner.Name = name
	}
	if active, ok := updates["active"].(bool); ok {
		consigner.Active = active
	}
	if isDefault, ok := updates["is_default"].(bool); ok {
		consigner.IsDefault = isDefault
	}
	return nil
}

func (s *stubConsignersRepo) ClearDefault(ctx context.Context, exceptID uuid.UUID) error {
	for _, consigner := range s.consigners {
		if consigner.ID != exceptID {
			consigner.IsDefault = false
		}
	}
	return nil
}

type stubOutbox struct {
	events []outbox.DomainEvent
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) (Service, *stubOutbox) {
	t.Helper()
	ob := &stubOutbox{}
	svc, err := NewService(repo, stubTx{}, ob)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc, ob
}

func seedConsigner(repo *stubConsignersRepo, name string, isDefault, active bool) *models.Consigner {
	consigner := &models.Consigner{
		ID:        uuid.New(),
		Name:      name,
		IsDefault: isDefault,
		Active:    active,
	}
	repo.consigners[consigner.ID] = consigner
	return consigner
}

func TestCreateConsignerRequiresName(t *testing.T) {
	repo := newStubConsignersRepo()
	svc, _ := newTestService(t, repo)

	_, err := svc.CreateConsigner(context.Background(), CreateInput{Name: "   "})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("blank name should be validation error, got %v", err)
	}
}

func TestCreateDefaultConsignerDisplacesPrior(t *testing.T) {
	repo := newStubConsignersRepo()
	svc, _ := newTestService(t, repo)
	prior := seedConsigner(repo, "Old Default", true, true)

	created, err := svc.CreateConsigner(context.Background(), CreateInput{
		Name:      "New Shop",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !created.IsDefault {
		t.Fatal("created consigner should hold the default flag")
	}
	if repo.consigners[prior.ID].IsDefault {
		t.Fatal("prior default should have been cleared in the same tx")
	}
}

func TestSetDefaultReassignsAndEmits(t *testing.T) {
	repo := newStubConsignersRepo()
	svc, ob := newTestService(t, repo)
	prior := seedConsigner(repo, "Alpha", true, true)
	next := seedConsigner(repo, "Bravo", false, true)

	updated, err := svc.SetDefault(context.Background(), next.ID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !updated.IsDefault {
		t.Fatal("target should now be default")
	}
	if repo.consigners[prior.ID].IsDefault {
		t.Fatal("prior default should be cleared")
	}
	if len(ob.events) != 1 || ob.events[0].EventType != enums.OutboxEventConsignerDefaultReassigned {
		t.Fatal("expected default reassigned event")
	}
}

func TestSetDefaultAlreadyDefaultIsNoop(t *testing.T) {
	repo := newStubConsignersRepo()
	svc, ob := newTestService(t, repo)
	current := seedConsigner(repo, "Alpha", true, true)

	updated, err := svc.SetDefault(context.Background(), current.ID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !updated.IsDefault {
		t.Fatal("consigner should stay default")
	}
	if len(ob.events) != 0 {
		t.Fatal("re-setting the same default should not emit")
	}
}

func TestSetDefaultRejectsInactiveAndUnknown(t *testing.T) {
	repo := newStubConsignersRepo()
	svc, _ := newTestService(t, repo)
	inactive := seedConsigner(repo, "Dormant", false, false)

	_, err := svc.SetDefault(context.Background(), inactive.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("inactive default should be validation error, got %v", err)
	}

	_, err = svc.SetDefault(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("unknown consigner should be not found, got %v", err)
	}
}

func TestUpdateConsigner(t *testing.T) {
	repo := newStubConsignersRepo()
	svc, _ := newTestService(t, repo)
	consigner := seedConsigner(repo, "Alpha", false, true)

	name := "Alpha Cards"
	active := false
	updated, err := svc.UpdateConsigner(context.Background(), consigner.ID, UpdateInput{
		Name:   &name,
		Active: &active,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if updated.Name != "Alpha Cards" || updated.Active {
		t.Fatalf("update not applied: %+v", updated)
	}

	_, err = svc.UpdateConsigner(context.Background(), consigner.ID, UpdateInput{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("empty update should be validation error, got %v", err)
	}

	_, err = svc.UpdateConsigner(context.Background(), uuid.New(), UpdateInput{Name: &name})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("unknown consigner should be not found, got %v", err)
	}
}

func TestListConsignersActiveOnly(t *testing.T) {
	repo := newStubConsignersRepo()
	svc, _ := newTestService(t, repo)
	seedConsigner(repo, "Alpha", false, true)
	seedConsigner(repo, "Bravo", false, false)

	rows, err := svc.ListConsigners(context.Background(), ListFilters{ActiveOnly: true})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Alpha" {
		t.Fatalf("expected only the active consigner, got %+v", rows)
	}
}
