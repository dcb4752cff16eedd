package submissions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
	"github.com/slabtrack/slabtrack-backend/pkg/outbox"
	"github.com/slabtrack/slabtrack-backend/pkg/outbox/payloads"
	"github.com/slabtrack/slabtrack-backend/pkg/pagination"
	"github.com/slabtrack/slabtrack-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service drives submissions through the grading/authentication lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Submission, error)
	AdvanceStatus(ctx context.Context, input AdvanceInput) (*models.Submission, error)
	SubmitResults(ctx context.Context, input SubmitResultsInput) (*models.Submission, error)
	Cancel(ctx context.Context, input CancelInput) (*models.Submission, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	ListSubmissions(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	now    func() time.Time
}

// NewService builds a submission service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("submissions repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outbox, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Submission, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission kind required")
	}
	if input.CompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}

	total := decimal.Zero
	items := make([]models.SubmissionItem, 0, len(input.Items))
	for i, item := range input.Items {
		hasCard := item.CardID != nil && *item.CardID != uuid.Nil
		hasItem := item.ItemID != nil && *item.ItemID != uuid.Nil
		if hasCard == hasItem {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("ambiguous item reference at index %d", i))
		}
		if item.DeclaredValue.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("declared value must be >= 0 at index %d", i))
		}

		row := models.SubmissionItem{
			ID:            uuid.New(),
			DeclaredValue: item.DeclaredValue,
			Status:        enums.SubmissionItemStatusPending,
		}
		if hasCard {
			row.CardID = item.CardID
			row.Kind = enums.ItemKindCard
		} else {
			// kind resolved from the referenced collectible row inside the tx
			row.ItemID = item.ItemID
		}
		items = append(items, row)
		total = total.Add(item.DeclaredValue)
	}

	dateSubmitted := input.DateSubmitted
	if dateSubmitted.IsZero() {
		dateSubmitted = types.NewDate(s.now())
	}

	var created *models.Submission
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		companyExists, err := repo.CompanyExists(ctx, input.CompanyID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve grading company")
		}
		if !companyExists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "grading company not found")
		}
		if input.ServiceLevelID != nil && *input.ServiceLevelID != uuid.Nil {
			levelExists, err := repo.ServiceLevelExists(ctx, *input.ServiceLevelID, input.CompanyID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve service level")
			}
			if !levelExists {
				return pkgerrors.New(pkgerrors.CodeNotFound, "service level not found for company")
			}
		}

		for i := range items {
			if items[i].CardID != nil {
				exists, err := repo.CardExists(ctx, *items[i].CardID)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve card reference")
				}
				if !exists {
					return pkgerrors.New(pkgerrors.CodeValidation,
						fmt.Sprintf("item reference does not resolve at index %d", i))
				}
			} else {
				kind, exists, err := repo.CollectibleKind(ctx, *items[i].ItemID)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve collectible reference")
				}
				if !exists {
					return pkgerrors.New(pkgerrors.CodeValidation,
						fmt.Sprintf("item reference does not resolve at index %d", i))
				}
				items[i].Kind = kind
			}
		}

		submission := &models.Submission{
			ID:                 uuid.New(),
			Kind:               input.Kind,
			CompanyID:          input.CompanyID,
			ServiceLevelID:     input.ServiceLevelID,
			Status:             enums.SubmissionStatusPending,
			DateSubmitted:      dateSubmitted,
			TotalItems:         len(items),
			TotalDeclaredValue: total,
			GradingFees:        input.GradingFees,
			ShippingCost:       input.ShippingCost,
			Items:              items,
		}
		if _, err := repo.Create(ctx, submission); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create submission")
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventSubmissionCreated,
			AggregateType: enums.OutboxAggregateSubmission,
			AggregateID:   submission.ID,
			Version:       1,
			Data: payloads.SubmissionCreatedEvent{
				SubmissionID:       submission.ID,
				Kind:               submission.Kind,
				TotalItems:         submission.TotalItems,
				TotalDeclaredValue: submission.TotalDeclaredValue,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		created = submission
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// stageDateColumn maps each on-rail status to the date field it stamps.
func stageDateColumn(status enums.SubmissionStatus) (string, bool) {
	switch status {
	case enums.SubmissionStatusShipped:
		return "date_shipped", true
	case enums.SubmissionStatusReceived:
		return "date_received", true
	case enums.SubmissionStatusProcessing:
		return "date_processed", true
	case enums.SubmissionStatusShippedBack:
		return "date_shipped_back", true
	case enums.SubmissionStatusReturned:
		return "date_returned", true
	}
	return "", false
}

func (s *service) AdvanceStatus(ctx context.Context, input AdvanceInput) (*models.Submission, error) {
	if input.SubmissionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id required")
	}
	if !input.NewStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status")
	}
	if input.NewStatus == enums.SubmissionStatusCancelled {
		return s.Cancel(ctx, CancelInput{SubmissionID: input.SubmissionID})
	}

	var advanced *models.Submission
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		submission, err := repo.FindByID(ctx, input.SubmissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load submission")
		}

		if submission.Status == input.NewStatus {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "status must strictly advance")
		}
		if !submission.Status.CanAdvanceTo(input.NewStatus) {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition,
				fmt.Sprintf("cannot advance from %s to %s", submission.Status, input.NewStatus))
		}

		if input.NewStatus == enums.SubmissionStatusReturned {
			pending, err := repo.CountPendingItems(ctx, submission.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending items")
			}
			if pending > 0 {
				return pkgerrors.New(pkgerrors.CodeInvalidTransition, "unresolved items remain")
			}
		}

		stageDate := types.NewDate(s.now())
		if input.StageDate != nil && !input.StageDate.IsZero() {
			stageDate = *input.StageDate
		}

		updates := map[string]any{"status": input.NewStatus}
		if column, ok := stageDateColumn(input.NewStatus); ok {
			updates[column] = stageDate
		}
		if input.TrackingNumber != nil {
			switch input.NewStatus {
			case enums.SubmissionStatusShipped:
				updates["tracking_number_out"] = input.TrackingNumber
			case enums.SubmissionStatusShippedBack:
				updates["tracking_number_back"] = input.TrackingNumber
			}
		}

		updated, err := repo.UpdateStatusGuarded(ctx, submission.ID, submission.Status, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advance submission status")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "submission status changed concurrently")
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventSubmissionStatusAdvanced,
			AggregateType: enums.OutboxAggregateSubmission,
			AggregateID:   submission.ID,
			Version:       1,
			Data: payloads.SubmissionStatusAdvancedEvent{
				SubmissionID: submission.ID,
				FromStatus:   submission.Status,
				ToStatus:     input.NewStatus,
				EffectiveOn:  stageDate.String(),
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		advanced, err = repo.FindByID(ctx, submission.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload submission")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return advanced, nil
}

func (s *service) SubmitResults(ctx context.Context, input SubmitResultsInput) (*models.Submission, error) {
	if input.SubmissionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id required")
	}
	if len(input.Results) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item result required")
	}
	for i, result := range input.Results {
		if result.ItemID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item id required at index %d", i))
		}
		if !result.Status.IsTerminal() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item result must be a terminal status at index %d", i))
		}
		if result.GradeValue != nil && result.GradeValue.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("grade value must be >= 0 at index %d", i))
		}
	}

	resolvedAt := s.now()
	if input.ResolvedAt != nil {
		resolvedAt = *input.ResolvedAt
	}

	var updated *models.Submission
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		submission, err := repo.FindByID(ctx, input.SubmissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load submission")
		}

		if submission.Status.IsTerminal() ||
			submission.Status.Ordinal() < enums.SubmissionStatusProcessing.Ordinal() {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition,
				fmt.Sprintf("results cannot be recorded while submission is %s", submission.Status))
		}

		known := make(map[uuid.UUID]enums.SubmissionItemStatus, len(submission.Items))
		for _, item := range submission.Items {
			known[item.ID] = item.Status
		}

		// any failure returns an error, rolling back every resolution in the
		// batch: item results land all-or-nothing
		for _, result := range input.Results {
			status, ok := known[result.ItemID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("item %s does not belong to submission", result.ItemID))
			}
			if status != enums.SubmissionItemStatusPending {
				return pkgerrors.New(pkgerrors.CodeInvalidTransition,
					fmt.Sprintf("item %s is already resolved", result.ItemID))
			}

			changes := map[string]any{
				"status":         result.Status,
				"grade_value":    result.GradeValue,
				"cert_number":    result.CertNumber,
				"sticker_number": result.StickerNumber,
				"result_notes":   result.ResultNotes,
				"resolved_at":    resolvedAt,
			}
			applied, err := repo.ResolveItemGuarded(ctx, result.ItemID, submission.ID, changes)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve submission item")
			}
			if !applied {
				return pkgerrors.New(pkgerrors.CodeInvalidTransition,
					fmt.Sprintf("item %s is already resolved", result.ItemID))
			}
		}

		pending, err := repo.CountPendingItems(ctx, submission.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending items")
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventSubmissionResultsRecorded,
			AggregateType: enums.OutboxAggregateSubmission,
			AggregateID:   submission.ID,
			Version:       1,
			Data: payloads.SubmissionResultsRecordedEvent{
				SubmissionID:  submission.ID,
				ItemsResolved: len(input.Results),
				ItemsPending:  int(pending),
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		updated, err = repo.FindByID(ctx, submission.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload submission")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel soft-cancels a submission. Item statuses are left untouched: a
// cancellation does not retroactively resolve items.
func (s *service) Cancel(ctx context.Context, input CancelInput) (*models.Submission, error) {
	if input.SubmissionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id required")
	}

	var cancelled *models.Submission
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		submission, err := repo.FindByID(ctx, input.SubmissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load submission")
		}
		if submission.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition,
				fmt.Sprintf("cannot cancel a %s submission", submission.Status))
		}

		now := s.now()
		updates := map[string]any{
			"status":        enums.SubmissionStatusCancelled,
			"cancel_reason": input.Reason,
			"cancelled_at":  now,
		}
		updated, err := repo.UpdateStatusGuarded(ctx, submission.ID, submission.Status, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel submission")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "submission status changed concurrently")
		}

		reason := ""
		if input.Reason != nil {
			reason = *input.Reason
		}
		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventSubmissionCancelled,
			AggregateType: enums.OutboxAggregateSubmission,
			AggregateID:   submission.ID,
			Version:       1,
			Data: payloads.SubmissionCancelledEvent{
				SubmissionID: submission.ID,
				FromStatus:   submission.Status,
				CancelledAt:  now,
				Reason:       reason,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		cancelled, err = repo.FindByID(ctx, submission.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload submission")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id required")
	}
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load submission")
	}
	return submission, nil
}

func (s *service) ListSubmissions(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list submissions")
	}
	return list, nil
}
