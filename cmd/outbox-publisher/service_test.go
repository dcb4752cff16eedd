package main

import (
	"context"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/slabtrack/slabtrack-backend/pkg/config"
	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
)

type stubRepo struct {
	events    []models.OutboxEvent
	fetchErr  error
	published []uuid.UUID
	failed    []uuid.UUID
	markErr   error
}

func (s *stubRepo) FetchPublishable(limit, maxAttempts int) ([]models.OutboxEvent, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if len(s.events) > limit {
		return s.events[:limit], nil
	}
	return s.events, nil
}

func (s *stubRepo) MarkPublished(id uuid.UUID) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.published = append(s.published, id)
	return nil
}

func (s *stubRepo) MarkFailed(id uuid.UUID, err error) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.failed = append(s.failed, id)
	return nil
}

type stubResult struct {
	err error
}

func (s stubResult) Get(context.Context) (string, error) {
	return "server-id", s.err
}

type stubPublisher struct {
	messages   []*gcppubsub.Message
	publishErr error
}

func (s *stubPublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	s.messages = append(s.messages, msg)
	return stubResult{err: s.publishErr}
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error {
	return nil
}

func testPublisherConfig() *config.Config {
	return &config.Config{
		Outbox: config.OutboxConfig{
			BatchSize:      10,
			PollIntervalMS: 10,
			MaxAttempts:    3,
		},
		PubSub: config.PubSubConfig{DomainTopic: "test-domain"},
	}
}

func newTestService(t *testing.T, repo *stubRepo, pub *stubPublisher) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Config:     testPublisherConfig(),
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		DB:         okPinger{},
		PubSub:     okPinger{},
		Repository: repo,
		Publisher:  pub,
	})
	require.NoError(t, err)
	return svc
}

func makeEvent(eventType enums.OutboxEventType) models.OutboxEvent {
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     eventType,
		AggregateType: enums.OutboxAggregateSubmission,
		AggregateID:   uuid.New(),
		Payload:       []byte(`{"version":1}`),
		CreatedAt:     time.Now().UTC(),
	}
}

func TestNewServiceValidatesDeps(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)

	_, err = NewService(ServiceParams{
		Config:     testPublisherConfig(),
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		DB:         okPinger{},
		PubSub:     okPinger{},
		Repository: &stubRepo{},
	})
	require.ErrorContains(t, err, "publisher")
}

func TestDrainOncePublishesBatch(t *testing.T) {
	first := makeEvent(enums.OutboxEventSubmissionCreated)
	second := makeEvent(enums.OutboxEventPriceUpserted)
	repo := &stubRepo{events: []models.OutboxEvent{first, second}}
	pub := &stubPublisher{}
	svc := newTestService(t, repo, pub)

	processed, err := svc.drainOnce(context.Background())
	require.NoError(t, err)
	require.True(t, processed)
	require.Equal(t, []uuid.UUID{first.ID, second.ID}, repo.published)
	require.Empty(t, repo.failed)

	require.Len(t, pub.messages, 2)
	require.Equal(t, string(first.EventType), pub.messages[0].Attributes["event_type"])
	require.Equal(t, first.AggregateID.String(), pub.messages[0].Attributes["aggregate_id"])
	require.Equal(t, []byte(first.Payload), pub.messages[0].Data)
}

func TestDrainOnceMarksFailuresForRetry(t *testing.T) {
	event := makeEvent(enums.OutboxEventSubmissionCreated)
	repo := &stubRepo{events: []models.OutboxEvent{event}}
	pub := &stubPublisher{publishErr: errors.New("broker unavailable")}
	svc := newTestService(t, repo, pub)

	processed, err := svc.drainOnce(context.Background())
	require.Error(t, err)
	require.True(t, processed)
	require.Empty(t, repo.published)
	require.Equal(t, []uuid.UUID{event.ID}, repo.failed)
}

func TestDrainOnceCollectsAllFailures(t *testing.T) {
	first := makeEvent(enums.OutboxEventSubmissionCreated)
	second := makeEvent(enums.OutboxEventPriceUpserted)
	repo := &stubRepo{events: []models.OutboxEvent{first, second}}
	pub := &stubPublisher{publishErr: errors.New("broker unavailable")}
	svc := newTestService(t, repo, pub)

	processed, err := svc.drainOnce(context.Background())
	require.Error(t, err)
	require.True(t, processed)
	require.Len(t, repo.failed, 2)
	require.Contains(t, err.Error(), first.ID.String())
	require.Contains(t, err.Error(), second.ID.String())
}

func TestDrainOnceEmptyBatch(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubPublisher{})

	processed, err := svc.drainOnce(context.Background())
	require.NoError(t, err)
	require.False(t, processed)
}

func TestRunStopsOnCancel(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubPublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop after cancel")
	}
}

func TestNextBackoffDoublesAndCaps(t *testing.T) {
	base := 100 * time.Millisecond
	require.Equal(t, 200*time.Millisecond, nextBackoff(base, base, maxBackoff))
	require.Equal(t, maxBackoff, nextBackoff(maxBackoff, base, maxBackoff))
	require.Equal(t, 2*base, nextBackoff(0, base, maxBackoff))
}
