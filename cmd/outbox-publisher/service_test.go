package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu-backend/pkg/config"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/outbox"
)

func TestServiceProcessBatchContinuesAfterFailure(t *testing.T) {
	repo := &fakeRepo{
		events: []models.OutboxEvent{
			{
				ID:            uuid.New(),
				EventType:     enums.EventSettlementCompleted,
				AggregateType: enums.AggregateOrder,
				AggregateID:   uuid.New(),
				Payload:       mustEnvelopePayload(t, "event-one"),
			},
			{
				ID:            uuid.New(),
				EventType:     enums.EventSettlementCompleted,
				AggregateType: enums.AggregateOrder,
				AggregateID:   uuid.New(),
				Payload:       mustEnvelopePayload(t, "event-two"),
			},
		},
	}
	bus := &fakeBus{errs: []error{errors.New("transient"), nil}}
	service := newTestService(t, repo, bus)

	processed, err := service.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if !processed {
		t.Fatalf("expected batch to report processed")
	}
	if got := len(repo.failed); got != 1 {
		t.Fatalf("unexpected number of failed rows: %d", got)
	}
	if got := len(repo.published); got != 1 {
		t.Fatalf("unexpected number of published rows: %d", got)
	}
	if repo.failed[0] != repo.events[0].ID {
		t.Fatalf("failed row recorded wrong ID")
	}
	if repo.published[0] != repo.events[1].ID {
		t.Fatalf("published row recorded wrong ID")
	}
}

func TestServiceProcessBatchRoutesByAggregateType(t *testing.T) {
	repo := &fakeRepo{
		events: []models.OutboxEvent{
			{
				ID:            uuid.New(),
				EventType:     enums.EventWalletAdjusted,
				AggregateType: enums.AggregateWallet,
				AggregateID:   uuid.New(),
				Payload:       mustEnvelopePayload(t, "wallet-event"),
			},
			{
				ID:            uuid.New(),
				EventType:     enums.EventEntityCancelled,
				AggregateType: enums.AggregateLabourBooking,
				AggregateID:   uuid.New(),
				Payload:       mustEnvelopePayload(t, "labour-event"),
			},
		},
	}
	bus := &fakeBus{}
	service := newTestService(t, repo, bus)

	processed, err := service.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if !processed {
		t.Fatalf("expected batch to report processed")
	}
	if got := len(bus.messages); got != 2 {
		t.Fatalf("expected 2 published messages, got %d", got)
	}
	if bus.messages[0].channel != "events:wallet" {
		t.Fatalf("unexpected channel %q", bus.messages[0].channel)
	}
	if bus.messages[1].channel != "events:labour_booking" {
		t.Fatalf("unexpected channel %q", bus.messages[1].channel)
	}
	if got := len(repo.published); got != 2 {
		t.Fatalf("expected 2 published rows, got %d", got)
	}
}

func TestServiceProcessBatchReportsIdleQueue(t *testing.T) {
	repo := &fakeRepo{}
	bus := &fakeBus{}
	service := newTestService(t, repo, bus)

	processed, err := service.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if processed {
		t.Fatalf("empty queue must not report processed")
	}
	if len(bus.messages) != 0 {
		t.Fatalf("nothing should be published on an empty queue")
	}
}

func TestServiceRunStopsOnContextCancel(t *testing.T) {
	repo := &fakeRepo{}
	bus := &fakeBus{}
	service := newTestService(t, repo, bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- service.Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "outbox-publisher-test", Output: io.Discard})
	if _, err := NewService(ServiceParams{Logger: logg, Repository: &fakeRepo{}, Bus: &fakeBus{}}); err == nil {
		t.Fatalf("expected error without config")
	}
	if _, err := NewService(ServiceParams{Config: &config.Config{}, Logger: logg, Bus: &fakeBus{}}); err == nil {
		t.Fatalf("expected error without repository")
	}
	if _, err := NewService(ServiceParams{Config: &config.Config{}, Logger: logg, Repository: &fakeRepo{}}); err == nil {
		t.Fatalf("expected error without bus")
	}
}

func newTestService(t *testing.T, repo outboxRepository, bus eventBus) *Service {
	t.Helper()
	cfg := &config.Config{
		Outbox: config.OutboxConfig{
			BatchSize:    10,
			PollInterval: 10 * time.Millisecond,
		},
	}
	logg := logger.New(logger.Options{
		ServiceName: "outbox-publisher-test",
		Output:      io.Discard,
	})
	service, err := NewService(ServiceParams{
		Config:     cfg,
		Logger:     logg,
		Repository: repo,
		Bus:        bus,
	})
	if err != nil {
		t.Fatalf("failed to construct service: %v", err)
	}
	return service
}

func mustEnvelopePayload(tb testing.TB, eventID string) json.RawMessage {
	tb.Helper()
	env := outbox.PayloadEnvelope{
		Version:    1,
		EventID:    eventID,
		OccurredAt: time.Now(),
		Data:       json.RawMessage(`{}`),
	}
	payload, err := json.Marshal(env)
	if err != nil {
		tb.Fatalf("marshal envelope: %v", err)
	}
	return payload
}

type fakeRepo struct {
	events    []models.OutboxEvent
	published []uuid.UUID
	failed    []uuid.UUID
}

func (f *fakeRepo) FetchUnpublished(limit int) ([]models.OutboxEvent, error) {
	if len(f.events) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeRepo) MarkPublished(id uuid.UUID) error {
	f.published = append(f.published, id)
	return nil
}

func (f *fakeRepo) MarkFailed(id uuid.UUID, err error) error {
	f.failed = append(f.failed, id)
	return nil
}

type busMessage struct {
	channel string
	payload any
}

type fakeBus struct {
	messages []busMessage
	errs     []error
}

func (f *fakeBus) Publish(_ context.Context, channel string, payload any) error {
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return err
		}
	}
	f.messages = append(f.messages, busMessage{channel: channel, payload: payload})
	return nil
}

func (f *fakeBus) EventChannel(topic string) string {
	return "events:" + topic
}

func (f *fakeBus) Ping(context.Context) error {
	return nil
}
