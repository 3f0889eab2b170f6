package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
	"github.com/ruudy-sib/boxcheck/internal/port/primary"
)

// mockContainerService counts ProcessDueImports calls; the rest is inert.
type mockContainerService struct {
	processFunc  func(ctx context.Context) error
	processCalls atomic.Int32
}

var _ primary.ContainerService = (*mockContainerService)(nil)

func (m *mockContainerService) Check(raw string) valueobject.Check {
	return valueobject.Diagnose(raw)
}

func (m *mockContainerService) Normalize(raw string) string {
	return valueobject.NormalizeContainerNumber(raw)
}

func (m *mockContainerService) ComputeCheckDigit(prefix string) (int, error) {
	return valueobject.ComputeCheckDigit(prefix)
}

func (m *mockContainerService) SubmitImport(_ context.Context, _ *entity.ImportBatch) error {
	return nil
}

func (m *mockContainerService) ProcessDueImports(ctx context.Context) error {
	m.processCalls.Add(1)
	if m.processFunc != nil {
		return m.processFunc(ctx)
	}
	return nil
}

func (m *mockContainerService) CancelImport(_ context.Context, _ string) error {
	return nil
}

func (m *mockContainerService) GetReport(_ context.Context, _ string) (*entity.ImportReport, error) {
	return nil, nil
}

func TestImportWorker_Run(t *testing.T) {
	tests := []struct {
		name         string
		pollInterval time.Duration
		runDuration  time.Duration
		processErr   error
		wantMinCalls int32
	}{
		{
			name:         "processes imports at poll interval",
			pollInterval: 50 * time.Millisecond,
			runDuration:  200 * time.Millisecond,
			wantMinCalls: 3,
		},
		{
			name:         "continues on process error",
			pollInterval: 50 * time.Millisecond,
			runDuration:  200 * time.Millisecond,
			processErr:   errors.New("redis timeout"),
			wantMinCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockContainerService{}
			if tt.processErr != nil {
				svc.processFunc = func(_ context.Context) error {
					return tt.processErr
				}
			}

			w := NewImportWorker(svc, tt.pollInterval, zap.NewNop())

			ctx, cancel := context.WithTimeout(context.Background(), tt.runDuration)
			defer cancel()

			err := w.Run(ctx)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("expected DeadlineExceeded, got %v", err)
			}

			calls := svc.processCalls.Load()
			if calls < tt.wantMinCalls {
				t.Fatalf("expected at least %d process calls, got %d", tt.wantMinCalls, calls)
			}
		})
	}
}

func TestImportWorker_Run_pollsImmediately(t *testing.T) {
	polled := make(chan struct{}, 1)
	svc := &mockContainerService{
		processFunc: func(_ context.Context) error {
			select {
			case polled <- struct{}{}:
			default:
			}
			return nil
		},
	}
	w := NewImportWorker(svc, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	select {
	case <-polled:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not poll before the first tick")
	}
}

func TestImportWorker_Run_respectsCancellation(t *testing.T) {
	svc := &mockContainerService{}
	w := NewImportWorker(svc, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop within 2 seconds after cancellation")
	}
}
