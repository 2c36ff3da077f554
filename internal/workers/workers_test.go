// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	mu       sync.Mutex
	runCount int
}

func (m *mockWorker) Run(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCount++
}

func (m *mockWorker) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runCount
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.Eventuallyf(t, func() bool { return w.count() == 1 },
			time.Second, 10*time.Millisecond, "worker[%d] was not started", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestSessionCleaner_PurgesOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := mock.NewMockSessionRepository(ctrl)

	purged := make(chan struct{})
	sessions.EXPECT().
		PurgeExpired(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ time.Time) (int64, error) {
			select {
			case purged <- struct{}{}:
			default:
			}
			return 2, nil
		}).
		MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := newSessionCleaner(sessions, 5*time.Millisecond, logger.Nop())
	go cleaner.Run(ctx)

	select {
	case <-purged:
	case <-time.After(time.Second):
		t.Fatal("cleaner never purged")
	}
}

func TestSessionCleaner_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := mock.NewMockSessionRepository(ctrl)
	sessions.EXPECT().
		PurgeExpired(gomock.Any(), gomock.Any()).
		Return(int64(0), nil).
		AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())

	cleaner := newSessionCleaner(sessions, 5*time.Millisecond, logger.Nop())

	done := make(chan struct{})
	go func() {
		cleaner.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop after cancellation")
	}
}

func TestSessionCleaner_KeepsRunningAfterPurgeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := mock.NewMockSessionRepository(ctrl)

	calls := make(chan struct{}, 4)
	sessions.EXPECT().
		PurgeExpired(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ time.Time) (int64, error) {
			select {
			case calls <- struct{}{}:
			default:
			}
			return 0, assert.AnError
		}).
		MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := newSessionCleaner(sessions, 5*time.Millisecond, logger.Nop())
	go cleaner.Run(ctx)

	// two observed calls prove the loop survived the first error
	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatalf("purge call %d never happened", i+1)
		}
	}
}
