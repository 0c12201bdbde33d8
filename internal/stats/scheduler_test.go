package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReconciler struct{ mock.Mock }

func (m *MockReconciler) Reconcile(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func TestNewScheduler_DefaultsIntervalWhenInvalid(t *testing.T) {
	s := NewScheduler(new(MockReconciler), 0)
	require.Equal(t, defaultReconcileInterval, s.interval)
	require.False(t, s.running())
}

func TestNewScheduler_UsesProvidedInterval(t *testing.T) {
	s := NewScheduler(new(MockReconciler), 42*time.Second)
	require.Equal(t, 42*time.Second, s.interval)
}

func TestScheduler_Shutdown_NoScheduler_ReturnsNil(t *testing.T) {
	s := NewScheduler(new(MockReconciler), time.Minute)
	require.NoError(t, s.Shutdown())
}

func TestScheduler_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	s := NewScheduler(new(MockReconciler), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	require.True(t, s.running())

	cancel()

	require.Eventually(t, func() bool { return !s.running() }, 2*time.Second, 10*time.Millisecond,
		"expected scheduler to be shutdown after ctx cancel")
}

func TestScheduler_RunsReconcile(t *testing.T) {
	rec := new(MockReconciler)
	done := make(chan struct{}, 1)
	rec.On("Reconcile", mock.Anything).Return(true, nil).Run(func(mock.Arguments) {
		select {
		case done <- struct{}{}:
		default:
		}
	})

	s := NewScheduler(rec, 50*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("reconcile job did not run")
	}
	require.NoError(t, s.Shutdown())
	require.NoError(t, s.Shutdown())
}
