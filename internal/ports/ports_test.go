package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockChecker implements HealthChecker for testing.
type mockChecker struct {
	name string
	err  error
}

func (m *mockChecker) Name() string {
	return m.name
}

func (m *mockChecker) Check(ctx context.Context) error {
	return m.err
}

func TestNewHealthRegistry(t *testing.T) {
	registry := NewHealthRegistry()

	require.NotNil(t, registry)
	assert.NotNil(t, registry.checkers)
	assert.Empty(t, registry.checkers)
}

// TestRegister_Success verifies that a checker can be registered successfully.
func TestRegister_Success(t *testing.T) {
	registry := NewHealthRegistry()
	checker := &mockChecker{name: "storage"}

	err := registry.Register(checker)

	require.NoError(t, err)
	assert.Len(t, registry.checkers, 1)
	assert.Equal(t, "storage", registry.checkers[0].Name())
}

// TestRegister_DuplicateName verifies that registering duplicate checker names returns an error.
func TestRegister_DuplicateName(t *testing.T) {
	registry := NewHealthRegistry()
	checker1 := &mockChecker{name: "sqlite"}
	checker2 := &mockChecker{name: "sqlite"}

	err := registry.Register(checker1)
	require.NoError(t, err)

	err = registry.Register(checker2)

	require.Error(t, err)
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "sqlite")
	assert.Len(t, registry.checkers, 1)
}

// TestCheckAll_NoCheckers verifies that an empty registry returns healthy status.
func TestCheckAll_NoCheckers(t *testing.T) {
	registry := NewHealthRegistry()
	ctx := context.Background()

	result := registry.CheckAll(ctx)

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.NotNil(t, result.Checks)
	assert.Empty(t, result.Checks)
	assert.False(t, result.Timestamp.IsZero())
}

// TestCheckAll_AllHealthy verifies that multiple healthy checkers result in healthy status.
func TestCheckAll_AllHealthy(t *testing.T) {
	registry := NewHealthRegistry()
	checker1 := &mockChecker{name: "storage", err: nil}
	checker2 := &mockChecker{name: "redis", err: nil}
	checker3 := &mockChecker{name: "oembed", err: nil}

	require.NoError(t, registry.Register(checker1))
	require.NoError(t, registry.Register(checker2))
	require.NoError(t, registry.Register(checker3))

	ctx := context.Background()
	result := registry.CheckAll(ctx)

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Len(t, result.Checks, 3)

	// Verify all checks are healthy
	assert.Equal(t, HealthStatusHealthy, result.Checks["storage"].Status)
	assert.Equal(t, HealthStatusHealthy, result.Checks["redis"].Status)
	assert.Equal(t, HealthStatusHealthy, result.Checks["oembed"].Status)

	// Verify no error messages
	assert.Empty(t, result.Checks["storage"].Message)
	assert.Empty(t, result.Checks["redis"].Message)
	assert.Empty(t, result.Checks["oembed"].Message)
}

// TestCheckAll_OneUnhealthy verifies that one failing checker makes the overall result unhealthy.
func TestCheckAll_OneUnhealthy(t *testing.T) {
	registry := NewHealthRegistry()
	checker1 := &mockChecker{name: "storage", err: nil}
	checker2 := &mockChecker{name: "redis", err: errors.New("connection timeout")}
	checker3 := &mockChecker{name: "oembed", err: nil}

	require.NoError(t, registry.Register(checker1))
	require.NoError(t, registry.Register(checker2))
	require.NoError(t, registry.Register(checker3))

	ctx := context.Background()
	result := registry.CheckAll(ctx)

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Len(t, result.Checks, 3)

	// Verify individual statuses
	assert.Equal(t, HealthStatusHealthy, result.Checks["storage"].Status)
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["redis"].Status)
	assert.Equal(t, HealthStatusHealthy, result.Checks["oembed"].Status)

	// Verify error message is captured
	assert.Empty(t, result.Checks["storage"].Message)
	assert.Equal(t, "connection timeout", result.Checks["redis"].Message)
	assert.Empty(t, result.Checks["oembed"].Message)
}

// contextAwareChecker implements HealthChecker that respects context cancellation.
type contextAwareChecker struct {
	name string
}

func (c *contextAwareChecker) Name() string {
	return c.name
}

func (c *contextAwareChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// TestCheckAll_ContextCancelled verifies that the health check respects context cancellation.
func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	checker := &contextAwareChecker{name: "slow-service"}

	require.NoError(t, registry.Register(checker))

	// Create a context that's already cancelled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Len(t, result.Checks, 1)
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["slow-service"].Status)
	assert.Contains(t, result.Checks["slow-service"].Message, "context canceled")
}

type blockingChecker struct{}

func (blockingChecker) Name() string { return "stuck" }

func (blockingChecker) Check(ctx context.Context) error {
	<-ctx.Done()

	return ctx.Err()
}

func TestCheckAll_PerCheckTimeout(t *testing.T) {
	registry := NewHealthRegistryWithTimeout(20 * time.Millisecond)
	require.NoError(t, registry.Register(blockingChecker{}))
	require.NoError(t, registry.Register(&mockChecker{name: "storage"}))

	start := time.Now()
	result := registry.CheckAll(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["stuck"].Status)
	assert.Contains(t, result.Checks["stuck"].Message, "deadline exceeded")
	assert.Equal(t, HealthStatusHealthy, result.Checks["storage"].Status)
}
