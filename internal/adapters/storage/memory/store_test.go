package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

func TestStore_InsertListDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return now })

	first, err := s.Insert(ctx, domain.Dedication{Message: "first"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.True(t, first.Timestamp.Equal(now))

	second, err := s.Insert(ctx, domain.Dedication{Message: "second"})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	require.NoError(t, s.DeleteAt(ctx, 0))

	list, _ = s.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	err = s.DeleteAt(ctx, 1)
	assert.True(t, domain.IsNotFound(err))

	err = s.DeleteByID(ctx, "nope")
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, s.DeleteByID(ctx, first.ID))

	list, _ = s.List(ctx)
	assert.Empty(t, list)
}

func TestStore_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Insert(ctx, domain.Dedication{Message: "hi"})
	require.NoError(t, err)

	list, _ := s.List(ctx)
	list[0].Message = "changed"

	again, _ := s.List(ctx)
	assert.Equal(t, "hi", again[0].Message)
}

func TestStore_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _ = s.Insert(ctx, domain.Dedication{Message: "x"})
		}()
	}

	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}
