package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAndConsume_SingleUse(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "owner@shop.example", "482913", 10*time.Minute))

	ok, err := s.VerifyAndConsume(ctx, "owner@shop.example", "482913")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.VerifyAndConsume(ctx, "owner@shop.example", "482913")
	require.NoError(t, err)
	assert.False(t, ok, "a consumed code must not verify twice")
}

func TestVerifyAndConsume_NoCode(t *testing.T) {
	s := NewCodeStore()
	ok, err := s.VerifyAndConsume(context.Background(), "nobody@shop.example", "000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyAndConsume_WrongGuessRetained(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "owner@shop.example", "482913", 10*time.Minute))

	ok, err := s.VerifyAndConsume(ctx, "owner@shop.example", "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	// The stored code survives a wrong guess within TTL.
	ok, err = s.VerifyAndConsume(ctx, "owner@shop.example", "482913")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyAndConsume_ExpiredDeleted(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "owner@shop.example", "482913", 10*time.Minute))
	s.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	ok, err := s.VerifyAndConsume(ctx, "owner@shop.example", "482913")
	require.NoError(t, err)
	assert.False(t, ok, "correct code after expiry must not verify")

	s.mu.Lock()
	_, present := s.codes["owner@shop.example"]
	s.mu.Unlock()
	assert.False(t, present, "expired entry must be removed on verify")

	// A subsequent store for the same email is unaffected by the stale state.
	require.NoError(t, s.Put(ctx, "owner@shop.example", "777777", 10*time.Minute))
	ok, err = s.VerifyAndConsume(ctx, "owner@shop.example", "777777")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPut_ReplacesExistingCode(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "owner@shop.example", "111111", 10*time.Minute))
	require.NoError(t, s.Put(ctx, "owner@shop.example", "222222", 10*time.Minute))

	ok, err := s.VerifyAndConsume(ctx, "owner@shop.example", "111111")
	require.NoError(t, err)
	assert.False(t, ok, "replaced code must be dead")

	ok, err = s.VerifyAndConsume(ctx, "owner@shop.example", "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSweepExpired(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "stale@shop.example", "111111", time.Minute))
	require.NoError(t, s.Put(ctx, "fresh@shop.example", "222222", time.Hour))

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	s.SweepExpired()

	s.mu.Lock()
	_, stale := s.codes["stale@shop.example"]
	_, fresh := s.codes["fresh@shop.example"]
	s.mu.Unlock()
	assert.False(t, stale)
	assert.True(t, fresh)
}

func TestVerifyAndConsume_ConcurrentSingleRedeem(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "owner@shop.example", "482913", 10*time.Minute))

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.VerifyAndConsume(ctx, "owner@shop.example", "482913")
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	redeemed := 0
	for ok := range results {
		if ok {
			redeemed++
		}
	}
	assert.Equal(t, 1, redeemed, "exactly one concurrent redeem may succeed")
}
