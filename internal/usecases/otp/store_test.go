package otp

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("user@example.com")
	assert.False(t, ok)

	entry := Entry{
		Address:   "user@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute),
		CreatedAt: time.Now(),
	}
	store.Put(entry)

	got, ok := store.Get("user@example.com")
	require.True(t, ok)
	assert.Equal(t, entry, got)

	store.Delete("user@example.com")
	_, ok = store.Get("user@example.com")
	assert.False(t, ok)
}

func TestMemoryStore_PutReplacesExisting(t *testing.T) {
	store := NewMemoryStore()
	store.Put(Entry{Address: "user@example.com", Code: "111111", Attempts: 2})
	store.Put(Entry{Address: "user@example.com", Code: "222222"})

	got, ok := store.Get("user@example.com")
	require.True(t, ok)
	assert.Equal(t, "222222", got.Code)
	assert.Equal(t, 0, got.Attempts)
}

func TestMemoryStore_IncrementAttempts(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.IncrementAttempts("user@example.com")
	assert.False(t, ok)

	store.Put(Entry{Address: "user@example.com", Code: "123456"})
	for want := 1; want <= 3; want++ {
		attempts, ok := store.IncrementAttempts("user@example.com")
		require.True(t, ok)
		assert.Equal(t, want, attempts)
	}
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	store.Delete("user@example.com")
	store.Delete("user@example.com")
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			address := fmt.Sprintf("user%d@example.com", i%5)
			store.Put(Entry{Address: address, Code: "123456"})
			store.Get(address)
			store.IncrementAttempts(address)
			if i%2 == 0 {
				store.Delete(address)
			}
		}(i)
	}
	wg.Wait()
}
