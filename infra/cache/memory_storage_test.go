package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	t.Parallel()
	s := NewMemoryStorage(10 * time.Millisecond)
	t.Cleanup(func() { _ = s.Close() })

	v, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("k", []byte("v"), 0))
	v, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, s.Delete("k"))
	v, _ = s.Get("k")
	assert.Nil(t, v)

	require.NoError(t, s.Set("a", []byte("1"), time.Hour))
	require.NoError(t, s.Set("b", []byte("2"), time.Hour))
	require.NoError(t, s.Reset())
	v, _ = s.Get("a")
	assert.Nil(t, v)
}

func TestMemoryStorage_Expiry(t *testing.T) {
	t.Parallel()
	s := NewMemoryStorage(5 * time.Millisecond)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set("k", []byte("v"), 20*time.Millisecond))
	v, _ := s.Get("k")
	assert.NotNil(t, v)

	assert.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		_, ok := s.entries["k"]
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStorage_CopiesValue(t *testing.T) {
	t.Parallel()
	s := NewMemoryStorage(time.Minute)
	t.Cleanup(func() { _ = s.Close() })

	buf := []byte("abc")
	require.NoError(t, s.Set("k", buf, 0))
	buf[0] = 'x'
	v, _ := s.Get("k")
	assert.Equal(t, []byte("abc"), v)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
