package mockstore

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateStoresOnce(t *testing.T) {
	s := New()

	v, hit, err := s.GetOrCreate("/a", func() ([]byte, error) { return []byte(`{"n":1}`), nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, `{"n":1}`, string(v))

	v, hit, err = s.GetOrCreate("/a", func() ([]byte, error) { return []byte(`{"n":2}`), nil })
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"n":1}`, string(v))

	got, ok := s.Get("/a")
	assert.True(t, ok)
	assert.Equal(t, `{"n":1}`, string(got))
	assert.Equal(t, 1, s.Len())
}

func TestGetOrCreateErrorStoresNothing(t *testing.T) {
	s := New()

	_, _, err := s.GetOrCreate("/a", func() ([]byte, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())

	v, hit, err := s.GetOrCreate("/a", func() ([]byte, error) { return []byte(`1`), nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, `1`, string(v))
}

func TestGetOrCreateConcurrentFirstRequests(t *testing.T) {
	s := New()
	var calls atomic.Int32

	const workers = 64
	results := make([][]byte, workers)
	start := make(chan struct{})
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			v, _, err := s.GetOrCreate("/same", func() ([]byte, error) {
				n := calls.Add(1)
				return []byte(fmt.Sprintf(`{"call":%d}`, n)), nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	close(start)
	wg.Wait()

	stored, ok := s.Get("/same")
	require.True(t, ok)
	for _, r := range results {
		assert.Equal(t, string(stored), string(r))
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := New()
	a, _, _ := s.GetOrCreate("/widgets/abc", func() ([]byte, error) { return []byte(`"a"`), nil })
	b, _, _ := s.GetOrCreate("/widgets/xyz", func() ([]byte, error) { return []byte(`"b"`), nil })
	assert.Equal(t, `"a"`, string(a))
	assert.Equal(t, `"b"`, string(b))
	assert.Equal(t, 2, s.Len())
}
