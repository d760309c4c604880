package sufexwork

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsEveryTask(t *testing.T) {
	p := New(4)
	defer p.Close()

	var counter int64
	handles := make([]*Handle, 50)
	for i := range handles {
		handles[i] = p.Submit(func() error {
			atomic.AddInt64(&counter, 1)
			return nil
		})
	}
	require.NoError(t, WaitAll(handles))
	assert.EqualValues(t, 50, counter)
}

func TestWaitAllReturnsFirstError(t *testing.T) {
	p := New(2)
	defer p.Close()

	boom := errors.New("boom")
	h1 := p.Submit(func() error { return nil })
	h2 := p.Submit(func() error { return boom })
	h3 := p.Submit(func() error { return nil })

	err := WaitAll([]*Handle{h1, h2, h3})
	assert.ErrorIs(t, err, boom)
}

func TestCloseIsIdempotent(t *testing.T) {
	p := New(1)
	p.Close()
	assert.NotPanics(t, func() { p.Close() })
}

func TestThreadsDefaultsWhenNonPositive(t *testing.T) {
	p := New(0)
	defer p.Close()
	assert.Equal(t, 4, p.Threads())
}
