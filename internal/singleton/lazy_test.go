package singleton

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

type resource struct {
	endpoint string
}

var errSource = errors.New("config source unavailable")

func TestGet_SequentialReturnsSameInstance(t *testing.T) {
	var builds atomic.Int32
	l := New(func() (*resource, error) {
		builds.Add(1)
		return &resource{endpoint: "https://api.example.com"}, nil
	})
	assert.Equal(t, StateUninitialized, l.State())

	first, err := l.Get()
	require.NoError(t, err)
	for range 10 {
		got, err := l.Get()
		require.NoError(t, err)
		assert.Same(t, first, got)
	}

	assert.Equal(t, int32(1), builds.Load())
	assert.True(t, l.Ready())
}

func TestGet_ConcurrentFirstAccessBuildsOnce(t *testing.T) {
	const callers = 64

	var builds atomic.Int32
	release := make(chan struct{})
	l := New(func() (*resource, error) {
		builds.Add(1)
		<-release
		return &resource{endpoint: "https://api.example.com"}, nil
	})

	results := make([]*resource, callers)
	var wg sync.WaitGroup
	var started sync.WaitGroup
	started.Add(callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			r, err := l.Get()
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	started.Wait()
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	require.NotNil(t, results[0])
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i], "caller %d received a different instance", i)
	}
	assert.Equal(t, "https://api.example.com", results[0].endpoint)
}

func TestGet_FailedConstructionCanRetry(t *testing.T) {
	var attempts atomic.Int32
	l := New(func() (*resource, error) {
		if attempts.Add(1) == 1 {
			return nil, errSource
		}
		return &resource{endpoint: "https://api.example.com"}, nil
	}, WithName("network"))

	got, err := l.Get()
	assert.ErrorIs(t, err, types.ErrConstructionFailed)
	assert.ErrorIs(t, err, errSource)
	assert.Contains(t, err.Error(), "network")
	assert.Nil(t, got)
	assert.Equal(t, StateUninitialized, l.State())

	got, err = l.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StateReady, l.State())

	again, err := l.Get()
	require.NoError(t, err)
	assert.Same(t, got, again)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestGet_RepeatedFailuresAreNotCached(t *testing.T) {
	var attempts atomic.Int32
	l := New(func() (*resource, error) {
		attempts.Add(1)
		return nil, errSource
	})

	for range 3 {
		_, err := l.Get()
		assert.ErrorIs(t, err, types.ErrConstructionFailed)
	}
	assert.Equal(t, int32(3), attempts.Load(), "each Get should retry construction")
	assert.False(t, l.Ready())
}

func TestGet_PanicLeavesUninitialized(t *testing.T) {
	var attempts atomic.Int32
	l := New(func() (*resource, error) {
		if attempts.Add(1) == 1 {
			panic("boom")
		}
		return &resource{}, nil
	})

	assert.Panics(t, func() { _, _ = l.Get() })
	assert.Equal(t, StateUninitialized, l.State())

	got, err := l.Get()
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestGet_StateIsConstructingDuringBuild(t *testing.T) {
	var l *Lazy[*resource]
	var during State
	l = New(func() (*resource, error) {
		during = l.State()
		return &resource{}, nil
	})

	_, err := l.Get()
	require.NoError(t, err)
	assert.Equal(t, StateConstructing, during)
	assert.Equal(t, StateReady, l.State())
}

func TestGet_LogsConstruction(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var attempts atomic.Int32
	l := New(func() (*resource, error) {
		if attempts.Add(1) == 1 {
			return nil, errSource
		}
		return &resource{}, nil
	}, WithName("network"), WithLogger(zap.New(core)))

	_, _ = l.Get()
	_, _ = l.Get()

	assert.Equal(t, 2, logs.FilterMessage("constructing shared instance").Len())
	failed := logs.FilterMessage("shared instance construction failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "network", failed[0].ContextMap()["singleton"])
	assert.Equal(t, 1, logs.FilterMessage("shared instance ready").Len())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "constructing", StateConstructing.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "state(7)", State(7).String())
}
