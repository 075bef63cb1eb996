package saver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/htmlsaver/pkg/logger"
	"github.com/dmitrymomot/htmlsaver/pkg/saver"
)

// registryPage is only used here so the process-wide registry entry does not
// collide with other tests.
type registryPage struct{ page }

func TestRegistry(t *testing.T) {
	_, ok := saver.Global[registryPage]()
	assert.False(t, ok)

	store := newMemStorage()
	h := saver.MustNew[registryPage](store,
		saver.WithFlushInterval(10*time.Millisecond),
		saver.WithLogger(logger.Discard()),
	)
	defer shutdown(t, h)

	require.NoError(t, saver.Init(h))

	s, ok := saver.Global[registryPage]()
	require.True(t, ok)
	require.NoError(t, s.Save(registryPage{page{name: "global.html"}}))
	assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 5*time.Millisecond)

	other := saver.MustNew[registryPage](newMemStorage(), saver.WithLogger(logger.Discard()))
	defer shutdown(t, other)

	assert.ErrorIs(t, saver.Init(other), saver.ErrAlreadyInitialized)
	assert.Panics(t, func() { saver.MustInit(other) })

	assert.ErrorIs(t, saver.Init[registryPage](nil), saver.ErrInvalidConfig)
}
