package rf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxFeedsDecoder(t *testing.T) {
	m := NewMailbox(2)
	require.NoError(t, m.Post(Record{Red: 4, Green: 5, Blue: 6, PowerOn: true}))

	rec, ok := NewDecoder().Drain(m.Poll())
	require.True(t, ok)
	assert.Equal(t, uint8(5), rec.Green)
	assert.True(t, rec.PowerOn)

	assert.Empty(t, m.Poll())
}

func TestMailboxDropsWhenFull(t *testing.T) {
	m := NewMailbox(1)
	require.NoError(t, m.Post(Record{Red: 1}))
	require.NoError(t, m.Post(Record{Red: 2}))

	rec, ok := NewDecoder().Drain(m.Poll())
	require.True(t, ok)
	assert.Equal(t, uint8(1), rec.Red)
}

func TestMailboxRejectsSentinel(t *testing.T) {
	m := NewMailbox(1)
	assert.ErrorIs(t, m.Post(Record{Blue: End}), ErrSentinelInPayload)
}
