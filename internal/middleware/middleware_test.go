package middleware

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riotcli/internal/constants"
)

func TestSessionAndLookup(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	ctx := Session(context.Background(), logger)
	sessionID := GetSessionID(ctx)
	require.NotEmpty(t, sessionID)

	var seenLookup string
	var hasDeadline bool
	flow := Lookup("player", func(ctx context.Context) error {
		seenLookup = GetLookupID(ctx)
		_, hasDeadline = ctx.Deadline()
		assert.Equal(t, sessionID, GetSessionID(ctx))
		zerolog.Ctx(ctx).Info().Msg("inside")
		return nil
	})

	require.NoError(t, flow(ctx))
	assert.Len(t, seenLookup, lookupIDLength)
	assert.False(t, hasDeadline, "the flow itself is not bounded")

	logs := buf.String()
	assert.Contains(t, logs, `"session_id":"`+sessionID+`"`)
	assert.Contains(t, logs, `"lookup_id":"`+seenLookup+`"`)
	assert.Contains(t, logs, `"message":"inside"`)
	assert.Contains(t, logs, `"message":"lookup completed"`)
}

func TestLookup_ReturnsFlowError(t *testing.T) {
	boom := errors.New("boom")
	err := Lookup("champion", func(context.Context) error { return boom })(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDeadline(t *testing.T) {
	ctx := context.WithValue(context.Background(), LookupIDKey, "abc")
	bounded, cancel := Deadline(ctx, 0)
	defer cancel()

	deadline, ok := bounded.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(constants.LookupTimeout), deadline, time.Second)
	assert.Equal(t, "abc", GetLookupID(bounded))

	_, ok = ctx.Deadline()
	assert.False(t, ok)

	short, cancelShort := Deadline(ctx, time.Millisecond)
	defer cancelShort()
	<-short.Done()
	assert.ErrorIs(t, short.Err(), context.DeadlineExceeded)
}

func TestGetIDs_Empty(t *testing.T) {
	assert.Empty(t, GetSessionID(context.Background()))
	assert.Empty(t, GetLookupID(context.Background()))
}
