package diagnostics

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAttempt_AssignsSequentialNumbers(t *testing.T) {
	rec := NewRecorder(0, 0)

	first := rec.StartAttempt("session-purchase")
	second := rec.StartAttempt("certificate-purchase")

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.StartedAt.IsZero())
}

func TestAttemptBufferEvictsOldest(t *testing.T) {
	rec := NewRecorder(3, 0)

	for i := 0; i < 10; i++ {
		rec.StartAttempt(fmt.Sprintf("attempt-%d", i))
	}

	attempts := rec.Attempts()
	require.Len(t, attempts, 3)
	assert.Equal(t, "attempt-7", attempts[0].Context)
	assert.Equal(t, "attempt-9", attempts[2].Context)
	assert.Equal(t, 10, attempts[2].Number)
}

func TestEventBufferEvictsOldest(t *testing.T) {
	rec := NewRecorder(0, 5)
	attempt := rec.StartAttempt("session-purchase")

	for i := 0; i < 12; i++ {
		attempt.Record(fmt.Sprintf("event-%d", i), "")
	}

	events := rec.Events()
	require.Len(t, events, 5)
	assert.Equal(t, "event-7", events[0].Name)
	assert.Equal(t, "event-11", events[4].Name)
}

func TestEnd_OnlyFirstCallCounts(t *testing.T) {
	rec := NewRecorder(0, 0)
	attempt := rec.StartAttempt("session-purchase")

	attempt.End(true, nil)
	firstEnd := rec.Attempts()[0].EndedAt
	attempt.End(false, errors.New("too late"))

	got := rec.Attempts()[0]
	assert.True(t, got.Success)
	assert.Empty(t, got.Error)
	assert.Equal(t, firstEnd, got.EndedAt)
	assert.True(t, attempt.Ended())
}

func TestEnd_RecordsFailureDetail(t *testing.T) {
	rec := NewRecorder(0, 0)
	attempt := rec.StartAttempt("certificate-purchase")

	attempt.End(false, errors.New("amount too low"))

	got := rec.Attempts()[0]
	assert.False(t, got.Success)
	assert.Equal(t, "amount too low", got.Error)
}

func TestSink_ReceivesEndedAttemptsAsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(0, 0).WithSink(&buf)

	rec.StartAttempt("session-purchase").End(true, nil)
	rec.StartAttempt("session-purchase").End(false, errors.New("no seats"))

	scanner := bufio.NewScanner(&buf)
	var lines []Attempt
	for scanner.Scan() {
		var a Attempt
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &a))
		lines = append(lines, a)
	}
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Success)
	assert.Equal(t, "no seats", lines[1].Error)
}

func TestConcurrentAttemptsStayIndependent(t *testing.T) {
	rec := NewRecorder(100, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			attempt := rec.StartAttempt("session-purchase")
			attempt.Record("step", fmt.Sprintf("worker-%d", n))
			attempt.End(n%2 == 0, nil)
		}(i)
	}
	wg.Wait()

	attempts := rec.Attempts()
	require.Len(t, attempts, 20)
	seen := make(map[string]bool)
	for _, a := range attempts {
		assert.False(t, seen[a.ID])
		seen[a.ID] = true
		assert.False(t, a.EndedAt.IsZero())
	}
	assert.Len(t, rec.Events(), 20)
}

func TestRecordOnDetachedAttemptIsNoop(t *testing.T) {
	var attempt Attempt
	attempt.Record("orphan", "")
	attempt.End(true, nil)
	assert.True(t, attempt.Ended())
}
