package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
)

// scriptedSender pops one outcome per Send call, keyed by recipient. An
// exhausted or missing script means failure.
type scriptedSender struct {
	mu     sync.Mutex
	script map[string][]bool
	calls  int
}

func (s *scriptedSender) Send(_ context.Context, _, recipient, _ string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	outcomes := s.script[recipient]
	if len(outcomes) == 0 {
		return false, "scripted failure"
	}
	next := outcomes[0]
	s.script[recipient] = outcomes[1:]
	if next {
		return true, "scripted delivery"
	}
	return false, "scripted failure"
}

// countingStore wraps a TableStore and counts writes.
type countingStore struct {
	store.TableStore
	writes int
}

func (c *countingStore) WriteTable(name string, rows any) error {
	c.writes++
	return c.TableStore.WriteTable(name, rows)
}

// failingStore fails every write after the first n.
type failingStore struct {
	store.TableStore
	allow  int
	writes int
}

func (f *failingStore) WriteTable(name string, rows any) error {
	f.writes++
	if f.writes > f.allow {
		return errors.New("disk full")
	}
	return f.TableStore.WriteTable(name, rows)
}

func newTestEngine(t *testing.T, s store.TableStore, sender *scriptedSender) *Engine {
	t.Helper()
	e, err := New(s, sender, Options{Concurrency: 1})
	require.NoError(t, err)
	return e
}

func TestEnqueueStartsPending(t *testing.T) {
	sender := &scriptedSender{script: map[string][]bool{}}
	e := newTestEngine(t, store.NewMemStore(), sender)

	entry, err := e.Enqueue("+254700000000", "SHA registration opens Monday", "Swahili", model.ChannelSMS)
	require.NoError(t, err)

	assert.Equal(t, model.OutboxStatusPending, entry.Status)
	assert.Equal(t, 0, entry.Attempts)
	assert.NotEqual(t, entry.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Len(t, e.Queue(), 1)
}

// A transport that always fails: three drains at maxAttempts=3 leave the
// entry Failed with attempts=3 and nothing delivered.
func TestDrainExhaustsBudget(t *testing.T) {
	sender := &scriptedSender{script: map[string][]bool{}}
	e := newTestEngine(t, store.NewMemStore(), sender)

	_, err := e.Enqueue("+254700000000", "hello", "English", model.ChannelSMS)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		results, err := e.Drain(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Sent)
	}

	queue := e.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, model.OutboxStatusFailed, queue[0].Status)
	assert.Equal(t, 3, queue[0].Attempts)
	assert.Empty(t, e.Log())
}

// Fails twice then succeeds; after the third drain the queue is empty and
// the log has exactly one entry.
func TestDrainEventualSuccess(t *testing.T) {
	sender := &scriptedSender{script: map[string][]bool{
		"+254711111111": {false, false, true},
	}}
	e := newTestEngine(t, store.NewMemStore(), sender)

	_, err := e.Enqueue("+254711111111", "clinic reminder", "Luo", model.ChannelSMS)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := e.Drain(context.Background(), 3)
		require.NoError(t, err)
	}

	assert.Empty(t, e.Queue())
	logged := e.Log()
	require.Len(t, logged, 1)
	assert.Equal(t, "+254711111111", logged[0].Recipient)
	assert.Equal(t, "clinic reminder", logged[0].Message)
	assert.Equal(t, model.LogStatusSent, logged[0].Status)
}

// Mixed outcomes in one pass: one entry fails (Retrying, attempts=1), the
// other succeeds and moves to the log.
func TestDrainMixedPass(t *testing.T) {
	sender := &scriptedSender{script: map[string][]bool{
		"+254700000001": {false},
		"+254700000002": {true},
	}}
	e := newTestEngine(t, store.NewMemStore(), sender)

	_, err := e.Enqueue("+254700000001", "msg A", "English", model.ChannelSMS)
	require.NoError(t, err)
	_, err = e.Enqueue("+254700000002", "msg B", "English", model.ChannelVoice)
	require.NoError(t, err)

	results, err := e.Drain(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Sent)
	assert.True(t, results[1].Sent)

	queue := e.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, "+254700000001", queue[0].Recipient)
	assert.Equal(t, model.OutboxStatusRetrying, queue[0].Status)
	assert.Equal(t, 1, queue[0].Attempts)

	logged := e.Log()
	require.Len(t, logged, 1)
	assert.Equal(t, "+254700000002", logged[0].Recipient)
	assert.Equal(t, model.ChannelVoice, logged[0].Channel)
}

// Once the budget is spent the transport is never invoked again for that
// entry and it stays Failed.
func TestDrainSkipsExhaustedEntries(t *testing.T) {
	sender := &scriptedSender{script: map[string][]bool{}}
	e := newTestEngine(t, store.NewMemStore(), sender)

	_, err := e.Enqueue("+254722222222", "msg", "English", model.ChannelSMS)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := e.Drain(context.Background(), 3)
		require.NoError(t, err)
	}
	callsAfterBudget := sender.calls
	assert.Equal(t, 3, callsAfterBudget)

	results, err := e.Drain(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Sent)
	assert.Equal(t, "max attempts reached", results[0].Info)
	assert.Equal(t, callsAfterBudget, sender.calls)

	queue := e.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, model.OutboxStatusFailed, queue[0].Status)
	assert.Equal(t, 3, queue[0].Attempts)
}

// Draining an empty queue returns an empty result list and stays away from
// the store.
func TestDrainEmptyQueueIsNoop(t *testing.T) {
	counting := &countingStore{TableStore: store.NewMemStore()}
	sender := &scriptedSender{script: map[string][]bool{}}
	e, err := New(counting, sender, Options{})
	require.NoError(t, err)

	results, err := e.Drain(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, counting.writes)
	assert.Empty(t, e.Log())
}

// ResetFailed reopens Failed entries only, and the next drain attempts them
// again.
func TestResetFailed(t *testing.T) {
	sender := &scriptedSender{script: map[string][]bool{
		"+254733333333": {false, false, false, true},
	}}
	e := newTestEngine(t, store.NewMemStore(), sender)

	_, err := e.Enqueue("+254733333333", "msg", "English", model.ChannelSMS)
	require.NoError(t, err)
	_, err = e.Enqueue("+254744444444", "untouched", "English", model.ChannelSMS)
	require.NoError(t, err)

	// Exhaust the first entry; the second keeps failing but stays Retrying
	// after its first two passes, then fails on the third.
	for i := 0; i < 3; i++ {
		_, err := e.Drain(context.Background(), 3)
		require.NoError(t, err)
	}

	count, err := e.ResetFailed()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, entry := range e.Queue() {
		assert.Equal(t, model.OutboxStatusPending, entry.Status)
		assert.Equal(t, 0, entry.Attempts)
	}

	// Next drain delivers the first entry (fourth scripted outcome).
	_, err = e.Drain(context.Background(), 3)
	require.NoError(t, err)
	logged := e.Log()
	require.Len(t, logged, 1)
	assert.Equal(t, "+254733333333", logged[0].Recipient)
}

func TestResetFailedLeavesRetryingAlone(t *testing.T) {
	sender := &scriptedSender{script: map[string][]bool{}}
	e := newTestEngine(t, store.NewMemStore(), sender)

	_, err := e.Enqueue("+254755555555", "msg", "English", model.ChannelSMS)
	require.NoError(t, err)
	_, err = e.Drain(context.Background(), 3)
	require.NoError(t, err)

	count, err := e.ResetFailed()
	require.NoError(t, err)
	assert.Zero(t, count)

	queue := e.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, model.OutboxStatusRetrying, queue[0].Status)
	assert.Equal(t, 1, queue[0].Attempts)
}

// Purge removes Failed entries without logging them.
func TestPurgeFailed(t *testing.T) {
	sender := &scriptedSender{script: map[string][]bool{}}
	e := newTestEngine(t, store.NewMemStore(), sender)

	_, err := e.Enqueue("+254766666666", "one", "English", model.ChannelSMS)
	require.NoError(t, err)
	_, err = e.Enqueue("+254777777777", "two", "English", model.ChannelSMS)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := e.Drain(context.Background(), 3)
		require.NoError(t, err)
	}

	removed, err := e.PurgeFailed()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, e.Queue())
	assert.Empty(t, e.Log())
}

// A storage failure during drain surfaces the error instead of results, so
// callers never treat an unpersisted pass as committed.
func TestDrainStorageErrorWithholdsResults(t *testing.T) {
	mem := store.NewMemStore()
	sender := &scriptedSender{script: map[string][]bool{
		"+254788888888": {true},
	}}
	e := newTestEngine(t, mem, sender)

	_, err := e.Enqueue("+254788888888", "msg", "English", model.ChannelSMS)
	require.NoError(t, err)

	// Swap in a store that rejects the drain's persistence step.
	e.store = &failingStore{TableStore: mem}

	results, err := e.Drain(context.Background(), 3)
	assert.Error(t, err)
	assert.Nil(t, results)
}

// A larger queue with parallel attempts: attempts stay exact and each
// success is logged exactly once.
func TestDrainConcurrentAttemptsKeepExactCounts(t *testing.T) {
	script := map[string][]bool{
		"+254700000010": {true},
		"+254700000011": {false, true},
		"+254700000012": {false, false, true},
		"+254700000013": {false, false, false},
		"+254700000014": {true},
	}
	sender := &scriptedSender{script: script}
	e, err := New(store.NewMemStore(), sender, Options{Concurrency: 3})
	require.NoError(t, err)

	for recipient := range script {
		_, err := e.Enqueue(recipient, "msg "+recipient, "English", model.ChannelSMS)
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		_, err := e.Drain(context.Background(), 3)
		require.NoError(t, err)
	}

	assert.Len(t, e.Log(), 4)

	queue := e.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, "+254700000013", queue[0].Recipient)
	assert.Equal(t, model.OutboxStatusFailed, queue[0].Status)
	assert.Equal(t, 3, queue[0].Attempts)
}

// A sender that ignores its context is cut off by the engine's send timeout
// and reported as a failed attempt.
func TestDrainTimesOutSlowSender(t *testing.T) {
	slow := &slowSender{block: 500 * time.Millisecond}
	e, err := New(store.NewMemStore(), slow, Options{SendTimeout: 10 * time.Millisecond, Concurrency: 1})
	require.NoError(t, err)

	_, err = e.Enqueue("+254799999999", "msg", "English", model.ChannelSMS)
	require.NoError(t, err)

	results, err := e.Drain(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Sent)
	assert.Equal(t, "send timed out", results[0].Info)

	queue := e.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, 1, queue[0].Attempts)
	assert.Equal(t, model.OutboxStatusRetrying, queue[0].Status)
}

type slowSender struct {
	block time.Duration
}

func (s *slowSender) Send(_ context.Context, _, _, _ string) (bool, string) {
	time.Sleep(s.block)
	return true, "too late"
}

// The queue survives a restart: a fresh engine over the same store sees the
// same entries.
func TestEngineReloadsPersistedQueue(t *testing.T) {
	mem := store.NewMemStore()
	sender := &scriptedSender{script: map[string][]bool{}}
	e := newTestEngine(t, mem, sender)

	_, err := e.Enqueue("+254712345678", "persisted", "Luhya", model.ChannelVoice)
	require.NoError(t, err)

	reloaded, err := New(mem, sender, Options{})
	require.NoError(t, err)
	queue := reloaded.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, "+254712345678", queue[0].Recipient)
	assert.Equal(t, model.ChannelVoice, queue[0].Channel)
	assert.Equal(t, model.OutboxStatusPending, queue[0].Status)
}
