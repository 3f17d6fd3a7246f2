// internal/outbox/engine.go
package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
	"github.com/kisumu-health/sha-connect-backend/internal/transport"
)

const (
	// DefaultMaxAttempts is the retry budget used when a drain does not
	// override it.
	DefaultMaxAttempts = 3

	defaultSendTimeout = 15 * time.Second
	defaultConcurrency = 4
)

// Options tune the engine. Zero values fall back to sensible defaults.
type Options struct {
	QueueTable  string
	LogTable    string
	SendTimeout time.Duration
	Concurrency int
	Now         func() time.Time
}

// Engine owns the pending-message queue and the retry policy. Entries enter
// through Enqueue, are attempted by Drain, and either graduate to the
// delivery log on success or freeze at Failed once the attempt budget is
// spent. The in-memory queue is authoritative; the backing store is
// rewritten wholesale after every mutating operation.
type Engine struct {
	store  store.TableStore
	sender transport.Sender
	opts   Options
	now    func() time.Time

	mu    sync.Mutex
	queue []model.OutboxEntry
	sent  []model.DeliveryLogEntry
}

// DrainResult is the outcome of one entry during a drain pass.
type DrainResult struct {
	EntryID   uuid.UUID `json:"entry_id"`
	Recipient string    `json:"recipient"`
	Sent      bool      `json:"sent"`
	Info      string    `json:"info"`
}

// New loads the queue and delivery log from the store and returns a ready
// engine.
func New(s store.TableStore, sender transport.Sender, opts Options) (*Engine, error) {
	if opts.QueueTable == "" {
		opts.QueueTable = store.TableOutbox
	}
	if opts.LogTable == "" {
		opts.LogTable = store.TableMessages
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultSendTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{store: s, sender: sender, opts: opts, now: opts.Now}
	if err := s.ReadTable(opts.QueueTable, &e.queue); err != nil {
		return nil, err
	}
	if err := s.ReadTable(opts.LogTable, &e.sent); err != nil {
		return nil, err
	}
	return e, nil
}

// Enqueue appends a Pending entry and persists the queue before returning.
// The engine does not validate recipient or message format; that is the
// caller's job.
func (e *Engine) Enqueue(recipient, message, language, channel string) (model.OutboxEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := model.OutboxEntry{
		ID:        uuid.New(),
		Recipient: recipient,
		Message:   message,
		Language:  language,
		Channel:   channel,
		Attempts:  0,
		Status:    model.OutboxStatusPending,
		CreatedAt: e.now(),
	}
	e.queue = append(e.queue, entry)
	if err := e.store.WriteTable(e.opts.QueueTable, e.queue); err != nil {
		return entry, err
	}
	return entry, nil
}

// RecordDelivery appends a successful direct send to the delivery log. Used
// by callers that bypass the queue when the transport is up.
func (e *Engine) RecordDelivery(recipient, message, language, channel string) (model.DeliveryLogEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logged := model.DeliveryLogEntry{
		Recipient: recipient,
		Message:   message,
		Language:  language,
		Channel:   channel,
		SentAt:    e.now(),
		Status:    model.LogStatusSent,
	}
	e.sent = append(e.sent, logged)
	if err := e.store.WriteTable(e.opts.LogTable, e.sent); err != nil {
		return logged, err
	}
	return logged, nil
}

type attemptOutcome struct {
	ok   bool
	info string
}

// Drain runs one delivery pass over every queued entry, in enqueue order.
// Entries that already spent their budget are settled as Failed without
// touching the transport. Everyone else gets exactly one attempt; successes
// move to the delivery log and leave the queue, failures become Retrying or
// Failed depending on the remaining budget. maxAttempts <= 0 means
// DefaultMaxAttempts.
//
// Attempts run with bounded concurrency, but transitions are applied
// sequentially in queue order afterwards, so outcomes match the sequential
// algorithm exactly. On a storage failure the results are withheld and the
// error returned: nothing is considered committed.
func (e *Engine) Drain(ctx context.Context, maxAttempts int) ([]DrainResult, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.queue) == 0 {
		return []DrainResult{}, nil
	}

	outcomes := make([]attemptOutcome, len(e.queue))
	sem := make(chan struct{}, e.opts.Concurrency)
	var wg sync.WaitGroup
	for i := range e.queue {
		if !e.queue[i].CanAttempt(maxAttempts) {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, entry model.OutboxEntry) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = e.attempt(ctx, entry)
		}(i, e.queue[i])
	}
	wg.Wait()

	results := make([]DrainResult, 0, len(e.queue))
	remaining := make([]model.OutboxEntry, 0, len(e.queue))
	for i := range e.queue {
		entry := e.queue[i]
		res := DrainResult{EntryID: entry.ID, Recipient: entry.Recipient}

		if !entry.CanAttempt(maxAttempts) {
			// Hit the ceiling on a previous pass but was never pruned.
			entry.Status = model.OutboxStatusFailed
			res.Info = "max attempts reached"
			remaining = append(remaining, entry)
			results = append(results, res)
			continue
		}

		entry.Attempts++ // an attempt was made, whatever the outcome
		out := outcomes[i]
		res.Info = out.info

		if out.ok {
			e.sent = append(e.sent, model.DeliveryLogEntry{
				Recipient: entry.Recipient,
				Message:   entry.Message,
				Language:  entry.Language,
				Channel:   entry.Channel,
				SentAt:    e.now(),
				Status:    model.LogStatusSent,
			})
			res.Sent = true
			results = append(results, res)
			continue // delivered entries leave the queue
		}

		if entry.CanAttempt(maxAttempts) {
			entry.Status = model.OutboxStatusRetrying
		} else {
			entry.Status = model.OutboxStatusFailed
		}
		remaining = append(remaining, entry)
		results = append(results, res)
	}
	e.queue = remaining

	if err := e.store.WriteTable(e.opts.QueueTable, e.queue); err != nil {
		return nil, err
	}
	if err := e.store.WriteTable(e.opts.LogTable, e.sent); err != nil {
		return nil, err
	}
	return results, nil
}

// attempt invokes the transport with the configured timeout. A transport
// that outlives the deadline is reported as an ordinary failed attempt.
func (e *Engine) attempt(ctx context.Context, entry model.OutboxEntry) attemptOutcome {
	sendCtx, cancel := context.WithTimeout(ctx, e.opts.SendTimeout)
	defer cancel()

	done := make(chan attemptOutcome, 1)
	go func() {
		ok, info := e.sender.Send(sendCtx, entry.Channel, entry.Recipient, entry.Message)
		done <- attemptOutcome{ok: ok, info: info}
	}()

	select {
	case out := <-done:
		return out
	case <-sendCtx.Done():
		return attemptOutcome{ok: false, info: "send timed out"}
	}
}

// ResetFailed reopens every Failed entry: status back to Pending, attempts
// back to zero. Returns the number of entries reset.
func (e *Engine) ResetFailed() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for i := range e.queue {
		if e.queue[i].Status == model.OutboxStatusFailed {
			e.queue[i].Status = model.OutboxStatusPending
			e.queue[i].Attempts = 0
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	if err := e.store.WriteTable(e.opts.QueueTable, e.queue); err != nil {
		return 0, err
	}
	return count, nil
}

// PurgeFailed removes every Failed entry from the queue. Purged entries are
// discarded, not delivered, so the log is untouched. Returns the number
// removed.
func (e *Engine) PurgeFailed() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	remaining := make([]model.OutboxEntry, 0, len(e.queue))
	for _, entry := range e.queue {
		if entry.Status != model.OutboxStatusFailed {
			remaining = append(remaining, entry)
		}
	}
	removed := len(e.queue) - len(remaining)
	if removed == 0 {
		return 0, nil
	}
	e.queue = remaining
	if err := e.store.WriteTable(e.opts.QueueTable, e.queue); err != nil {
		return 0, err
	}
	return removed, nil
}

// Queue returns a snapshot of the pending queue in enqueue order.
func (e *Engine) Queue() []model.OutboxEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.OutboxEntry, len(e.queue))
	copy(out, e.queue)
	return out
}

// Log returns a snapshot of the delivery log, oldest first.
func (e *Engine) Log() []model.DeliveryLogEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.DeliveryLogEntry, len(e.sent))
	copy(out, e.sent)
	return out
}
