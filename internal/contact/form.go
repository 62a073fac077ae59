// Package contact holds the state of a visitor's contact form: the unsent
// draft, the status of the latest submission, and the relay of a submitted
// draft to the email provider.
//
// A Form is safe for concurrent use. Submit returns as soon as the draft has
// been handed to the provider; the outcome is applied to the form when the
// provider answers. Nothing is retried or de-duplicated, and an in-flight
// submission cannot be cancelled.
package contact

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Provider relays a template payload to the email service.
type Provider interface {
	Send(ctx context.Context, params map[string]any) error
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, params map[string]any) error

func (f ProviderFunc) Send(ctx context.Context, params map[string]any) error {
	return f(ctx, params)
}

// StatusHook observes every status transition of a form.
type StatusHook func(ctx context.Context, status Status)

// Option customises a Form.
type Option func(*Form)

// WithLogger sets the logger delivery failures are reported to.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Form) {
		f.logger = logger.With().Str("component", "contact_form").Logger()
	}
}

// WithGate replaces the default submit gate.
func WithGate(g *Gate) Option {
	return func(f *Form) { f.gate = g }
}

// OnSent registers a callback run after each successful send.
func OnSent(fn func()) Option {
	return func(f *Form) { f.onSent = fn }
}

// OnStatus registers a hook run after each status transition. Hooks run in
// registration order, outside the form's lock.
func OnStatus(hook StatusHook) Option {
	return func(f *Form) { f.hooks = append(f.hooks, hook) }
}

// Form is one visitor's contact widget.
type Form struct {
	mu     sync.Mutex
	draft  Draft
	status Status

	provider Provider
	gate     *Gate
	logger   zerolog.Logger
	onSent   func()
	hooks    []StatusHook

	inflight sync.WaitGroup
	pending  int
}

// NewForm constructs an empty, idle form that relays through provider.
func NewForm(provider Provider, opts ...Option) (*Form, error) {
	f := &Form{
		provider: provider,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.gate == nil {
		gate, err := NewGate()
		if err != nil {
			return nil, err
		}
		f.gate = gate
	}

	return f, nil
}

// Update replaces one field of the draft.
func (f *Form) Update(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := f.draft.With(field, value)
	if err != nil {
		return err
	}
	f.draft = next
	return nil
}

// Draft returns the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Status returns the status of the latest submission.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submit checks the draft and, when it is complete, moves the form to
// StatusSending and relays the draft in the background. An incomplete draft
// returns an IncompleteError and leaves the form untouched.
//
// The relay is detached from ctx's cancellation; ctx only carries values.
func (f *Form) Submit(ctx context.Context) (*Attempt, error) {
	f.mu.Lock()
	snapshot := f.draft
	if err := f.gate.Check(snapshot); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.status = StatusSending
	f.inflight.Add(1)
	f.pending++
	f.mu.Unlock()

	f.notify(ctx, StatusSending)

	attempt := &Attempt{done: make(chan struct{})}
	relayCtx := context.WithoutCancel(ctx)
	go f.relay(relayCtx, snapshot, attempt)

	return attempt, nil
}

func (f *Form) relay(ctx context.Context, snapshot Draft, attempt *Attempt) {
	defer f.inflight.Done()

	err := f.provider.Send(ctx, snapshot.Params())

	f.mu.Lock()
	f.pending--
	if err != nil {
		f.status = StatusFailed
	} else {
		f.status = StatusSent
		f.draft = Draft{}
	}
	status := f.status
	f.mu.Unlock()

	if err != nil {
		f.logger.Error().Err(err).Str("email", MaskEmail(snapshot.Email)).Msg("contact message delivery failed")
	} else {
		f.logger.Info().Str("email", MaskEmail(snapshot.Email)).Msg("contact message delivered")
	}

	f.notify(ctx, status)
	if err == nil && f.onSent != nil {
		f.onSent()
	}

	attempt.finish(status, err)
}

func (f *Form) notify(ctx context.Context, status Status) {
	for _, hook := range f.hooks {
		hook(ctx, status)
	}
}

// InFlight reports whether any submission is still waiting on the provider.
// It stays true after an earlier, overlapping submission has resolved.
func (f *Form) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending > 0
}

// Wait blocks until every in-flight submission has resolved.
func (f *Form) Wait() {
	f.inflight.Wait()
}

// Attempt is the handle of one submission.
type Attempt struct {
	done   chan struct{}
	status Status
	err    error
}

func (a *Attempt) finish(status Status, err error) {
	a.status = status
	a.err = err
	close(a.done)
}

// Done is closed when the provider has answered.
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Wait blocks until the attempt resolves or ctx ends, and returns the
// resulting status and the provider error, if any.
func (a *Attempt) Wait(ctx context.Context) (Status, error) {
	select {
	case <-a.done:
		return a.status, a.err
	case <-ctx.Done():
		return StatusSending, ctx.Err()
	}
}

// MaskEmail hides most of the local part of an address for logging.
func MaskEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ""
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" {
		return "***"
	}
	local := []rune(parts[0])
	masked := string(local[0]) + "***"
	if len(local) > 2 {
		masked += string(local[len(local)-1])
	}
	return masked + "@" + parts[1]
}
