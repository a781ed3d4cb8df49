// Package arbiter decides which report a respondent sees: the remote
// analysis if it arrives within the deadline, the local synthesis otherwise.
package arbiter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abhisek/mindscope/internal/assessment"
	"github.com/abhisek/mindscope/internal/llm"
)

// DefaultTimeout is how long the remote analysis may take before the
// local report is used instead.
const DefaultTimeout = 2 * time.Second

// Resolution records how a Verdict was reached.
type Resolution string

const (
	ResolvedRemote       Resolution = "remote"
	ResolvedLocalTimeout Resolution = "local-timeout"
	ResolvedLocalError   Resolution = "local-error"
)

var (
	// ErrTimeout is the Verdict cause when the deadline fired first.
	ErrTimeout = errors.New("remote analysis did not finish before the deadline")

	// ErrNoRemote is the Verdict cause when no analyzer is configured.
	ErrNoRemote = errors.New("no remote analyzer configured")
)

// Analyzer produces a report remotely. It may fail or be slow.
type Analyzer interface {
	Analyze(ctx context.Context, topic string, responses []assessment.Response) (*assessment.Result, error)
}

// Synthesizer produces a report locally and never fails.
type Synthesizer interface {
	Synthesize(topic string, responses []assessment.Response) assessment.Result
}

// Verdict is the settled outcome of one Resolve call.
type Verdict struct {
	Result     assessment.Result
	Resolution Resolution
	Elapsed    time.Duration
	// Err is why the local report was used; nil for ResolvedRemote.
	Err error
}

// Arbiter races an Analyzer against a fixed deadline with a Synthesizer
// as the fallback.
type Arbiter struct {
	remote  Analyzer
	local   Synthesizer
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures an Arbiter.
type Option func(*Arbiter)

// WithTimeout sets the deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(a *Arbiter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the logger used for resolution records.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arbiter) { a.logger = l }
}

// New creates an Arbiter. remote may be nil, in which case every call
// resolves locally at once. A nil local uses a default Synthesizer.
func New(remote Analyzer, local Synthesizer, opts ...Option) *Arbiter {
	if local == nil {
		local = assessment.NewSynthesizer(nil)
	}
	a := &Arbiter{
		remote:  remote,
		local:   local,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Timeout returns the configured deadline.
func (a *Arbiter) Timeout() time.Duration {
	return a.timeout
}

// Result returns the report for topic. It always succeeds.
func (a *Arbiter) Result(ctx context.Context, topic string, responses []assessment.Response) assessment.Result {
	return a.Resolve(ctx, topic, responses).Result
}

// Resolve runs the remote analysis and the deadline concurrently and
// settles exactly once:
//   - remote succeeds first: its report, unchanged
//   - deadline fires first: a local report
//   - remote fails first, or ctx ends: a local report, immediately
//
// The losing remote call is left to finish on its own and its outcome is
// dropped. It is not tied to ctx, so only its own request timeout ends it.
func (a *Arbiter) Resolve(ctx context.Context, topic string, responses []assessment.Response) Verdict {
	start := time.Now()

	var v Verdict
	if a.remote == nil {
		v = a.fallback(topic, responses, ResolvedLocalError, ErrNoRemote)
	} else {
		v = a.race(ctx, topic, responses)
	}
	v.Elapsed = time.Since(start)

	attrs := []any{
		"session", llm.SessionFrom(ctx),
		"topic", topic,
		"resolution", v.Resolution,
		"elapsed", v.Elapsed,
	}
	if v.Err != nil {
		attrs = append(attrs, "cause", v.Err)
	}
	a.logger.InfoContext(ctx, "assessment resolved", attrs...)

	return v
}

const remoteTask = 0

func (a *Arbiter) race(ctx context.Context, topic string, responses []assessment.Response) Verdict {
	detached := context.WithoutCancel(ctx)

	s := Race(ctx,
		func(context.Context) (*assessment.Result, error) {
			return a.remote.Analyze(detached, topic, responses)
		},
		After(a.timeout, func() *assessment.Result {
			r := a.local.Synthesize(topic, responses)
			return &r
		}),
	)

	switch {
	case s.Index == remoteTask && s.Err == nil && s.Value != nil:
		return Verdict{Result: *s.Value, Resolution: ResolvedRemote}
	case s.Index == remoteTask && s.Err == nil:
		return a.fallback(topic, responses, ResolvedLocalError, errors.New("remote analysis returned no result"))
	case s.Index == remoteTask:
		return a.fallback(topic, responses, ResolvedLocalError, s.Err)
	case s.Err == nil:
		return Verdict{Result: *s.Value, Resolution: ResolvedLocalTimeout, Err: ErrTimeout}
	default:
		// Only a finished ctx ends the race without a task settling normally.
		return a.fallback(topic, responses, ResolvedLocalError, s.Err)
	}
}

func (a *Arbiter) fallback(topic string, responses []assessment.Response, res Resolution, cause error) Verdict {
	return Verdict{
		Result:     a.local.Synthesize(topic, responses),
		Resolution: res,
		Err:        cause,
	}
}
