package controller

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// ResolverState is the duplicate-code resolver's state
type ResolverState int

// Resolver states
const (
	ResolverIdle ResolverState = iota
	ResolverChecking
	ResolverFound
	ResolverNotFound
)

// CodeResolver checks on code-field blur whether the entered code already
// exists, so the user can load the existing record instead of creating a
// duplicate. The check is advisory; the server enforces uniqueness.
type CodeResolver struct {
	client     APIClient
	descriptor EntityDescriptor
	log        *zap.Logger

	// token tags each check; responses carrying a superseded token are
	// discarded so a stale lookup can never pop the prompt
	token atomic.Int64

	state atomic.Int64
}

// NewCodeResolver creates a resolver for the entity type
func NewCodeResolver(client APIClient, descriptor EntityDescriptor, log *zap.Logger) *CodeResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &CodeResolver{client: client, descriptor: descriptor, log: log}
}

// Outcome is the result of one blur check
type Outcome struct {
	State ResolverState
	// Match is the existing record when State is ResolverFound
	Match Record
	// Stale marks a response that arrived after a newer check started;
	// callers must ignore it entirely.
	Stale bool
}

// State returns the resolver's current state
func (r *CodeResolver) State() ResolverState {
	return ResolverState(r.state.Load())
}

// Check runs the blur lookup for the trimmed code. An empty code is a
// no-op. An API failure resolves to NotFound so the user is never blocked
// by the advisory check.
func (r *CodeResolver) Check(ctx context.Context, code string) Outcome {
	code = strings.TrimSpace(code)
	if code == "" {
		r.state.Store(int64(ResolverIdle))
		return Outcome{State: ResolverIdle}
	}

	token := r.token.Add(1)
	r.state.Store(int64(ResolverChecking))

	env, err := r.client.GetByCode(ctx, r.descriptor.Name, code)
	if !r.latest(token) {
		return Outcome{State: r.State(), Stale: true}
	}
	if err != nil {
		r.log.Warn("code check failed, treating as not found",
			zap.String("entity", r.descriptor.Name),
			zap.String("code", code),
			zap.Error(err))
		r.state.Store(int64(ResolverNotFound))
		return Outcome{State: ResolverNotFound}
	}

	if env.Result != ResultSuccess {
		r.state.Store(int64(ResolverNotFound))
		return Outcome{State: ResolverNotFound}
	}

	records, err := env.Records()
	if err != nil || len(records) == 0 {
		if err != nil {
			r.log.Warn("code check payload unreadable, treating as not found",
				zap.String("entity", r.descriptor.Name),
				zap.Error(err))
		}
		r.state.Store(int64(ResolverNotFound))
		return Outcome{State: ResolverNotFound}
	}

	if !r.latest(token) {
		return Outcome{State: r.State(), Stale: true}
	}
	r.state.Store(int64(ResolverFound))
	return Outcome{State: ResolverFound, Match: records[0]}
}

// Reset returns the resolver to idle, e.g. when the modal closes
func (r *CodeResolver) Reset() {
	r.token.Add(1)
	r.state.Store(int64(ResolverIdle))
}

func (r *CodeResolver) latest(token int64) bool {
	return r.token.Load() == token
}
