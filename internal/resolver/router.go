package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/pkg/identity"
	"cluster-dashboard-backend/internal/pkg/logger"
	"cluster-dashboard-backend/pkg/utils"
)

// Requirement is the authorization an operation needs before it runs.
type Requirement int

const (
	Public Requirement = iota
	Authenticated
	Writer
	Admin
)

func (r Requirement) String() string {
	switch r {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Writer:
		return "writer"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Requirement(%d)", int(r))
	}
}

func (r Requirement) Check(id *model.Identity) error {
	if r == Public {
		return nil
	}
	if id == nil {
		return utils.NewUnauthenticatedError()
	}

	switch r {
	case Writer:
		if id.Role == model.RoleViewer {
			return utils.NewForbiddenError("Write access required")
		}
	case Admin:
		if id.Role != model.RoleAdmin {
			return utils.NewForbiddenError("Admin access required")
		}
	}
	return nil
}

// Limiter decides whether a client may run a limited operation now.
type Limiter interface {
	Allow(key string) bool
}

type route struct {
	require Requirement
	limiter Limiter
	invoke  func(ctx context.Context, in any) (any, error)
}

type Router struct {
	routes map[string]route
	logger *logger.Logger
}

func NewRouter(logger *logger.Logger) *Router {
	return &Router{routes: make(map[string]route), logger: logger}
}

// Handle registers fn under name. The requirement is checked against the
// identity in ctx before fn runs.
func Handle[In, Out any](r *Router, name string, require Requirement, fn func(ctx context.Context, in In) (Out, error)) {
	if _, dup := r.routes[name]; dup {
		panic("resolver: duplicate operation " + name)
	}

	r.routes[name] = route{
		require: require,
		invoke: func(ctx context.Context, raw any) (any, error) {
			var in In
			if raw != nil {
				typed, ok := raw.(In)
				if !ok {
					return nil, utils.NewValidationError(fmt.Sprintf("unexpected input %T for %s", raw, name))
				}
				in = typed
			}
			return fn(ctx, in)
		},
	}
}

// Limit attaches limiter to the named operations, keyed by the client
// address in ctx. It applies to every transport that dispatches through r.
func (r *Router) Limit(limiter Limiter, names ...string) {
	for _, name := range names {
		rt, ok := r.routes[name]
		if !ok {
			panic("resolver: limit on unknown operation " + name)
		}
		rt.limiter = limiter
		r.routes[name] = rt
	}
}

func (r *Router) Dispatch(ctx context.Context, name string, in any) (any, error) {
	rt, ok := r.routes[name]
	if !ok {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown operation %q", name))
	}

	if rt.limiter != nil && !rt.limiter.Allow(identity.Client(ctx)) {
		err := utils.NewRateLimitedError()
		r.logger.OperationDenied(name, identity.Actor(ctx), err)
		return nil, err
	}

	if err := rt.require.Check(identity.FromContext(ctx)); err != nil {
		r.logger.OperationDenied(name, identity.Actor(ctx), err)
		return nil, err
	}

	out, err := rt.invoke(ctx, in)
	if err != nil {
		// Only unclassified errors are masked; an *APIError already carries a
		// client-safe message.
		var apiErr *utils.APIError
		if !errors.As(err, &apiErr) {
			r.logger.OperationFailed(name, err)
			return nil, utils.NewInternalError(fmt.Sprintf("Failed to execute %s", name))
		}
		return nil, err
	}
	return out, nil
}

// Call dispatches and asserts the result type.
func Call[Out any](ctx context.Context, r *Router, name string, in any) (Out, error) {
	var zero Out
	out, err := r.Dispatch(ctx, name, in)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	typed, ok := out.(Out)
	if !ok {
		return zero, utils.NewInternalError(fmt.Sprintf("unexpected result %T for %s", out, name))
	}
	return typed, nil
}

func (r *Router) Requirement(name string) (Requirement, bool) {
	rt, ok := r.routes[name]
	return rt.require, ok
}

func (r *Router) Operations() []string {
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
