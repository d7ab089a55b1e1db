package links

import (
	"context"
	"errors"

	"github.com/goliatone/go-navigation/internal/linkdispatch"
	"github.com/goliatone/go-navigation/pkg/domain"
)

// Re-export dispatch types for callers.
type (
	Dependencies  = linkdispatch.Dependencies
	Handler       = linkdispatch.Handler
	ActionOptions = linkdispatch.ActionOptions
	SiteSource    = linkdispatch.SiteSource
	Action        = domain.LinkAction
)

// Service exposes the link dispatch registry.
type Service struct {
	internal *linkdispatch.Service
}

// New constructs the public facade.
func New(deps Dependencies) (*Service, error) {
	internalSvc, err := linkdispatch.New(deps)
	if err != nil {
		return nil, err
	}
	return &Service{internal: internalSvc}, nil
}

// Register adds a named handler; duplicates are rejected with false.
func (s *Service) Register(handler Handler) bool {
	if s == nil || s.internal == nil {
		return false
	}
	return s.internal.Register(handler)
}

// ActionsFor aggregates handler actions for a clicked URL, highest
// priority first.
func (s *Service) ActionsFor(ctx context.Context, url string, opts ActionOptions) ([]Action, error) {
	if s == nil || s.internal == nil {
		return nil, errServiceNotInitialised
	}
	return s.internal.ActionsFor(ctx, url, opts)
}

// SiteURLFor returns the first registered handler's site URL for the link.
func (s *Service) SiteURLFor(url string) string {
	if s == nil || s.internal == nil {
		return ""
	}
	return s.internal.SiteURLFor(url)
}

var errServiceNotInitialised = errors.New("links: service not initialised")
