package menu

import (
	"context"
	"errors"

	"github.com/goliatone/go-navigation/internal/menulayout"
	"github.com/goliatone/go-navigation/pkg/domain"
)

// Re-export layout types for callers.
type (
	Dependencies  = menulayout.Dependencies
	HandlerSource = menulayout.HandlerSource
	StaticSource  = menulayout.StaticSource
	SiteProvider  = menulayout.SiteProvider
)

// NewStaticSource seeds an in-memory handler source.
func NewStaticSource(handlers ...domain.MenuHandlerData) *StaticSource {
	return menulayout.NewStaticSource(handlers...)
}

// Service exposes the main-menu layout logic.
type Service struct {
	internal *menulayout.Service
}

// New constructs the public facade.
func New(deps Dependencies) (*Service, error) {
	internalSvc, err := menulayout.New(deps)
	if err != nil {
		return nil, err
	}
	return &Service{internal: internalSvc}, nil
}

// CurrentHandlers snapshots the visible main-menu handlers, truncated to
// what fits on screen.
func (s *Service) CurrentHandlers(ctx context.Context) ([]domain.MenuHandlerData, error) {
	if s == nil || s.internal == nil {
		return nil, errServiceNotInitialised
	}
	return s.internal.CurrentHandlers(ctx)
}

// IsCurrentHandler reports whether page is among the visible handlers.
func (s *Service) IsCurrentHandler(ctx context.Context, page string) (bool, error) {
	if s == nil || s.internal == nil {
		return false, errServiceNotInitialised
	}
	return s.internal.IsCurrentHandler(ctx, page)
}

// NumItems computes how many menu entries fit on screen.
func (s *Service) NumItems(ctx context.Context) int {
	if s == nil || s.internal == nil {
		return 0
	}
	return s.internal.NumItems(ctx)
}

// TabPlacement reports where the menu bar docks for the current viewport.
func (s *Service) TabPlacement() domain.TabPlacement {
	if s == nil || s.internal == nil {
		return domain.TabPlacementBottom
	}
	return s.internal.TabPlacement()
}

// CustomItems parses the site's custom menu configuration into entries.
func (s *Service) CustomItems(ctx context.Context, siteKey string) ([]domain.CustomMenuItem, error) {
	if s == nil || s.internal == nil {
		return nil, errServiceNotInitialised
	}
	return s.internal.CustomItems(ctx, siteKey)
}

var errServiceNotInitialised = errors.New("menu: service not initialised")
