package menulayout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-navigation/pkg/config"
	"github.com/goliatone/go-navigation/pkg/domain"
	"github.com/goliatone/go-navigation/pkg/interfaces/logger"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
	"github.com/goliatone/go-navigation/pkg/interfaces/viewport"
)

var (
	ErrMissingSites    = errors.New("menu: sites service is required")
	ErrMissingViewport = errors.New("menu: viewport is required")
	ErrMissingSource   = errors.New("menu: handler source is required")
)

// SiteProvider is the slice of the sites service the layout logic needs.
type SiteProvider interface {
	Current(ctx context.Context) (*domain.Site, error)
	CurrentLanguage(ctx context.Context) string
	CustomMenuConfig(ctx context.Context, siteKey string) (string, error)
	IsFeatureDisabled(ctx context.Context, siteKey, feature string) (bool, error)
}

// Dependencies groups the collaborators required by the layout service.
type Dependencies struct {
	Sites     SiteProvider
	Viewport  viewport.Viewport
	Source    HandlerSource
	Fallbacks i18n.FallbackResolver
	Config    config.Config
	Logger    logger.Logger
}

// Service decides how many main-menu items fit on screen, where the menu
// bar docks, and which custom entries a site contributes.
type Service struct {
	sites     SiteProvider
	viewport  viewport.Viewport
	source    HandlerSource
	fallbacks i18n.FallbackResolver
	cfg       config.Config
	logger    logger.Logger

	// tabletMode is refreshed by TabPlacement and biases NumItems toward
	// the vertical (height-driven) computation.
	tabletMode atomic.Bool
}

// New builds the menu layout service.
func New(deps Dependencies) (*Service, error) {
	if deps.Sites == nil {
		return nil, ErrMissingSites
	}
	if deps.Viewport == nil {
		return nil, ErrMissingViewport
	}
	if deps.Source == nil {
		return nil, ErrMissingSource
	}
	if deps.Fallbacks == nil {
		deps.Fallbacks = i18n.NewStaticFallbackResolver()
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Config.Menu.FixedItemCount == 0 {
		deps.Config = config.Defaults()
	}
	return &Service{
		sites:     deps.Sites,
		viewport:  deps.Viewport,
		source:    deps.Source,
		fallbacks: deps.Fallbacks,
		cfg:       deps.Config,
		logger:    deps.Logger,
	}, nil
}

// CurrentHandlers takes a one-shot snapshot of the handler source, drops
// entries flagged for the "more" overflow page, and truncates the rest to
// NumItems. The subscription is released before returning.
func (s *Service) CurrentHandlers(ctx context.Context) ([]domain.MenuHandlerData, error) {
	ch, cancel := s.source.Subscribe()
	defer cancel()

	var handlers []domain.MenuHandlerData
	select {
	case snapshot, ok := <-ch:
		if !ok {
			return nil, nil
		}
		handlers = snapshot
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	visible := make([]domain.MenuHandlerData, 0, len(handlers))
	for _, handler := range handlers {
		if handler.OnlyInMore {
			continue
		}
		visible = append(visible, handler)
	}

	if max := s.NumItems(ctx); len(visible) > max {
		visible = visible[:max]
	}
	return visible, nil
}

// IsCurrentHandler reports whether page names one of the handlers that
// CurrentHandlers would return.
func (s *Service) IsCurrentHandler(ctx context.Context, page string) (bool, error) {
	handlers, err := s.CurrentHandlers(ctx)
	if err != nil {
		return false, err
	}
	for _, handler := range handlers {
		if handler.Page == page {
			return true, nil
		}
	}
	return false, nil
}

// NumItems computes how many menu items fit on screen. Sites can pin the
// count by disabling the responsive feature; otherwise the viewport edge
// relevant to the current placement is divided by the minimum item size,
// reserving one slot for the overflow entry.
func (s *Service) NumItems(ctx context.Context) int {
	if s.responsiveDisabled(ctx) {
		return s.cfg.Menu.FixedItemCount
	}

	width, height, ok := s.viewport.Size()
	if !ok {
		return s.cfg.Menu.FixedItemCount
	}

	var count int
	if s.tabletMode.Load() {
		count = height / s.cfg.Menu.MinItemSize
	} else {
		count = width / s.cfg.Menu.MinItemSize
		if count > s.cfg.Menu.MaxHorizontalItems {
			count = s.cfg.Menu.MaxHorizontalItems
		}
	}

	if count <= 1 {
		return 1
	}
	return count - 1
}

// TabPlacement classifies the device layout and returns where the menu bar
// docks. The computed tablet flag is cached for NumItems.
func (s *Service) TabPlacement() domain.TabPlacement {
	width, height, ok := s.viewport.Size()
	if !ok {
		s.tabletMode.Store(false)
		return domain.TabPlacementBottom
	}

	tablet := width >= s.cfg.Menu.TabletMinWidth &&
		(height >= s.cfg.Menu.TabletMinHeight ||
			(s.viewport.KeyboardVisible() && height >= s.cfg.Menu.KeyboardMinHeight))
	s.tabletMode.Store(tablet)

	if tablet {
		return domain.TabPlacementSide
	}
	return domain.TabPlacementBottom
}

// CustomItems parses the site's custom menu configuration string into
// display entries. Malformed lines are dropped without error.
func (s *Service) CustomItems(ctx context.Context, siteKey string) ([]domain.CustomMenuItem, error) {
	raw, err := s.sites.CustomMenuConfig(ctx, siteKey)
	if err != nil {
		return nil, fmt.Errorf("menu: custom config for %s: %w", siteKey, err)
	}
	if raw == "" {
		return nil, nil
	}

	current := s.sites.CurrentLanguage(ctx)
	items := parseCustomItems(raw, resolveOptions{
		current:   current,
		fallbacks: s.fallbackChain(current),
	})
	return items, nil
}

// fallbackChain returns the languages to try after the exact policy steps,
// seeded from the resolver and the configured default.
func (s *Service) fallbackChain(current string) []string {
	var chain []string
	if s.fallbacks != nil {
		for _, lang := range s.fallbacks.Resolve(current) {
			if lang != current {
				chain = append(chain, lang)
			}
		}
	}
	if def := s.cfg.Localization.DefaultLanguage; def != "" && def != current {
		found := false
		for _, lang := range chain {
			if lang == def {
				found = true
				break
			}
		}
		if !found {
			chain = append(chain, def)
		}
	}
	return chain
}

func (s *Service) responsiveDisabled(ctx context.Context) bool {
	site, err := s.sites.Current(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("menu: current site lookup failed", logger.Field{Key: "error", Value: err})
		}
		return false
	}
	disabled, err := s.sites.IsFeatureDisabled(ctx, site.SiteKey, s.cfg.Menu.ResponsiveFeature)
	if err != nil {
		s.logger.Warn("menu: feature check failed",
			logger.Field{Key: "site", Value: site.SiteKey},
			logger.Field{Key: "error", Value: err},
		)
		return false
	}
	return disabled
}
