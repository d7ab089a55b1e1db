// Package navigation assembles the menu layout and link dispatch services
// around a shared site registry, for hosts that want the whole module
// wired in one call.
package navigation

import (
	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-navigation/internal/storage/memory"
	"github.com/goliatone/go-navigation/pkg/commands"
	"github.com/goliatone/go-navigation/pkg/config"
	"github.com/goliatone/go-navigation/pkg/interfaces/logger"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
	"github.com/goliatone/go-navigation/pkg/interfaces/viewport"
	"github.com/goliatone/go-navigation/pkg/links"
	"github.com/goliatone/go-navigation/pkg/menu"
	"github.com/goliatone/go-navigation/pkg/sites"
)

// ModuleOptions configure the navigation module facade. Zero values fall
// back to defaults: in-memory site storage, static handler source, no-op
// viewport, nop logger.
type ModuleOptions struct {
	Config    config.Config
	Sites     store.SiteRepository
	Viewport  viewport.Viewport
	Source    menu.HandlerSource
	Fallbacks i18n.FallbackResolver
	Logger    logger.Logger
}

// Module bundles the assembled services.
type Module struct {
	cfg      config.Config
	sites    *sites.Service
	menu     *menu.Service
	links    *links.Service
	commands *commands.Registry
}

// NewModule assembles the site registry, services, and command catalog.
func NewModule(opts ModuleOptions) (*Module, error) {
	if opts.Sites == nil {
		opts.Sites = memory.NewSiteRepository()
	}
	if opts.Viewport == nil {
		opts.Viewport = &viewport.Nop{}
	}
	if opts.Source == nil {
		opts.Source = menu.NewStaticSource()
	}
	if opts.Logger == nil {
		opts.Logger = &logger.Nop{}
	}
	if opts.Config.Menu.FixedItemCount == 0 {
		opts.Config = config.Defaults()
	}

	siteSvc, err := sites.New(sites.Dependencies{
		Repo:   opts.Sites,
		Config: opts.Config,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	menuSvc, err := menu.New(menu.Dependencies{
		Sites:     siteSvc,
		Viewport:  opts.Viewport,
		Source:    opts.Source,
		Fallbacks: opts.Fallbacks,
		Config:    opts.Config,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	linkSvc, err := links.New(links.Dependencies{
		Sites:  siteSvc,
		Config: opts.Config,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	registry, err := commands.New(commands.Dependencies{
		Sites:  opts.Sites,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Module{
		cfg:      opts.Config,
		sites:    siteSvc,
		menu:     menuSvc,
		links:    linkSvc,
		commands: registry,
	}, nil
}

// Sites returns the site query service.
func (m *Module) Sites() *sites.Service {
	if m == nil {
		return nil
	}
	return m.sites
}

// Menu returns the menu layout service.
func (m *Module) Menu() *menu.Service {
	if m == nil {
		return nil
	}
	return m.menu
}

// Links returns the link dispatch service.
func (m *Module) Links() *links.Service {
	if m == nil {
		return nil
	}
	return m.links
}

// Commands returns the go-command registry for host transports.
func (m *Module) Commands() *commands.Registry {
	if m == nil {
		return nil
	}
	return m.commands
}

// Config returns the effective module configuration.
func (m *Module) Config() config.Config {
	if m == nil {
		return config.Config{}
	}
	return m.cfg
}
