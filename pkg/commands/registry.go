package commands

import (
	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-navigation/internal/commands"
	"github.com/goliatone/go-navigation/pkg/interfaces/logger"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
)

// Re-export request types so consumers need not import internal packages.
type (
	UpsertSite         = internalcommands.UpsertSite
	SetCustomMenuItems = internalcommands.SetCustomMenuItems
	SetFeatureDisabled = internalcommands.SetFeatureDisabled
)

// Registry exposes go-command compatible handlers backed by the site store.
type Registry struct {
	Catalog            *internalcommands.Catalog
	UpsertSite         command.Commander[UpsertSite]
	SetCustomMenuItems command.Commander[SetCustomMenuItems]
	SetFeatureDisabled command.Commander[SetFeatureDisabled]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Sites  store.SiteRepository
	Logger logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	catalog, err := internalcommands.NewCatalog(internalcommands.Dependencies{
		Sites:  deps.Sites,
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:            catalog,
		UpsertSite:         catalog.UpsertSite,
		SetCustomMenuItems: catalog.SetCustomMenuItems,
		SetFeatureDisabled: catalog.SetFeatureDisabled,
	}, nil
}
