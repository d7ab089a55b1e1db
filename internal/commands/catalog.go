package commands

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-navigation/pkg/domain"
	"github.com/goliatone/go-navigation/pkg/interfaces/logger"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
)

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	UpsertSite         command.Commander[UpsertSite]
	SetCustomMenuItems command.Commander[SetCustomMenuItems]
	SetFeatureDisabled command.Commander[SetFeatureDisabled]
}

// Dependencies wires the site repository into the command catalog.
type Dependencies struct {
	Sites  store.SiteRepository
	Logger logger.Logger
}

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Sites == nil {
		return nil, errors.New("commands: site repository is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	return &Catalog{
		UpsertSite:         siteUpsertCommand{repo: deps.Sites},
		SetCustomMenuItems: customMenuCommand{repo: deps.Sites},
		SetFeatureDisabled: featureToggleCommand{repo: deps.Sites},
	}, nil
}

// UpsertSite creates or updates a site registry record.
type UpsertSite struct {
	SiteKey          string         `json:"site_key"`
	Name             string         `json:"name"`
	URL              string         `json:"url"`
	Username         string         `json:"username"`
	Language         string         `json:"language"`
	DisabledFeatures []string       `json:"disabled_features"`
	Metadata         map[string]any `json:"metadata"`
	AllowUpdate      bool           `json:"allow_update"`
}

type siteUpsertCommand struct {
	repo store.SiteRepository
}

func (c siteUpsertCommand) Execute(ctx context.Context, msg UpsertSite) error {
	msg.SiteKey = strings.TrimSpace(msg.SiteKey)
	if msg.SiteKey == "" {
		return errors.New("commands: site key is required")
	}
	if strings.TrimSpace(msg.URL) == "" {
		return errors.New("commands: site url is required")
	}

	if existing, err := c.repo.GetByKey(ctx, msg.SiteKey); err == nil {
		if !msg.AllowUpdate {
			return errors.New("commands: site already exists")
		}
		existing.Name = msg.Name
		existing.URL = msg.URL
		existing.Username = msg.Username
		existing.Language = msg.Language
		existing.DisabledFeatures = domain.StringList(msg.DisabledFeatures)
		existing.Metadata = domain.JSONMap(msg.Metadata)
		return c.repo.Update(ctx, existing)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return c.repo.Create(ctx, &domain.Site{
		SiteKey:          msg.SiteKey,
		Name:             msg.Name,
		URL:              msg.URL,
		Username:         msg.Username,
		Language:         msg.Language,
		DisabledFeatures: domain.StringList(msg.DisabledFeatures),
		Metadata:         domain.JSONMap(msg.Metadata),
	})
}

// SetCustomMenuItems stores a site's raw custom menu configuration string.
type SetCustomMenuItems struct {
	SiteKey string `json:"site_key"`
	Config  string `json:"config"`
}

type customMenuCommand struct {
	repo store.SiteRepository
}

func (c customMenuCommand) Execute(ctx context.Context, msg SetCustomMenuItems) error {
	if strings.TrimSpace(msg.SiteKey) == "" {
		return errors.New("commands: site key is required")
	}
	site, err := c.repo.GetByKey(ctx, msg.SiteKey)
	if err != nil {
		return err
	}
	site.CustomMenuItems = msg.Config
	return c.repo.Update(ctx, site)
}

// SetFeatureDisabled toggles a feature flag on a site record.
type SetFeatureDisabled struct {
	SiteKey  string `json:"site_key"`
	Feature  string `json:"feature"`
	Disabled bool   `json:"disabled"`
}

type featureToggleCommand struct {
	repo store.SiteRepository
}

func (c featureToggleCommand) Execute(ctx context.Context, msg SetFeatureDisabled) error {
	if strings.TrimSpace(msg.SiteKey) == "" {
		return errors.New("commands: site key is required")
	}
	if strings.TrimSpace(msg.Feature) == "" {
		return errors.New("commands: feature name is required")
	}
	site, err := c.repo.GetByKey(ctx, msg.SiteKey)
	if err != nil {
		return err
	}

	features := site.DisabledFeatures
	if msg.Disabled {
		if !features.Contains(msg.Feature) {
			features = append(features, msg.Feature)
		}
	} else {
		pruned := features[:0]
		for _, entry := range features {
			if entry != msg.Feature {
				pruned = append(pruned, entry)
			}
		}
		features = pruned
	}
	site.DisabledFeatures = features
	return c.repo.Update(ctx, site)
}
