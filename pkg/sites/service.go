// Package sites answers the site/session questions the navigation services
// ask: which stored sites can serve a URL, whether a feature is disabled
// for a site, and what the current site and language are.
package sites

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-navigation/pkg/config"
	"github.com/goliatone/go-navigation/pkg/domain"
	"github.com/goliatone/go-navigation/pkg/interfaces/logger"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
)

// ErrMissingRepository is returned when the service is built without storage.
var ErrMissingRepository = errors.New("sites: site repository is required")

// Dependencies groups the collaborators required by the service.
type Dependencies struct {
	Repo   store.SiteRepository
	Config config.Config
	Logger logger.Logger
}

// Service resolves sites, features, and languages from the site registry.
type Service struct {
	repo   store.SiteRepository
	cfg    config.Config
	logger logger.Logger

	mu         sync.RWMutex
	currentKey string
}

// New builds the sites service.
func New(deps Dependencies) (*Service, error) {
	if deps.Repo == nil {
		return nil, ErrMissingRepository
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	return &Service{
		repo:   deps.Repo,
		cfg:    deps.Config,
		logger: deps.Logger,
	}, nil
}

// IDsForURL returns the keys of stored sites whose URL shares the link's
// host, optionally restricted to records belonging to username. Order
// follows record creation.
func (s *Service) IDsForURL(ctx context.Context, rawURL, username string) ([]string, error) {
	host := hostOf(rawURL)
	if host == "" {
		return nil, nil
	}
	candidates, err := s.repo.ListByHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("sites: list by host %s: %w", host, err)
	}
	var keys []string
	for _, site := range candidates {
		if hostOf(site.URL) != host {
			continue
		}
		if username != "" && !strings.EqualFold(site.Username, username) {
			continue
		}
		keys = append(keys, site.SiteKey)
	}
	return keys, nil
}

// IsFeatureDisabled reports whether the named feature is switched off for
// the site. Both the bare feature name and the NoDelegate_ form count.
func (s *Service) IsFeatureDisabled(ctx context.Context, siteKey, feature string) (bool, error) {
	if feature == "" {
		return false, nil
	}
	site, err := s.repo.GetByKey(ctx, siteKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("sites: get %s: %w", siteKey, err)
	}
	if site.DisabledFeatures.Contains(feature) {
		return true, nil
	}
	return site.DisabledFeatures.Contains("NoDelegate_" + feature), nil
}

// SetCurrent records which site the host considers active.
func (s *Service) SetCurrent(siteKey string) {
	s.mu.Lock()
	s.currentKey = siteKey
	s.mu.Unlock()
}

// Current returns the active site record, or store.ErrNotFound when no
// site is active or the record is gone.
func (s *Service) Current(ctx context.Context) (*domain.Site, error) {
	s.mu.RLock()
	key := s.currentKey
	s.mu.RUnlock()
	if key == "" {
		return nil, store.ErrNotFound
	}
	return s.repo.GetByKey(ctx, key)
}

// CurrentLanguage returns the active site's language, falling back to the
// configured default.
func (s *Service) CurrentLanguage(ctx context.Context) string {
	if site, err := s.Current(ctx); err == nil && site.Language != "" {
		return site.Language
	}
	return s.cfg.Localization.DefaultLanguage
}

// CustomMenuConfig returns the raw custom menu configuration string stored
// for the site. Missing site or empty config yields "".
func (s *Service) CustomMenuConfig(ctx context.Context, siteKey string) (string, error) {
	site, err := s.repo.GetByKey(ctx, siteKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("sites: get %s: %w", siteKey, err)
	}
	return site.CustomMenuItems, nil
}

func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.Host == "" {
		// Tolerate scheme-less inputs like "school.example.edu/course".
		if parsed, err = url.Parse("https://" + raw); err != nil {
			return ""
		}
	}
	return strings.ToLower(parsed.Host)
}
