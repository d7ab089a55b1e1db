package linkdispatch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"github.com/goliatone/go-navigation/pkg/config"
	"github.com/goliatone/go-navigation/pkg/domain"
	"github.com/goliatone/go-navigation/pkg/interfaces/logger"
	"golang.org/x/sync/errgroup"
)

var ErrMissingSites = errors.New("links: sites service is required")

// Handler is implemented by feature modules that can act on external URLs.
// Handlers register once at startup; Name must be unique.
type Handler interface {
	Name() string
	// Priority ranks this handler's actions in the aggregated result.
	Priority() int
	// CheckAllUsers makes enablement run per candidate site instead of
	// once for the first one.
	CheckAllUsers() bool
	// FeatureName names the per-site feature gating this handler, or "".
	FeatureName() string
	// Handles reports whether the handler recognizes the URL at all.
	Handles(url string) bool
	// SiteURL returns the site URL the link belongs to, or "" when the
	// handler cannot tell.
	SiteURL(url string) string
	// IsEnabled refines enablement for one site once the feature gate has
	// passed.
	IsEnabled(ctx context.Context, siteKey, url string, params map[string]string, courseID int) (bool, error)
	// Actions proposes what the host can do with the URL on the enabled
	// sites.
	Actions(ctx context.Context, siteKeys []string, url string, params map[string]string, courseID int, data domain.JSONMap) ([]domain.LinkAction, error)
}

// SiteSource is the slice of the sites service that dispatch needs.
type SiteSource interface {
	IDsForURL(ctx context.Context, rawURL, username string) ([]string, error)
	IsFeatureDisabled(ctx context.Context, siteKey, feature string) (bool, error)
}

// Dependencies groups the collaborators required by the dispatch service.
type Dependencies struct {
	Sites  SiteSource
	Config config.Config
	Logger logger.Logger
}

// Service keeps the handler registry and aggregates link actions.
type Service struct {
	sites  SiteSource
	cfg    config.Config
	logger logger.Logger

	mu       sync.RWMutex
	handlers map[string]*registration
	order    []*registration
}

type registration struct {
	handler Handler
	index   int
}

// New builds the link dispatch service.
func New(deps Dependencies) (*Service, error) {
	if deps.Sites == nil {
		return nil, ErrMissingSites
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Config.Links.MaxWorkers <= 0 {
		deps.Config.Links.MaxWorkers = config.Defaults().Links.MaxWorkers
	}
	return &Service{
		sites:    deps.Sites,
		cfg:      deps.Config,
		logger:   deps.Logger,
		handlers: make(map[string]*registration),
	}, nil
}

// Register adds a handler keyed by name. A second handler with the same
// name is rejected and false returned; the first registration wins.
func (s *Service) Register(handler Handler) bool {
	if handler == nil || handler.Name() == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.handlers[handler.Name()]; exists {
		s.logger.Debug("links: handler already registered", logger.Field{Key: "name", Value: handler.Name()})
		return false
	}
	reg := &registration{handler: handler, index: len(s.order)}
	s.handlers[handler.Name()] = reg
	s.order = append(s.order, reg)
	return true
}

// ActionOptions carries the optional context of a link click.
type ActionOptions struct {
	CourseID int
	Username string
	Data     domain.JSONMap
}

type handlerResult struct {
	priority int
	index    int
	actions  []domain.LinkAction
}

// ActionsFor proposes actions for a clicked URL, ordered by descending
// handler priority; equal priorities keep registration order. Handlers are
// evaluated concurrently and a failing handler contributes nothing rather
// than aborting the rest.
func (s *Service) ActionsFor(ctx context.Context, rawURL string, opts ActionOptions) ([]domain.LinkAction, error) {
	if rawURL == "" {
		return nil, nil
	}

	siteKeys, err := s.sites.IDsForURL(ctx, rawURL, opts.Username)
	if err != nil {
		return nil, fmt.Errorf("links: resolve sites for url: %w", err)
	}
	params := queryParams(rawURL)

	s.mu.RLock()
	regs := make([]*registration, len(s.order))
	copy(regs, s.order)
	s.mu.RUnlock()

	results := make([]*handlerResult, len(regs))
	var group errgroup.Group
	group.SetLimit(s.cfg.Links.MaxWorkers)

	for i, reg := range regs {
		group.Go(func() error {
			// Errors stay local to the handler; the join sees none.
			result := s.evaluateHandler(ctx, reg, rawURL, params, siteKeys, opts)
			results[i] = result
			return nil
		})
	}
	_ = group.Wait()

	var groups []*handlerResult
	for _, result := range results {
		if result != nil && len(result.actions) > 0 {
			groups = append(groups, result)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].priority > groups[j].priority
	})

	var actions []domain.LinkAction
	for _, grp := range groups {
		actions = append(actions, grp.actions...)
	}
	return actions, nil
}

func (s *Service) evaluateHandler(ctx context.Context, reg *registration, rawURL string, params map[string]string, siteKeys []string, opts ActionOptions) *handlerResult {
	handler := reg.handler
	if !handler.Handles(rawURL) {
		return nil
	}

	enabled := s.enabledSites(ctx, handler, rawURL, params, siteKeys, opts.CourseID)
	if len(enabled) == 0 {
		return nil
	}

	actions, err := handler.Actions(ctx, enabled, rawURL, params, opts.CourseID, opts.Data)
	if err != nil {
		s.logger.Warn("links: handler actions failed",
			logger.Field{Key: "handler", Value: handler.Name()},
			logger.Field{Key: "error", Value: err},
		)
		return nil
	}

	filled := make([]domain.LinkAction, 0, len(actions))
	for _, action := range actions {
		if action.Message == "" {
			action.Message = domain.DefaultActionMessage
		}
		if action.Icon == "" {
			action.Icon = domain.DefaultActionIcon
		}
		if len(action.SiteKeys) == 0 {
			action.SiteKeys = enabled
		}
		filled = append(filled, action)
	}

	return &handlerResult{
		priority: handler.Priority(),
		index:    reg.index,
		actions:  filled,
	}
}

// enabledSites filters candidate sites by the handler's feature gate and
// enablement predicate. When CheckAllUsers is false the predicate runs
// once, against the first candidate, and the verdict covers all of them.
func (s *Service) enabledSites(ctx context.Context, handler Handler, rawURL string, params map[string]string, siteKeys []string, courseID int) []string {
	if len(siteKeys) == 0 {
		return nil
	}

	if !handler.CheckAllUsers() {
		if s.siteEnabled(ctx, handler, rawURL, params, siteKeys[0], courseID) {
			out := make([]string, len(siteKeys))
			copy(out, siteKeys)
			return out
		}
		return nil
	}

	var out []string
	for _, key := range siteKeys {
		if s.siteEnabled(ctx, handler, rawURL, params, key, courseID) {
			out = append(out, key)
		}
	}
	return out
}

func (s *Service) siteEnabled(ctx context.Context, handler Handler, rawURL string, params map[string]string, siteKey string, courseID int) bool {
	if feature := handler.FeatureName(); feature != "" {
		disabled, err := s.sites.IsFeatureDisabled(ctx, siteKey, feature)
		if err != nil {
			s.logger.Warn("links: feature check failed",
				logger.Field{Key: "handler", Value: handler.Name()},
				logger.Field{Key: "site", Value: siteKey},
				logger.Field{Key: "error", Value: err},
			)
			return false
		}
		if disabled {
			return false
		}
	}
	ok, err := handler.IsEnabled(ctx, siteKey, rawURL, params, courseID)
	if err != nil {
		s.logger.Warn("links: handler enablement failed",
			logger.Field{Key: "handler", Value: handler.Name()},
			logger.Field{Key: "site", Value: siteKey},
			logger.Field{Key: "error", Value: err},
		)
		return false
	}
	return ok
}

// SiteURLFor returns the site URL reported by the first registered handler
// that recognizes the link. Registration order decides, not priority.
func (s *Service) SiteURLFor(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	s.mu.RLock()
	regs := make([]*registration, len(s.order))
	copy(regs, s.order)
	s.mu.RUnlock()

	for _, reg := range regs {
		if siteURL := reg.handler.SiteURL(rawURL); siteURL != "" {
			return siteURL
		}
	}
	return ""
}

func queryParams(raw string) map[string]string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	values := parsed.Query()
	if len(values) == 0 {
		return nil
	}
	params := make(map[string]string, len(values))
	for key, list := range values {
		if len(list) > 0 {
			params[key] = list[0]
		}
	}
	return params
}
