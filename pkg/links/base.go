package links

import (
	"context"

	"github.com/goliatone/go-navigation/pkg/domain"
)

// BaseHandler supplies the optional handler behaviors with neutral
// defaults. Embed it and implement Name, Handles, and Actions.
type BaseHandler struct{}

// Priority defaults to 0, the lowest ranking.
func (BaseHandler) Priority() int { return 0 }

// CheckAllUsers defaults to false: enablement is checked once and applied
// to every matched site.
func (BaseHandler) CheckAllUsers() bool { return false }

// FeatureName defaults to "": no per-site feature gates the handler.
func (BaseHandler) FeatureName() string { return "" }

// SiteURL defaults to "": the handler cannot attribute the link to a site.
func (BaseHandler) SiteURL(url string) string { return "" }

// IsEnabled defaults to true for every site.
func (BaseHandler) IsEnabled(ctx context.Context, siteKey, url string, params map[string]string, courseID int) (bool, error) {
	return true, nil
}

// FuncHandler adapts plain functions to the Handler interface, useful for
// tests and small host integrations.
type FuncHandler struct {
	BaseHandler

	HandlerName string
	HandlerPrio int
	AllUsers    bool
	Feature     string
	HandlesFn   func(url string) bool
	SiteURLFn   func(url string) string
	IsEnabledFn func(ctx context.Context, siteKey, url string, params map[string]string, courseID int) (bool, error)
	ActionsFn   func(ctx context.Context, siteKeys []string, url string, params map[string]string, courseID int, data domain.JSONMap) ([]Action, error)
}

var _ Handler = (*FuncHandler)(nil)

func (h *FuncHandler) Name() string        { return h.HandlerName }
func (h *FuncHandler) Priority() int       { return h.HandlerPrio }
func (h *FuncHandler) CheckAllUsers() bool { return h.AllUsers }
func (h *FuncHandler) FeatureName() string { return h.Feature }

func (h *FuncHandler) Handles(url string) bool {
	if h.HandlesFn == nil {
		return false
	}
	return h.HandlesFn(url)
}

func (h *FuncHandler) SiteURL(url string) string {
	if h.SiteURLFn == nil {
		return ""
	}
	return h.SiteURLFn(url)
}

func (h *FuncHandler) IsEnabled(ctx context.Context, siteKey, url string, params map[string]string, courseID int) (bool, error) {
	if h.IsEnabledFn == nil {
		return true, nil
	}
	return h.IsEnabledFn(ctx, siteKey, url, params, courseID)
}

func (h *FuncHandler) Actions(ctx context.Context, siteKeys []string, url string, params map[string]string, courseID int, data domain.JSONMap) ([]Action, error) {
	if h.ActionsFn == nil {
		return nil, nil
	}
	return h.ActionsFn(ctx, siteKeys, url, params, courseID, data)
}
