package menulayout

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-navigation/pkg/config"
	"github.com/goliatone/go-navigation/pkg/domain"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
	"github.com/goliatone/go-navigation/pkg/interfaces/viewport"
)

type fakeSites struct {
	current    *domain.Site
	currentErr error
	language   string
	configs    map[string]string
	disabled   map[string]bool
}

func (f *fakeSites) Current(ctx context.Context) (*domain.Site, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	if f.current == nil {
		return nil, store.ErrNotFound
	}
	return f.current, nil
}

func (f *fakeSites) CurrentLanguage(ctx context.Context) string {
	if f.language == "" {
		return "en"
	}
	return f.language
}

func (f *fakeSites) CustomMenuConfig(ctx context.Context, siteKey string) (string, error) {
	return f.configs[siteKey], nil
}

func (f *fakeSites) IsFeatureDisabled(ctx context.Context, siteKey, feature string) (bool, error) {
	return f.disabled[siteKey+"|"+feature], nil
}

func newTestService(t *testing.T, sites SiteProvider, vp viewport.Viewport, source HandlerSource) *Service {
	t.Helper()
	svc, err := New(Dependencies{
		Sites:    sites,
		Viewport: vp,
		Source:   source,
		Config:   config.Defaults(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestNewValidatesDependencies(t *testing.T) {
	source := NewStaticSource()
	vp := &viewport.Static{Width: 400, Height: 800}

	if _, err := New(Dependencies{Viewport: vp, Source: source}); !errors.Is(err, ErrMissingSites) {
		t.Fatalf("expected ErrMissingSites, got %v", err)
	}
	if _, err := New(Dependencies{Sites: &fakeSites{}, Source: source}); !errors.Is(err, ErrMissingViewport) {
		t.Fatalf("expected ErrMissingViewport, got %v", err)
	}
	if _, err := New(Dependencies{Sites: &fakeSites{}, Viewport: vp}); !errors.Is(err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}
}

func TestNumItemsPhoneWidth(t *testing.T) {
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 400, Height: 800}, NewStaticSource())
	// 400/72 = 5 slots, one reserved for the overflow entry.
	if got := svc.NumItems(context.Background()); got != 4 {
		t.Fatalf("expected 4 items, got %d", got)
	}
}

func TestNumItemsCapsHorizontalItems(t *testing.T) {
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 2000, Height: 400}, NewStaticSource())
	if got := svc.NumItems(context.Background()); got != 4 {
		t.Fatalf("expected horizontal cap to hold at 4, got %d", got)
	}
}

func TestNumItemsNarrowViewport(t *testing.T) {
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 100, Height: 400}, NewStaticSource())
	if got := svc.NumItems(context.Background()); got != 1 {
		t.Fatalf("expected floor of 1 item, got %d", got)
	}
}

func TestNumItemsNoGeometry(t *testing.T) {
	svc := newTestService(t, &fakeSites{}, &viewport.Static{}, NewStaticSource())
	if got := svc.NumItems(context.Background()); got != 4 {
		t.Fatalf("expected fixed count without geometry, got %d", got)
	}
}

func TestNumItemsFixedWhenResponsiveDisabled(t *testing.T) {
	sites := &fakeSites{
		current:  &domain.Site{SiteKey: "s1"},
		disabled: map[string]bool{"s1|ResponsiveMainMenuItems": true},
	}
	svc := newTestService(t, sites, &viewport.Static{Width: 2000, Height: 2000}, NewStaticSource())
	if got := svc.NumItems(context.Background()); got != 4 {
		t.Fatalf("expected fixed count when responsive is disabled, got %d", got)
	}
}

func TestNumItemsTabletUsesHeight(t *testing.T) {
	vp := &viewport.Static{Width: 800, Height: 720}
	svc := newTestService(t, &fakeSites{}, vp, NewStaticSource())

	if got := svc.TabPlacement(); got != domain.TabPlacementSide {
		t.Fatalf("expected side placement, got %s", got)
	}
	// 720/72 = 10 slots, one reserved for the overflow entry.
	if got := svc.NumItems(context.Background()); got != 9 {
		t.Fatalf("expected 9 items in tablet mode, got %d", got)
	}
}

func TestTabPlacement(t *testing.T) {
	tests := []struct {
		name string
		vp   viewport.Static
		want domain.TabPlacement
	}{
		{"phone", viewport.Static{Width: 400, Height: 800}, domain.TabPlacementBottom},
		{"tablet", viewport.Static{Width: 800, Height: 720}, domain.TabPlacementSide},
		{"wide but short", viewport.Static{Width: 800, Height: 400}, domain.TabPlacementBottom},
		{"keyboard open", viewport.Static{Width: 800, Height: 300, Keyboard: true}, domain.TabPlacementSide},
		{"keyboard open but tiny", viewport.Static{Width: 800, Height: 150, Keyboard: true}, domain.TabPlacementBottom},
		{"no geometry", viewport.Static{}, domain.TabPlacementBottom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, &fakeSites{}, &tc.vp, NewStaticSource())
			if got := svc.TabPlacement(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestTabPlacementResetsTabletMode(t *testing.T) {
	vp := &viewport.Static{Width: 800, Height: 720}
	svc := newTestService(t, &fakeSites{}, vp, NewStaticSource())

	svc.TabPlacement()
	if !svc.tabletMode.Load() {
		t.Fatal("expected tablet mode after side placement")
	}

	vp.Width = 400
	svc.TabPlacement()
	if svc.tabletMode.Load() {
		t.Fatal("expected tablet mode cleared after bottom placement")
	}
}

func TestCurrentHandlersFiltersAndTruncates(t *testing.T) {
	source := NewStaticSource(
		domain.MenuHandlerData{Page: "home"},
		domain.MenuHandlerData{Page: "grades"},
		domain.MenuHandlerData{Page: "settings", OnlyInMore: true},
		domain.MenuHandlerData{Page: "messages"},
		domain.MenuHandlerData{Page: "calendar"},
		domain.MenuHandlerData{Page: "tags"},
	)
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 400, Height: 800}, source)

	handlers, err := svc.CurrentHandlers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(handlers) != 4 {
		t.Fatalf("expected 4 handlers, got %d", len(handlers))
	}
	want := []string{"home", "grades", "messages", "calendar"}
	for i, page := range want {
		if handlers[i].Page != page {
			t.Fatalf("expected %s at %d, got %s", page, i, handlers[i].Page)
		}
	}
}

func TestCurrentHandlersReleasesSubscription(t *testing.T) {
	source := NewStaticSource(domain.MenuHandlerData{Page: "home"})
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 400, Height: 800}, source)

	if _, err := svc.CurrentHandlers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source.mu.Lock()
	defer source.mu.Unlock()
	if len(source.watchers) != 0 {
		t.Fatalf("expected subscription released, %d watchers remain", len(source.watchers))
	}
}

type blockedSource struct{}

func (blockedSource) Subscribe() (<-chan []domain.MenuHandlerData, func()) {
	return make(chan []domain.MenuHandlerData), func() {}
}

func TestCurrentHandlersHonorsContext(t *testing.T) {
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 400, Height: 800}, blockedSource{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.CurrentHandlers(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIsCurrentHandler(t *testing.T) {
	source := NewStaticSource(
		domain.MenuHandlerData{Page: "home"},
		domain.MenuHandlerData{Page: "settings", OnlyInMore: true},
	)
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 400, Height: 800}, source)

	ctx := context.Background()
	if ok, err := svc.IsCurrentHandler(ctx, "home"); err != nil || !ok {
		t.Fatalf("expected home to be current, got %v %v", ok, err)
	}
	if ok, err := svc.IsCurrentHandler(ctx, "settings"); err != nil || ok {
		t.Fatalf("expected overflow-only page to not be current, got %v %v", ok, err)
	}
}

func TestCustomItems(t *testing.T) {
	sites := &fakeSites{
		language: "es",
		configs: map[string]string{
			"s1": "Ayuda|https://school.example.edu/help|app|es\nHelp|https://school.example.edu/help|app|en",
		},
	}
	svc := newTestService(t, sites, &viewport.Static{Width: 400, Height: 800}, NewStaticSource())

	items, err := svc.CustomItems(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Label != "Ayuda" {
		t.Fatalf("expected Spanish label, got %#v", items)
	}
}

func TestCustomItemsEmptyConfig(t *testing.T) {
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 400, Height: 800}, NewStaticSource())
	items, err := svc.CustomItems(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items != nil {
		t.Fatalf("expected nil items, got %#v", items)
	}
}

func TestFallbackChainAppendsDefault(t *testing.T) {
	svc := newTestService(t, &fakeSites{}, &viewport.Static{Width: 400, Height: 800}, NewStaticSource())
	chain := svc.fallbackChain("es")
	if len(chain) != 1 || chain[0] != "en" {
		t.Fatalf("expected configured default appended, got %#v", chain)
	}
	if chain := svc.fallbackChain("en"); len(chain) != 0 {
		t.Fatalf("expected empty chain for default language, got %#v", chain)
	}
}
