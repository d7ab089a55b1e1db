package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/goliatone/go-config/cfgx"
)

// Config captures module-level configuration knobs. Feature packages (menu
// layout, link dispatch) pull from these nested structs.
type Config struct {
	Localization LocalizationConfig `mapstructure:"localization" json:"localization"`
	Menu         MenuConfig         `mapstructure:"menu" json:"menu"`
	Links        LinksConfig        `mapstructure:"links" json:"links"`
}

// LocalizationConfig controls the fallback language used when resolving
// custom menu item labels.
type LocalizationConfig struct {
	DefaultLanguage string `mapstructure:"default_language" json:"default_language"`
}

// MenuConfig holds the geometry knobs for the main-menu layout service.
type MenuConfig struct {
	// FixedItemCount is returned when responsive sizing is disabled or no
	// viewport geometry is available.
	FixedItemCount int `mapstructure:"fixed_item_count" json:"fixed_item_count"`
	// MinItemSize is the smallest usable menu item edge, in layout units.
	MinItemSize int `mapstructure:"min_item_size" json:"min_item_size"`
	// MaxHorizontalItems caps how many items a phone-layout bottom bar holds.
	MaxHorizontalItems int `mapstructure:"max_horizontal_items" json:"max_horizontal_items"`
	// TabletMinWidth/TabletMinHeight classify the device as tablet layout.
	TabletMinWidth  int `mapstructure:"tablet_min_width" json:"tablet_min_width"`
	TabletMinHeight int `mapstructure:"tablet_min_height" json:"tablet_min_height"`
	// KeyboardMinHeight is the reduced height floor accepted while an
	// on-screen keyboard is visible.
	KeyboardMinHeight int `mapstructure:"keyboard_min_height" json:"keyboard_min_height"`
	// ResponsiveFeature names the per-site feature that, when disabled,
	// pins the menu to FixedItemCount.
	ResponsiveFeature string `mapstructure:"responsive_feature" json:"responsive_feature"`
}

// LinksConfig bounds the concurrent evaluation of link handlers.
type LinksConfig struct {
	MaxWorkers int `mapstructure:"max_workers" json:"max_workers"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Localization: LocalizationConfig{DefaultLanguage: "en"},
		Menu: MenuConfig{
			FixedItemCount:     4,
			MinItemSize:        72,
			MaxHorizontalItems: 5,
			TabletMinWidth:     576,
			TabletMinHeight:    576,
			KeyboardMinHeight:  200,
			ResponsiveFeature:  "ResponsiveMainMenuItems",
		},
		Links: LinksConfig{MaxWorkers: 4},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Localization.DefaultLanguage == "" {
		return errors.New("localization.default_language is required")
	}
	if c.Menu.FixedItemCount <= 0 {
		return fmt.Errorf("menu.fixed_item_count must be > 0")
	}
	if c.Menu.MinItemSize <= 0 {
		return fmt.Errorf("menu.min_item_size must be > 0")
	}
	if c.Menu.MaxHorizontalItems <= 0 {
		return fmt.Errorf("menu.max_horizontal_items must be > 0")
	}
	if c.Links.MaxWorkers <= 0 {
		return fmt.Errorf("links.max_workers must be > 0")
	}
	return nil
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// While cfgx.Build still returns zero values, we fallback to a lightweight
// decoder to keep smoke tests meaningful.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Localization.DefaultLanguage == "" {
		c.Localization.DefaultLanguage = defaults.Localization.DefaultLanguage
	}
	if c.Menu.FixedItemCount == 0 {
		c.Menu.FixedItemCount = defaults.Menu.FixedItemCount
	}
	if c.Menu.MinItemSize == 0 {
		c.Menu.MinItemSize = defaults.Menu.MinItemSize
	}
	if c.Menu.MaxHorizontalItems == 0 {
		c.Menu.MaxHorizontalItems = defaults.Menu.MaxHorizontalItems
	}
	if c.Menu.TabletMinWidth == 0 {
		c.Menu.TabletMinWidth = defaults.Menu.TabletMinWidth
	}
	if c.Menu.TabletMinHeight == 0 {
		c.Menu.TabletMinHeight = defaults.Menu.TabletMinHeight
	}
	if c.Menu.KeyboardMinHeight == 0 {
		c.Menu.KeyboardMinHeight = defaults.Menu.KeyboardMinHeight
	}
	if c.Menu.ResponsiveFeature == "" {
		c.Menu.ResponsiveFeature = defaults.Menu.ResponsiveFeature
	}
	if c.Links.MaxWorkers == 0 {
		c.Links.MaxWorkers = defaults.Links.MaxWorkers
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
