package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordMeta captures identifiers and audit fields shared across entities.
type RecordMeta struct {
	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt time.Time `bun:",soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureID assigns a UUID when the struct is about to be persisted.
func (m *RecordMeta) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

// JSONMap persists arbitrary metadata fields as JSON.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value any) error {
	if m == nil {
		return errors.New("JSONMap: Scan on nil pointer")
	}
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("JSONMap: unsupported type %T", value)
	}
}

// StringList stores []string as JSON.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	return json.Marshal([]string(s))
}

func (s *StringList) Scan(value any) error {
	if s == nil {
		return errors.New("StringList: Scan on nil pointer")
	}
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(s))
	default:
		return fmt.Errorf("StringList: unsupported type %T", value)
	}
}

// Contains reports whether the list holds the exact value.
func (s StringList) Contains(value string) bool {
	for _, entry := range s {
		if entry == value {
			return true
		}
	}
	return false
}

// Site is a user's authenticated connection to a remote install of the host
// platform. One record per connected account; SiteKey is the external
// identifier the host passes around, distinct from the storage ID.
type Site struct {
	bun.BaseModel `bun:"table:navigation_sites"`
	RecordMeta

	SiteKey          string     `bun:",unique,nullzero,notnull" json:"site_key"`
	Name             string     `bun:",nullzero" json:"name"`
	URL              string     `bun:",nullzero,notnull" json:"url"`
	Username         string     `bun:",nullzero" json:"username"`
	Language         string     `bun:",nullzero" json:"language"`
	CustomMenuItems  string     `bun:",nullzero" json:"custom_menu_items"`
	DisabledFeatures StringList `bun:",nullzero,type:jsonb" json:"disabled_features"`
	Metadata         JSONMap    `bun:",nullzero,type:jsonb" json:"metadata,omitempty"`
}

// MenuHandlerData describes one main-menu contribution supplied by a
// feature handler. The layout service only filters and truncates these;
// rendering belongs to the host.
type MenuHandlerData struct {
	Page       string  `json:"page"`
	Title      string  `json:"title"`
	Icon       string  `json:"icon"`
	Class      string  `json:"class,omitempty"`
	Badge      string  `json:"badge,omitempty"`
	Priority   int     `json:"priority"`
	OnlyInMore bool    `json:"only_in_more"`
	Extra      JSONMap `json:"extra,omitempty"`
}

// Custom menu item types accepted by the site-supplied configuration string.
const (
	MenuItemTypeApp      = "app"
	MenuItemTypeInApp    = "inappbrowser"
	MenuItemTypeBrowser  = "browser"
	MenuItemTypeEmbedded = "embedded"
)

// CustomMenuItem is one display entry parsed from a site's custom menu
// configuration string.
type CustomMenuItem struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Default values filled into link actions when a handler omits them.
const (
	DefaultActionMessage = "core.view"
	DefaultActionIcon    = "fas-eye"
)

// LinkAction is one thing the host can do with a clicked link, scoped to
// the site keys it applies to.
type LinkAction struct {
	Message  string   `json:"message"`
	Icon     string   `json:"icon"`
	SiteKeys []string `json:"site_keys"`
	Data     JSONMap  `json:"data,omitempty"`
}

// TabPlacement says where the main menu bar is docked.
type TabPlacement string

const (
	// TabPlacementSide is the vertical menu used on tablet layouts.
	TabPlacementSide TabPlacement = "side"
	// TabPlacementBottom is the horizontal menu used on phone layouts.
	TabPlacementBottom TabPlacement = "bottom"
)
