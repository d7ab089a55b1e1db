package menulayout

import (
	"sort"
	"strings"

	"github.com/goliatone/go-navigation/pkg/domain"
)

// Custom menu configuration format, one entry per line:
//
//	label|url|type|lang|icon
//
// lang defaults to "none", icon defaults by type. Lines missing label, url,
// or type contribute nothing. Entries repeating a (url,type) pair merge
// into one item keeping the first-seen position; the label/icon pair is
// picked per language using the resolution order below.

const langNone = "none"
const langOnlySuffix = "_only"

type resolveOptions struct {
	current   string
	fallbacks []string
}

type labelCandidate struct {
	label string
	icon  string
}

type pendingItem struct {
	url      string
	itemType string
	position int
	// byLang holds the first candidate seen per language; langOrder keeps
	// insertion order for the final non-"_only" sweep.
	byLang    map[string]labelCandidate
	langOrder []string
}

func parseCustomItems(raw string, opts resolveOptions) []domain.CustomMenuItem {
	pending := make(map[string]*pendingItem)
	position := 0

	for _, line := range splitLines(raw) {
		label, itemURL, itemType, lang, icon := splitEntry(line)
		if label == "" || itemURL == "" || itemType == "" {
			continue
		}
		if lang == "" {
			lang = langNone
		}
		if icon == "" {
			if itemType == domain.MenuItemTypeEmbedded {
				icon = "fa-expand"
			} else {
				icon = "fa-link"
			}
		}

		key := itemURL + "|" + itemType
		item, ok := pending[key]
		if !ok {
			item = &pendingItem{
				url:      itemURL,
				itemType: itemType,
				position: position,
				byLang:   make(map[string]labelCandidate),
			}
			pending[key] = item
			position++
		}
		if _, seen := item.byLang[lang]; !seen {
			item.byLang[lang] = labelCandidate{label: label, icon: icon}
			item.langOrder = append(item.langOrder, lang)
		}
	}

	resolved := make([]domain.CustomMenuItem, 0, len(pending))
	positions := make([]int, 0, len(pending))
	byPosition := make(map[int]domain.CustomMenuItem)

	for _, item := range pending {
		candidate, ok := resolveLabel(item, opts)
		if !ok {
			continue
		}
		byPosition[item.position] = domain.CustomMenuItem{
			Type:  item.itemType,
			URL:   item.url,
			Label: candidate.label,
			Icon:  candidate.icon,
		}
		positions = append(positions, item.position)
	}

	// Unresolved slots leave holes; compact back to a dense sequence.
	sort.Ints(positions)
	for _, pos := range positions {
		resolved = append(resolved, byPosition[pos])
	}
	return resolved
}

// resolveLabel picks one label/icon pair for an item: current language,
// then "<current>_only", then "none", then each fallback language, then
// the first candidate not restricted to a single language.
func resolveLabel(item *pendingItem, opts resolveOptions) (labelCandidate, bool) {
	if opts.current != "" {
		if c, ok := item.byLang[opts.current]; ok {
			return c, true
		}
		if c, ok := item.byLang[opts.current+langOnlySuffix]; ok {
			return c, true
		}
	}
	if c, ok := item.byLang[langNone]; ok {
		return c, true
	}
	for _, lang := range opts.fallbacks {
		if c, ok := item.byLang[lang]; ok {
			return c, true
		}
	}
	for _, lang := range item.langOrder {
		if strings.HasSuffix(lang, langOnlySuffix) {
			continue
		}
		return item.byLang[lang], true
	}
	return labelCandidate{}, false
}

func splitEntry(line string) (label, itemURL, itemType, lang, icon string) {
	fields := strings.Split(line, "|")
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	return get(0), get(1), get(2), get(3), get(4)
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}
