package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatType drives how a resolved slot value is rendered. Formatting is
// applied to the resolved copy only; the source metadata is never mutated.
type FormatType string

const (
	FormatDate      FormatType = "date"
	FormatCurrency  FormatType = "currency"
	FormatNumber    FormatType = "number"
	FormatBoolean   FormatType = "boolean"
	FormatText      FormatType = "text"
	FormatSelect    FormatType = "select"
	FormatReference FormatType = "reference"
)

// SlotTitleKey is the special mapped key meaning "use the node's title
// directly" instead of reading a metadata field.
const SlotTitleKey = "$title"

const (
	timeLayout = time.RFC3339
	dateLayout = "2006-01-02"
)

// slotFallbacks maps conventional slot names to the metadata field they
// read when neither the slot config nor a same-named field provides one.
var slotFallbacks = map[string]string{
	"headline":     SlotTitleKey,
	"subtext":      MetaDescription,
	"accent_color": "color",
	"icon_start":   "icon",
	"media":        "imageUrl",
}

// SlotResolver resolves abstract, presentation-facing slot names to concrete
// node values so generic structural components never hard-code field names.
// Locale and currency come from the owner profile.
type SlotResolver struct {
	tag      language.Tag
	printer  *message.Printer
	currency currency.Unit
	now      func() time.Time
}

// NewSlotResolver creates a resolver for the given BCP 47 locale and ISO
// 4217 currency code. Unparseable preferences degrade to en-US / USD.
func NewSlotResolver(locale, currencyCode string, now func() time.Time) *SlotResolver {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.USD
	}
	if now == nil {
		now = time.Now
	}
	return &SlotResolver{
		tag:      tag,
		printer:  message.NewPrinter(tag),
		currency: unit,
		now:      now,
	}
}

// Resolve returns the raw value for a slot. Lookup precedence, first
// defined value wins:
//
//  1. the node's slot config entry (metadata "slots"), reading the mapped
//     field ($title means the node title);
//  2. a same-named field directly in the node metadata;
//  3. the conventional fallback table;
//  4. the caller-supplied default.
//
// "Defined" means present and non-nil; empty strings, zeros and false all
// count as defined.
func (r *SlotResolver) Resolve(n *Node, slot string, def any) any {
	if n == nil {
		return def
	}

	if key, _, ok := r.slotConfig(n, slot); ok {
		if v, defined := readField(n, key); defined {
			return v
		}
	}

	if v, defined := readField(n, slot); defined {
		return v
	}

	if key, ok := slotFallbacks[slot]; ok {
		if v, defined := readField(n, key); defined {
			return v
		}
	}

	return def
}

// ResolveFormatted resolves a slot and renders it as display text. The
// format type comes from the explicit argument when non-empty, else from
// the slot config entry; unparseable values fall back to their string form.
func (r *SlotResolver) ResolveFormatted(n *Node, slot string, def any, format FormatType) string {
	value := r.Resolve(n, slot, def)
	if format == "" {
		if _, cfgType, ok := r.slotConfig(n, slot); ok {
			format = cfgType
		}
	}
	return r.Format(value, format)
}

// slotConfig reads the per-node slot config entry for a slot name. The
// entry is either a bare field key or {key, type}.
func (r *SlotResolver) slotConfig(n *Node, slot string) (key string, format FormatType, ok bool) {
	raw, exists := n.Metadata[MetaSlots]
	if !exists {
		return "", "", false
	}
	cfg, isMap := raw.(map[string]any)
	if !isMap {
		return "", "", false
	}
	entry, exists := cfg[slot]
	if !exists {
		return "", "", false
	}
	switch e := entry.(type) {
	case string:
		return e, "", true
	case map[string]any:
		k, _ := e["key"].(string)
		t, _ := e["type"].(string)
		if k == "" {
			return "", "", false
		}
		return k, FormatType(t), true
	default:
		return "", "", false
	}
}

// readField reads a mapped field off a node, honoring the $title key.
func readField(n *Node, key string) (any, bool) {
	if key == SlotTitleKey {
		return n.Title, true
	}
	v, ok := n.Metadata[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Format renders a value for display according to the format type.
// It never fails: values that cannot be parsed for the requested type are
// returned in their plain string form.
func (r *SlotResolver) Format(value any, format FormatType) string {
	if value == nil {
		return ""
	}
	switch format {
	case FormatDate:
		return r.formatDate(value)
	case FormatCurrency:
		if f, ok := toFloat(value); ok {
			return r.printer.Sprint(currency.Symbol(r.currency.Amount(f)))
		}
	case FormatNumber:
		if f, ok := toFloat(value); ok {
			return r.printer.Sprint(number.Decimal(f))
		}
	case FormatBoolean:
		if truthy(value) {
			return "Yes"
		}
		return "No"
	}
	return plainString(value)
}

// formatDate renders dates relative to the resolver clock: today and
// tomorrow get words, everything else a short date. Days are compared as
// calendar dates in the clock's location; a bare YYYY-MM-DD value names a
// calendar day directly and is never shifted across zones.
func (r *SlotResolver) formatDate(value any) string {
	t, ok := toTime(value)
	if !ok {
		return plainString(value)
	}

	now := r.now()
	day := t
	if !isDateOnly(value) {
		day = t.In(now.Location())
	}

	vy, vm, vd := day.Date()
	ny, nm, nd := now.Date()
	ty, tm, td := now.AddDate(0, 0, 1).Date()
	switch {
	case vy == ny && vm == nm && vd == nd:
		return "Today"
	case vy == ty && vm == tm && vd == td:
		return "Tomorrow"
	default:
		return day.Format("Jan 2, 2006")
	}
}

func isDateOnly(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), true
	case string:
		for _, layout := range []string{timeLayout, dateLayout} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "yes" || v == "1"
	default:
		f, ok := toFloat(value)
		return ok && f != 0
	}
}

func plainString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
