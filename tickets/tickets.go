// Package tickets is the single place that interprets the persisted
// event price field. The field is an untyped text blob with three
// legacy-compatible shapes: absent (free event), a bare price string,
// or a JSON array of ticket tiers.
package tickets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CurrencySymbol is the display symbol of the only supported currency.
const CurrencySymbol = "₦"

// Tier is a named ticket category with a display price, e.g. {VIP, "50"}.
type Tier struct {
	Type  string `json:"type"`
	Price string `json:"price"`
}

// Valid reports whether the tier has a non-empty trimmed type and price.
// Invalid tiers are never persisted and never offered for purchase.
func (t Tier) Valid() bool {
	return strings.TrimSpace(t.Type) != "" && strings.TrimSpace(t.Price) != ""
}

// Filter drops invalid tiers, preserving order.
func Filter(tiers []Tier) []Tier {
	valid := make([]Tier, 0, len(tiers))
	for _, t := range tiers {
		if t.Valid() {
			valid = append(valid, t)
		}
	}
	return valid
}

// Decode parses the raw price field into tiers. It never fails: an empty
// value yields no tiers, a JSON array yields its valid tiers, and any
// other value is wrapped as a single "General" tier with the raw value
// as price (currency symbols stripped, no numeric parsing).
func Decode(raw string) []Tier {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return []Tier{{Type: "General", Price: stripCurrency(raw)}}
	}

	arr, ok := parsed.([]any)
	if !ok {
		return []Tier{{Type: "General", Price: stripCurrency(raw)}}
	}

	tiers := make([]Tier, 0, len(arr))
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		tiers = append(tiers, Tier{
			Type:  stringValue(m["type"]),
			Price: stringValue(m["price"]),
		})
	}
	return Filter(tiers)
}

// Encode serializes tiers for persistence, dropping invalid ones first.
// It returns "" when nothing valid remains: absence of price data is the
// free-event sentinel, there is no explicit "free" marker.
func Encode(tiers []Tier) string {
	valid := Filter(tiers)
	if len(valid) == 0 {
		return ""
	}

	data, err := json.Marshal(valid)
	if err != nil {
		// []Tier cannot fail to marshal; keep the free sentinel anyway.
		return ""
	}
	return string(data)
}

// Summary renders a compact price line for event listings.
func Summary(tiers []Tier) string {
	valid := Filter(tiers)
	if len(valid) == 0 {
		return "Free"
	}

	first := fmt.Sprintf("%s: %s%s", valid[0].Type, CurrencySymbol, valid[0].Price)
	if len(valid) == 1 {
		return first
	}

	remaining := len(valid) - 1
	label := "types"
	if remaining == 1 {
		label = "type"
	}
	return fmt.Sprintf("%s +%d more %s", first, remaining, label)
}

func stripCurrency(s string) string {
	return strings.TrimSpace(strings.NewReplacer(CurrencySymbol, "", "$", "").Replace(s))
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
