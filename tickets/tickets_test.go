package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Tier
	}{
		{
			name: "empty means free",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace only means free",
			raw:  "   ",
			want: nil,
		},
		{
			name: "tier array",
			raw:  `[{"type":"VIP","price":"50"},{"type":"Regular","price":"20"}]`,
			want: []Tier{{Type: "VIP", Price: "50"}, {Type: "Regular", Price: "20"}},
		},
		{
			name: "numeric prices in array",
			raw:  `[{"type":"VIP","price":50}]`,
			want: []Tier{{Type: "VIP", Price: "50"}},
		},
		{
			name: "invalid entries filtered",
			raw:  `[{"type":"VIP","price":"50"},{"type":"","price":"10"},{"type":"Table"}]`,
			want: []Tier{{Type: "VIP", Price: "50"}},
		},
		{
			name: "array of non-objects filtered",
			raw:  `["VIP","Regular"]`,
			want: []Tier{},
		},
		{
			name: "legacy bare price",
			raw:  "5000",
			want: []Tier{{Type: "General", Price: "5000"}},
		},
		{
			name: "legacy price with naira symbol",
			raw:  "₦5000",
			want: []Tier{{Type: "General", Price: "5000"}},
		},
		{
			name: "legacy price with dollar symbol",
			raw:  "$25",
			want: []Tier{{Type: "General", Price: "25"}},
		},
		{
			name: "non-array json",
			raw:  `{"type":"VIP","price":"50"}`,
			want: []Tier{{Type: "General", Price: `{"type":"VIP","price":"50"}`}},
		},
		{
			name: "malformed json",
			raw:  `[{"type":`,
			want: []Tier{{Type: "General", Price: `[{"type":`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.raw))
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
		want  string
	}{
		{
			name:  "nil means free",
			tiers: nil,
			want:  "",
		},
		{
			name:  "only invalid tiers means free",
			tiers: []Tier{{Type: "  ", Price: "50"}, {Type: "VIP", Price: ""}},
			want:  "",
		},
		{
			name:  "valid tiers serialized",
			tiers: []Tier{{Type: "VIP", Price: "50"}},
			want:  `[{"type":"VIP","price":"50"}]`,
		},
		{
			name:  "invalid tiers dropped, order kept",
			tiers: []Tier{{Type: "VIP", Price: "50"}, {Type: "", Price: "10"}, {Type: "Regular", Price: "20"}},
			want:  `[{"type":"VIP","price":"50"},{"type":"Regular","price":"20"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.tiers))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tiers := []Tier{{Type: "VIP", Price: "50"}, {Type: "Regular", Price: "20"}}

	assert.Equal(t, tiers, Decode(Encode(tiers)))
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
		want  string
	}{
		{
			name:  "no tiers",
			tiers: nil,
			want:  "Free",
		},
		{
			name:  "only invalid tiers",
			tiers: []Tier{{Type: "VIP", Price: " "}},
			want:  "Free",
		},
		{
			name:  "single tier",
			tiers: []Tier{{Type: "VIP", Price: "5000"}},
			want:  "VIP: ₦5000",
		},
		{
			name:  "two tiers",
			tiers: []Tier{{Type: "Regular", Price: "2000"}, {Type: "VIP", Price: "5000"}},
			want:  "Regular: ₦2000 +1 more type",
		},
		{
			name: "four tiers",
			tiers: []Tier{
				{Type: "Early Bird", Price: "1000"},
				{Type: "Regular", Price: "2000"},
				{Type: "VIP", Price: "5000"},
				{Type: "Table", Price: "50000"},
			},
			want: "Early Bird: ₦1000 +3 more types",
		},
		{
			name:  "invalid tiers do not count",
			tiers: []Tier{{Type: "VIP", Price: "5000"}, {Type: "", Price: "10"}},
			want:  "VIP: ₦5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.tiers))
		})
	}
}

func TestTierValid(t *testing.T) {
	assert.True(t, Tier{Type: "VIP", Price: "50"}.Valid())
	assert.False(t, Tier{Type: "", Price: "50"}.Valid())
	assert.False(t, Tier{Type: "VIP", Price: ""}.Valid())
	assert.False(t, Tier{Type: "  ", Price: " "}.Valid())
}
