package payments

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"groovava/models"
)

func TestResolveOutcome(t *testing.T) {
	tests := []struct {
		name          string
		query         url.Values
		wantReference string
		wantStatus    models.OutcomeStatus
	}{
		{
			name:          "success",
			query:         url.Values{"reference": {"groovava-7-1-abc123"}, "status": {"success"}},
			wantReference: "groovava-7-1-abc123",
			wantStatus:    models.OutcomeSuccess,
		},
		{
			name:          "cancelled",
			query:         url.Values{"reference": {"groovava-7-1-abc123"}, "status": {"cancelled"}},
			wantReference: "groovava-7-1-abc123",
			wantStatus:    models.OutcomeCancelled,
		},
		{
			name:          "unknown status is failed",
			query:         url.Values{"reference": {"groovava-7-1-abc123"}, "status": {"abandoned"}},
			wantReference: "groovava-7-1-abc123",
			wantStatus:    models.OutcomeFailed,
		},
		{
			name:          "missing status is failed",
			query:         url.Values{"reference": {"groovava-7-1-abc123"}},
			wantReference: "groovava-7-1-abc123",
			wantStatus:    models.OutcomeFailed,
		},
		{
			name:          "legacy trxref alias",
			query:         url.Values{"trxref": {"groovava-7-1-abc123"}, "status": {"success"}},
			wantReference: "groovava-7-1-abc123",
			wantStatus:    models.OutcomeSuccess,
		},
		{
			name:          "reference wins over trxref",
			query:         url.Values{"reference": {"ref-a"}, "trxref": {"ref-b"}, "status": {"success"}},
			wantReference: "ref-a",
			wantStatus:    models.OutcomeSuccess,
		},
		{
			name:          "empty query",
			query:         url.Values{},
			wantReference: "",
			wantStatus:    models.OutcomeFailed,
		},
		{
			name:          "case sensitive status",
			query:         url.Values{"reference": {"r"}, "status": {"Success"}},
			wantReference: "r",
			wantStatus:    models.OutcomeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ResolveOutcome(tt.query)

			assert.Equal(t, tt.wantReference, outcome.Reference)
			assert.Equal(t, tt.wantStatus, outcome.Status)
			assert.WithinDuration(t, time.Now().UTC(), outcome.Timestamp, 5*time.Second)
			assert.False(t, outcome.Verified)
		})
	}
}
