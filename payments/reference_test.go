package payments

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^groovava-7-(\d+)-([a-z0-9]{6})$`)

func TestBuildReferenceFormat(t *testing.T) {
	before := time.Now().UnixMilli()
	ref := BuildReference("7")
	after := time.Now().UnixMilli()

	matches := referencePattern.FindStringSubmatch(ref)
	require.NotNil(t, matches, "unexpected reference format: %s", ref)

	ts, err := strconv.ParseInt(matches[1], 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)
}

func TestBuildReferenceEmbedsEventID(t *testing.T) {
	ref := BuildReference("evt123abc")

	assert.True(t, strings.HasPrefix(ref, "groovava-evt123abc-"))
}

func TestBuildReferenceUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		ref := BuildReference("7")
		_, dup := seen[ref]
		require.False(t, dup, "duplicate reference: %s", ref)
		seen[ref] = struct{}{}
	}
}
