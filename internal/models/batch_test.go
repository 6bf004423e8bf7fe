package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		records   []*UsageRecord
		wantSite  string
		wantProbe string
		wantEmpty bool
	}{
		{name: "empty", records: nil, wantEmpty: true},
		{
			name: "takes identity from first record",
			records: []*UsageRecord{
				{SiteName: "UNL", ProbeName: "probe-unl"},
				{SiteName: "MIT", ProbeName: "probe-mit"},
			},
			wantSite:  "UNL",
			wantProbe: "probe-unl",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			batch := NewBatch(tt.records)
			assert.Equal(t, tt.wantEmpty, batch.IsEmpty())
			assert.Equal(t, tt.wantSite, batch.Site)
			assert.Equal(t, tt.wantProbe, batch.Probe)
		})
	}
}

func TestPartitionByProbe(t *testing.T) {
	t.Parallel()

	entries := []DrainedEntry{
		{Name: "e1", Record: &UsageRecord{SiteName: "B", ProbeName: "pb"}},
		{Name: "e2", Record: &UsageRecord{SiteName: "A", ProbeName: "pa"}},
		{Name: "e3", Record: &UsageRecord{SiteName: "B", ProbeName: "pb"}},
		{Name: "e4", Record: &UsageRecord{SiteName: "A", ProbeName: "pa"}},
	}

	groups := PartitionByProbe(entries)
	require.Len(t, groups, 2)

	assert.Equal(t, "pb", groups[0].Batch.Probe)
	assert.Equal(t, []string{"e1", "e3"}, entryNames(groups[0].Entries))
	assert.Same(t, entries[0].Record, groups[0].Batch.Records[0])
	assert.Same(t, entries[2].Record, groups[0].Batch.Records[1])

	assert.Equal(t, "pa", groups[1].Batch.Probe)
	assert.Equal(t, "A", groups[1].Batch.Site)
	assert.Equal(t, []string{"e2", "e4"}, entryNames(groups[1].Entries))
}

func TestPartitionByProbe_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, PartitionByProbe(nil))
}

func entryNames(entries []DrainedEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
