package records

import (
	"testing"

	"gratia-output/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `APEL-individual-job-message: v0.3
Site: UNL
VO: cms
StartTime: 1700000000
LatestEndTime: 1700003600
WallDuration: 3600
CpuDuration: 3000
Processors: 8
InfrastructureType: grid
%%`

func TestRecord_Int(t *testing.T) {
	t.Parallel()

	record := NewRecord(FieldMap{
		"Good":     "42",
		"Negative": "-7",
		"Spaces":   " 12 ",
		"Float":    "1.5",
		"Text":     "abc",
	})

	tests := []struct {
		key  string
		want int64
	}{
		{key: "Good", want: 42},
		{key: "Negative", want: -7},
		{key: "Spaces", want: 12},
		{key: "Float", want: 0},
		{key: "Text", want: 0},
		{key: "Missing", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, record.Int(tt.key))
		})
	}
}

func TestRecord_StringAndLookup(t *testing.T) {
	t.Parallel()

	record := NewRecord(FieldMap{"VO": "cms"})

	assert.Equal(t, "cms", record.String("VO"))
	assert.Equal(t, "", record.String("Missing"))

	value, ok := record.Lookup("VO")
	assert.True(t, ok)
	assert.Equal(t, "cms", value)

	_, ok = record.Lookup("Missing")
	assert.False(t, ok)
}

func TestRecord_ProbeIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		site string
		want string
	}{
		{site: "UNL", want: "osg-pilot-container:UNL.gratia.opensciencegrid.org"},
		{site: "Univ. of Nebraska", want: "osg-pilot-container:Univ--of-Nebraska.gratia.opensciencegrid.org"},
		{site: "--site_a--", want: "osg-pilot-container:site-a.gratia.opensciencegrid.org"},
		{site: "T2_US_MIT", want: "osg-pilot-container:T2-US-MIT.gratia.opensciencegrid.org"},
		{site: "ünl", want: "osg-pilot-container:nl.gratia.opensciencegrid.org"},
	}

	for _, tt := range tests {
		t.Run(tt.site, func(t *testing.T) {
			record := NewRecord(FieldMap{FieldSite: tt.site})

			got, err := record.ProbeIdentity()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := record.ProbeIdentity()
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestRecord_ProbeIdentity_MissingSite(t *testing.T) {
	t.Parallel()

	_, err := NewRecord(FieldMap{"VO": "cms"}).ProbeIdentity()
	assert.ErrorIs(t, err, ErrMissingSite)
}

func TestRecord_ToUsageRecord(t *testing.T) {
	t.Parallel()

	record, result := ParseRecord(samplePayload)
	assert.Equal(t, 1, result.SkippedLines)

	got, err := record.ToUsageRecord()
	require.NoError(t, err)

	assert.Equal(t, &models.UsageRecord{
		ResourceType:     "Batch",
		StartTime:        1700000000,
		EndTime:          1700003600,
		WallDuration:     3600,
		CpuDuration:      3000,
		CpuUsageType:     "user",
		Processors:       8,
		SiteName:         "UNL",
		ProbeName:        "osg-pilot-container:UNL.gratia.opensciencegrid.org",
		Grid:             "grid",
		VOName:           "cms",
		ReportableVOName: "cms",
	}, got)
}

func TestRecord_ToUsageRecord_Defaults(t *testing.T) {
	t.Parallel()

	got, err := NewRecord(FieldMap{FieldSite: "UNL", FieldWallDuration: "n/a"}).ToUsageRecord()
	require.NoError(t, err)

	assert.Equal(t, int64(0), got.StartTime)
	assert.Equal(t, int64(0), got.EndTime)
	assert.Equal(t, int64(0), got.WallDuration)
	assert.Equal(t, int64(0), got.Processors)
	assert.Empty(t, got.VOName)
	assert.Empty(t, got.Grid)
	assert.Equal(t, "Batch", got.ResourceType)
}

func TestRecord_ToUsageRecord_MissingSite(t *testing.T) {
	t.Parallel()

	got, err := NewRecord(FieldMap{FieldVO: "cms"}).ToUsageRecord()
	assert.ErrorIs(t, err, ErrMissingSite)
	assert.Nil(t, got)
}
