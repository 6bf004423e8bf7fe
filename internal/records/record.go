package records

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gratia-output/internal/models"
)

const (
	FieldSite               = "Site"
	FieldStartTime          = "StartTime"
	FieldLatestEndTime      = "LatestEndTime"
	FieldWallDuration       = "WallDuration"
	FieldCpuDuration        = "CpuDuration"
	FieldProcessors         = "Processors"
	FieldInfrastructureType = "InfrastructureType"
	FieldVO                 = "VO"
)

const (
	probePrefix = "osg-pilot-container"
	probeDomain = "gratia.opensciencegrid.org"
)

// ErrMissingSite is returned when an entry has no Site field, so no probe identity can be derived.
var ErrMissingSite = errors.New("record has no Site field")

var siteUnsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// Record gives typed access to the fields of one parsed entry.
type Record struct {
	fields FieldMap
}

func NewRecord(fields FieldMap) *Record {
	if fields == nil {
		fields = FieldMap{}
	}
	return &Record{fields: fields}
}

// ParseRecord parses payload and wraps the resulting fields.
func ParseRecord(payload string) (*Record, *ParseResult) {
	result := Parse(payload)
	return NewRecord(result.Fields), result
}

// Int returns the base-10 integer value of key, or 0 when the key is missing or not an integer.
func (r *Record) Int(key string) int64 {
	value, ok := r.fields[key]
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// String returns the value of key, or "" when missing.
func (r *Record) String(key string) string {
	return r.fields[key]
}

func (r *Record) Lookup(key string) (string, bool) {
	value, ok := r.fields[key]
	return value, ok
}

// ProbeIdentity derives the Gratia probe name from the Site field, e.g.
// "Univ. of Nebraska" -> "osg-pilot-container:Univ--of-Nebraska.gratia.opensciencegrid.org".
func (r *Record) ProbeIdentity() (string, error) {
	site, ok := r.fields[FieldSite]
	if !ok {
		return "", ErrMissingSite
	}
	return ProbeIdentityForSite(site), nil
}

// ProbeIdentityForSite replaces every character outside [A-Za-z0-9-] with '-' and trims
// leading and trailing dashes before building the probe name.
func ProbeIdentityForSite(site string) string {
	sanitized := strings.Trim(siteUnsafeChars.ReplaceAllString(site, "-"), "-")
	return fmt.Sprintf("%s:%s.%s", probePrefix, sanitized, probeDomain)
}

// ToUsageRecord converts the entry. Memory, host name and a real grid identifier are not
// carried by the entries and are left out.
func (r *Record) ToUsageRecord() (*models.UsageRecord, error) {
	probe, err := r.ProbeIdentity()
	if err != nil {
		return nil, err
	}

	return &models.UsageRecord{
		ResourceType:     models.ResourceTypeBatch,
		StartTime:        r.Int(FieldStartTime),
		EndTime:          r.Int(FieldLatestEndTime),
		WallDuration:     r.Int(FieldWallDuration),
		CpuDuration:      r.Int(FieldCpuDuration),
		CpuUsageType:     models.CpuUsageTypeUser,
		Processors:       r.Int(FieldProcessors),
		SiteName:         r.String(FieldSite),
		ProbeName:        probe,
		Grid:             r.String(FieldInfrastructureType), // closest available match
		VOName:           r.String(FieldVO),
		ReportableVOName: r.String(FieldVO),
	}, nil
}
