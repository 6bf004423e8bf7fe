package models

const (
	ResourceTypeBatch = "Batch"
	CpuUsageTypeUser  = "user"
	// UnitsSeconds is the description attached to every duration and timestamp field.
	UnitsSeconds = "Was entered in seconds"
)

// UsageRecord is the canonical Gratia accounting record for one finished job. Times and
// durations are in seconds; string fields are empty when the source entry lacked them.
//
// Example CBOR diagnostic (as persisted in the outbox):
//
//	{"end": 1700003600, "cpu": 3000, "vo": "cms", "grid": "grid", "site": "UNL", ...}
type UsageRecord struct {
	ResourceType     string `cbor:"resource_type" json:"resourceType"`
	StartTime        int64  `cbor:"start" json:"startTime"`
	EndTime          int64  `cbor:"end" json:"endTime"`
	WallDuration     int64  `cbor:"wall" json:"wallDuration"`
	CpuDuration      int64  `cbor:"cpu" json:"cpuDuration"`
	CpuUsageType     string `cbor:"cpu_usage_type" json:"cpuUsageType"`
	Processors       int64  `cbor:"processors" json:"processors"`
	SiteName         string `cbor:"site" json:"siteName"`
	ProbeName        string `cbor:"probe" json:"probeName"`
	Grid             string `cbor:"grid" json:"grid"`
	VOName           string `cbor:"vo" json:"voName"`
	ReportableVOName string `cbor:"reportable_vo" json:"reportableVOName"`
}
