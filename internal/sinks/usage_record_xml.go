package sinks

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gratia-output/internal/models"
)

const urwgNamespace = "http://www.gridforum.org/2003/ur-wg"

type xmlDescribed struct {
	Description string `xml:"urwg:description,attr"`
	Value       string `xml:",chardata"`
}

type xmlCpuDuration struct {
	UsageType   string `xml:"urwg:usageType,attr"`
	Description string `xml:"urwg:description,attr"`
	Value       string `xml:",chardata"`
}

type xmlProcessors struct {
	Description string `xml:"urwg:description,attr"`
	Metric      string `xml:"urwg:metric,attr"`
	Value       string `xml:",chardata"`
}

type xmlRecordIdentity struct {
	CreateTime string `xml:"urwg:createTime,attr"`
	RecordID   string `xml:"urwg:recordId,attr"`
}

type xmlUserIdentity struct {
	VOName           string `xml:"VOName,omitempty"`
	ReportableVOName string `xml:"ReportableVOName,omitempty"`
}

// xmlJobUsageRecord is the OGF usage record document the collector ingests.
type xmlJobUsageRecord struct {
	XMLName        xml.Name          `xml:"JobUsageRecord"`
	Xmlns          string            `xml:"xmlns,attr"`
	XmlnsUrwg      string            `xml:"xmlns:urwg,attr"`
	RecordIdentity xmlRecordIdentity `xml:"RecordIdentity"`
	UserIdentity   xmlUserIdentity   `xml:"UserIdentity"`
	WallDuration   xmlDescribed      `xml:"WallDuration"`
	CpuDuration    xmlCpuDuration    `xml:"CpuDuration"`
	StartTime      xmlDescribed      `xml:"StartTime"`
	EndTime        xmlDescribed      `xml:"EndTime"`
	Processors     xmlProcessors     `xml:"Processors"`
	SiteName       string            `xml:"SiteName"`
	ProbeName      string            `xml:"ProbeName"`
	Grid           string            `xml:"Grid,omitempty"`
	ResourceType   string            `xml:"ResourceType"`
}

type xmlSoftware struct {
	Component string `xml:"component,attr"`
	Version   string `xml:"version,attr,omitempty"`
	Name      string `xml:",chardata"`
}

type xmlProbeDetails struct {
	XMLName                   xml.Name      `xml:"ProbeDetails"`
	ProbeName                 string        `xml:"ProbeName"`
	SiteName                  string        `xml:"SiteName"`
	Grid                      string        `xml:"Grid,omitempty"`
	InfrastructureDescription string        `xml:"InfrastructureDescription,omitempty"`
	NodeCount                 int           `xml:"NodeCount"`
	Processors                int           `xml:"Processors"`
	Software                  []xmlSoftware `xml:"Software"`
}

func isoDuration(seconds int64) string {
	return fmt.Sprintf("PT%dS", seconds)
}

func isoTime(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(time.RFC3339)
}

func marshalUsageRecord(record *models.UsageRecord, recordID string, now time.Time) ([]byte, error) {
	doc := xmlJobUsageRecord{
		Xmlns:     urwgNamespace,
		XmlnsUrwg: urwgNamespace,
		RecordIdentity: xmlRecordIdentity{
			CreateTime: now.UTC().Format(time.RFC3339),
			RecordID:   recordID,
		},
		UserIdentity: xmlUserIdentity{VOName: record.VOName, ReportableVOName: record.ReportableVOName},
		WallDuration: xmlDescribed{Description: models.UnitsSeconds, Value: isoDuration(record.WallDuration)},
		CpuDuration: xmlCpuDuration{
			UsageType:   record.CpuUsageType,
			Description: models.UnitsSeconds,
			Value:       isoDuration(record.CpuDuration),
		},
		StartTime:    xmlDescribed{Description: models.UnitsSeconds, Value: isoTime(record.StartTime)},
		EndTime:      xmlDescribed{Description: models.UnitsSeconds, Value: isoTime(record.EndTime)},
		Processors:   xmlProcessors{Description: models.UnitsSeconds, Metric: "total", Value: strconv.FormatInt(record.Processors, 10)},
		SiteName:     record.SiteName,
		ProbeName:    record.ProbeName,
		Grid:         record.Grid,
		ResourceType: record.ResourceType,
	}
	return xml.Marshal(doc)
}

func marshalProbeDetails(details *ProbeDetails) ([]byte, error) {
	doc := xmlProbeDetails{
		ProbeName:                 details.ProbeName,
		SiteName:                  details.SiteName,
		Grid:                      details.Grid,
		InfrastructureDescription: details.InfrastructureDescription,
		NodeCount:                 details.NodeCount,
		Processors:                details.Processors,
	}
	for _, sw := range []xmlSoftware{
		{Component: "Reporter", Name: details.Reporter},
		{Component: "Service", Name: details.Service},
		{Component: "ProbeManager", Name: details.ProbeManager},
		{Component: "Probe", Name: "gratia-output", Version: details.ProbeVersion},
	} {
		if strings.TrimSpace(sw.Name) != "" {
			doc.Software = append(doc.Software, sw)
		}
	}
	return xml.Marshal(doc)
}
