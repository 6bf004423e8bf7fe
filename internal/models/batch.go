package models

// Batch is an ordered group of usage records reported in one cycle. Site and Probe are taken
// from the first record; a batch is expected to hold records of a single probe.
type Batch struct {
	Site    string
	Probe   string
	Records []*UsageRecord
}

func NewBatch(records []*UsageRecord) *Batch {
	batch := &Batch{Records: records}
	if len(records) > 0 {
		batch.Site = records[0].SiteName
		batch.Probe = records[0].ProbeName
	}
	return batch
}

func (b *Batch) IsEmpty() bool {
	return b == nil || len(b.Records) == 0
}

// DrainedEntry is a queue entry that was read and converted but not yet removed from the queue.
type DrainedEntry struct {
	Name   string
	Record *UsageRecord
}

// EntryGroup pairs a batch with the queue entries its records came from.
type EntryGroup struct {
	Batch   *Batch
	Entries []DrainedEntry
}

// PartitionByProbe splits drained entries into one group per probe name, in order of first
// appearance. Entry order within a group is preserved.
func PartitionByProbe(entries []DrainedEntry) []*EntryGroup {
	var groups []*EntryGroup
	byProbe := make(map[string]*EntryGroup)

	for _, entry := range entries {
		group, ok := byProbe[entry.Record.ProbeName]
		if !ok {
			group = &EntryGroup{}
			byProbe[entry.Record.ProbeName] = group
			groups = append(groups, group)
		}
		group.Entries = append(group.Entries, entry)
	}

	for _, group := range groups {
		records := make([]*UsageRecord, 0, len(group.Entries))
		for _, entry := range group.Entries {
			records = append(records, entry.Record)
		}
		group.Batch = NewBatch(records)
	}
	return groups
}
