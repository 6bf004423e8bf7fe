// Package records parses APEL "Key: Value" accounting entries and converts them into usage records.
package records

import "strings"

// FieldMap holds the well-formed fields of one entry. It is not modified after parsing.
type FieldMap map[string]string

// ParseResult is the outcome of a tolerant parse. SkippedLines counts non-blank lines that did
// not contribute a field.
type ParseResult struct {
	Fields       FieldMap
	SkippedLines int
}

// Parse splits payload into lines and keeps every line that splits on ':' into exactly two
// non-empty trimmed tokens. Later duplicates overwrite earlier ones. Parse never fails.
//
// Example:
//
//	Site: UNL
//	WallDuration: 3600
//	Bogus line            <- skipped
//	EndTime: 12:30:00     <- skipped, three tokens
func Parse(payload string) *ParseResult {
	result := &ParseResult{Fields: FieldMap{}}

	for _, line := range strings.Split(payload, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens := strings.Split(line, ":")
		if len(tokens) != 2 {
			result.SkippedLines++
			continue
		}

		key := strings.TrimSpace(tokens[0])
		value := strings.TrimSpace(tokens[1])
		if key == "" || value == "" {
			result.SkippedLines++
			continue
		}
		result.Fields[key] = value
	}

	return result
}
