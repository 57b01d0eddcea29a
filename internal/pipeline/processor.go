package pipeline

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// bannerRows is the number of leading banner/title rows the sales system
// prepends to its export before the real header row.
const bannerRows = 8

// Stats summarizes one processing run.
type Stats struct {
	TotalRows          int `json:"total_rows"`
	ExecutivesAssigned int `json:"executives_assigned"`
	LocationsFound     int `json:"locations_found"`
	ClassesComputed    int `json:"classes_computed"`
}

// Result is the outcome of one processing run: the processed table plus
// run metadata. Retained in memory until the run is purged.
type Result struct {
	Records   []*Record `json:"records"`
	Stats     Stats     `json:"stats"`
	Warnings  []string  `json:"warnings"`
	CreatedAt time.Time `json:"created_at"`
}

// Processor joins and derives the two spreadsheet exports into the
// processed table.
type Processor struct {
	collator *collate.Collator
	now      func() time.Time
}

// NewProcessor builds a processor sorting operation numbers with
// locale-aware numeric collation ("9" before "10").
func NewProcessor() *Processor {
	return &Processor{
		collator: collate.New(language.Spanish, collate.Numeric),
		now:      time.Now,
	}
}

// Run executes the pipeline: clean → join → sort → derive.
//
// The primary rows are the sales export including its banner and header
// rows; the secondary rows are the logistics export with its header row.
// The executive mapping assigns executives by exact salesperson match.
func (p *Processor) Run(primary, secondary [][]string, executives map[string]string) *Result {
	cleaned := clean(primary)

	result := &Result{CreatedAt: p.now()}
	if len(cleaned) == 0 {
		return result
	}

	idx := buildHeaderIndex(cleaned[0])
	result.Warnings = idx.warnings

	secondaryIdx := buildSecondaryIndex(secondary)

	records := make([]*Record, 0, len(cleaned)-1)
	for _, row := range cleaned[1:] {
		records = append(records, mapRecord(idx, row))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return p.collator.CompareString(records[i].Operation, records[j].Operation) < 0
	})

	now := p.now()
	for _, r := range records {
		derive(r, secondaryIdx, executives, now)

		result.Stats.TotalRows++
		if r.Executive != "" && r.Executive != UnassignedExecutive {
			result.Stats.ExecutivesAssigned++
		}
		if r.FolderLocation != NoFolderLocation {
			result.Stats.LocationsFound++
		}
		if r.Class != "" {
			result.Stats.ClassesComputed++
		}
	}
	result.Records = records

	return result
}

// clean drops the leading banner rows and every fully-empty row. The
// first surviving row is the real header row.
func clean(rows [][]string) [][]string {
	if len(rows) <= bannerRows {
		return nil
	}
	cleaned := make([][]string, 0, len(rows)-bannerRows)
	for _, row := range rows[bannerRows:] {
		if !emptyRow(row) {
			cleaned = append(cleaned, row)
		}
	}
	return cleaned
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
