package pipeline

import (
	"strings"

	"dealertrack/internal/classifier"
)

// Filter selects records by exact-match executive and/or class. Records
// without an operation number are always excluded from views.
type Filter struct {
	Executive string
	Class     string
}

// Filtered returns the records matching the filter, in table order.
func (res *Result) Filtered(f Filter) []*Record {
	matched := make([]*Record, 0, len(res.Records))
	for _, r := range res.Records {
		if strings.TrimSpace(r.Operation) == "" {
			continue
		}
		if f.Executive != "" && strings.TrimSpace(r.Executive) != f.Executive {
			continue
		}
		if f.Class != "" && strings.TrimSpace(r.Class) != f.Class {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

// Aggregates summarizes the full processed table for the statistics view.
type Aggregates struct {
	Total          int            `json:"total"`
	PerClass       map[string]int `json:"per_class"`
	PerExecutive   map[string]int `json:"per_executive"`
	LocationsFound int            `json:"locations_found"`
	NoFolder       int            `json:"no_folder"`
}

// Aggregate computes per-class and per-executive counts over all records.
// Unassigned executives are left out of the per-executive breakdown.
func (res *Result) Aggregate() Aggregates {
	agg := Aggregates{
		Total:        len(res.Records),
		PerClass:     make(map[string]int),
		PerExecutive: make(map[string]int),
	}
	for _, r := range res.Records {
		if r.Class != "" {
			agg.PerClass[r.Class]++
		}
		if r.Executive != "" && r.Executive != UnassignedExecutive {
			agg.PerExecutive[r.Executive]++
		}
		switch {
		case r.FolderLocation == NoFolderLocation:
			agg.NoFolder++
		case r.FolderLocation != "":
			agg.LocationsFound++
		}
	}
	return agg
}

// RecordView is a record enriched with the zone computation and code
// validation for the display/API layer.
type RecordView struct {
	Record       *Record `json:"record"`
	DaysAssigned int     `json:"days_assigned"`
	DaysInStock  int     `json:"days_in_stock"`
	Difference   int     `json:"difference"`
	Sequence     string  `json:"sequence"`
	HoldStock    bool    `json:"hold_stock"`
	Zone         string  `json:"zone"`
	ZoneDetail   string  `json:"zone_detail"`
	CodeValid    *bool   `json:"code_valid"`
	CodeStatus   string  `json:"code_status"`
	Suspicious   bool    `json:"suspicious"`
}

// Enrich runs the zone engine and code validator over a filtered record
// set against the given configuration snapshot. The flagged set marks
// operations with a suspicious audit trail.
func Enrich(records []*Record, cfg classifier.ZoneConfig, matrix classifier.CodeMatrix, flagged map[string]bool) []RecordView {
	views := make([]RecordView, 0, len(records))
	for _, r := range records {
		daysAssigned := dayCount(r.DaysAssigned)
		daysInStock := dayCount(r.DaysInStock)

		zone := classifier.ComputeZone(daysAssigned, daysInStock, classifier.Class(r.Class), cfg, matrix)
		validation := classifier.ValidateCode(r.ObservationCode, classifier.Class(r.Class), zone, matrix)

		views = append(views, RecordView{
			Record:       r,
			DaysAssigned: daysAssigned,
			DaysInStock:  daysInStock,
			Difference:   zone.Difference,
			Sequence:     zone.SequenceLabel(),
			HoldStock:    zone.HoldStock,
			Zone:         zone.Label(),
			ZoneDetail:   zone.Description,
			CodeValid:    validation.Valid,
			CodeStatus:   validation.Icon + " " + validation.Message,
			Suspicious:   flagged[strings.TrimSpace(r.Operation)],
		})
	}
	return views
}
