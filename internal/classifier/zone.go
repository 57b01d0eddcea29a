package classifier

import "fmt"

// ZoneState distinguishes a resolved zone from the two degraded cases.
type ZoneState int

const (
	ZoneResolved ZoneState = iota
	ZoneConfigMissing
	ZoneNoData
)

// ZoneResult is the outcome of the theoretical-zone computation for one
// order. Zone is meaningful only when State is ZoneResolved.
type ZoneResult struct {
	Zone        int
	State       ZoneState
	Difference  int
	Sequence    []int
	HoldStock   bool
	Description string
}

// Resolved reports whether a concrete zone was determined.
func (r ZoneResult) Resolved() bool { return r.State == ZoneResolved }

// Label renders the zone for display, "-" for the degraded cases.
func (r ZoneResult) Label() string {
	if !r.Resolved() {
		return "-"
	}
	return fmt.Sprintf("%d", r.Zone)
}

// SequenceLabel renders the visited-zone sequence, "-" when degraded.
func (r ZoneResult) SequenceLabel() string {
	if !r.Resolved() {
		return "-"
	}
	s := "["
	for i, z := range r.Sequence {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", z)
	}
	return s + "]"
}

// Default standards used when the duration table lacks the entry.
const (
	fallbackStandardZone1 = 5
	fallbackStandardZone2 = 10
)

// ComputeZone determines the theoretical workflow zone for an order from
// its two elapsed-day counters and class, against the loaded duration
// table and code matrix.
//
// The order enters in zone 1 and advances while its assigned-days counter
// exceeds the accumulated standard durations. Zone 2 is visited only when
// the assigned/stock difference exceeds the zone-1 standard; otherwise the
// walk skips straight to zone 3. The result is clamped to the arrival zone
// configured for the class (default 4).
func ComputeZone(daysAssigned, daysStock int, class Class, cfg ZoneConfig, matrix CodeMatrix) ZoneResult {
	if !cfg.Loaded() {
		return ZoneResult{State: ZoneConfigMissing, Description: "Config no cargada"}
	}
	if daysAssigned < 0 {
		daysAssigned = 0
	}
	if daysStock < 0 {
		daysStock = 0
	}
	if daysAssigned == 0 && daysStock == 0 {
		return ZoneResult{State: ZoneNoData, Description: "Sin datos"}
	}

	difference := daysAssigned - daysStock
	arrival := matrix.ArrivalZone(class)
	standardZone1 := cfg.StandardDays(1, fallbackStandardZone1)
	standardZone2 := cfg.StandardDays(2, fallbackStandardZone2)

	passesZone2 := difference > standardZone1

	var holdStock bool
	if class == ClassD {
		holdStock = difference > standardZone1
	} else if passesZone2 {
		holdStock = difference > standardZone1+standardZone2
	}

	sequence := zoneSequence(arrival, passesZone2)

	zone := 1
	accumulated := 0
	for i, d := range cfg {
		accumulated += d.StandardDays
		if daysAssigned <= accumulated {
			break
		}
		switch i {
		case 0:
			if passesZone2 {
				zone = 2
			} else {
				zone = 3
			}
		case 1:
			zone = 3
		case 2:
			zone = 4
		}
	}
	if zone > arrival {
		zone = arrival
	}

	description := fmt.Sprintf("Zona %d", zone)
	if zone == arrival {
		description += " (Arribo)"
	}

	return ZoneResult{
		Zone:        zone,
		State:       ZoneResolved,
		Difference:  difference,
		Sequence:    sequence,
		HoldStock:   holdStock,
		Description: description,
	}
}

func zoneSequence(arrival int, passesZone2 bool) []int {
	switch arrival {
	case 2:
		if passesZone2 {
			return []int{1, 2}
		}
		return []int{1}
	case 3:
		if passesZone2 {
			return []int{1, 2, 3}
		}
		return []int{1, 3}
	default:
		if passesZone2 {
			return []int{1, 2, 3, 4}
		}
		return []int{1, 3, 4}
	}
}
