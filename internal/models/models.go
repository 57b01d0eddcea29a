package models

import "time"

// ZoneDuration is one row of the per-zone duration table: the standard
// number of days an order spends in the zone and the tolerated deviation.
// @Description ZoneDuration holds the standard and deviation day counts for one workflow zone.
type ZoneDuration struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	Zone          int       `json:"zone" binding:"required,min=1,max=4" gorm:"not null;uniqueIndex"`
	StandardDays  int       `json:"standard_days" binding:"min=0" gorm:"not null"`
	DeviationDays int       `json:"deviation_days" binding:"min=0" gorm:"not null"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CodeMatrixEntry is one cell of the class×zone observation-code matrix.
// Codes is the comma-separated list of allowed codes; IsArrivalZone marks
// the terminal zone for the class (exactly one entry per class).
// @Description CodeMatrixEntry lists the observation codes allowed for a class/zone pair.
type CodeMatrixEntry struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	Class         string    `json:"class" binding:"required" gorm:"type:varchar(50);not null;uniqueIndex:idx_class_zone"`
	Zone          int       `json:"zone" binding:"required,min=1,max=4" gorm:"not null;uniqueIndex:idx_class_zone"`
	Codes         string    `json:"codes" gorm:"type:varchar(255);not null"`
	IsArrivalZone bool      `json:"is_arrival_zone" gorm:"default:false"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ExecutiveAssignment maps a salesperson name (exactly as exported by the
// sales system) to the executive short-code shown in the processed table.
// @Description ExecutiveAssignment maps a salesperson name to an executive short-code.
type ExecutiveAssignment struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	Salesperson string    `json:"salesperson" binding:"required,min=1,max=255" gorm:"type:varchar(255);not null;unique"`
	Executive   string    `json:"executive" binding:"required,min=1,max=100" gorm:"type:varchar(100);not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ObservationChange is one entry of the observation-code audit trail.
// Regression is set when the new zone is lower than the previous one.
// @Description ObservationChange records a change of observation code on an operation.
type ObservationChange struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Operation    string    `json:"operation" binding:"required" gorm:"type:varchar(50);not null;index"`
	PreviousCode string    `json:"previous_code" gorm:"type:varchar(50)"`
	NewCode      string    `json:"new_code" gorm:"type:varchar(50)"`
	PreviousZone *int      `json:"previous_zone,omitempty"`
	NewZone      *int      `json:"new_zone,omitempty"`
	Executive    string    `json:"executive" gorm:"type:varchar(100)"`
	Regression   bool      `json:"regression" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// OperationStats aggregates the audit trail per operation. Suspicious is
// set once an operation accumulates more than one zone regression.
// @Description OperationStats aggregates observation-code changes for one operation.
type OperationStats struct {
	ID              uint      `json:"-" gorm:"primaryKey"`
	Operation       string    `json:"operation" gorm:"type:varchar(50);not null;unique"`
	ChangeCount     int       `json:"change_count" gorm:"not null;default:0"`
	RegressionCount int       `json:"regression_count" gorm:"not null;default:0"`
	Suspicious      bool      `json:"suspicious" gorm:"default:false"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SaveZoneConfigRequest replaces the zone duration table wholesale.
type SaveZoneConfigRequest struct {
	Zones []ZoneDuration `json:"zones" binding:"required,min=1,dive"`
}

// SaveCodeMatrixRequest replaces the code matrix wholesale.
type SaveCodeMatrixRequest struct {
	Entries []CodeMatrixEntry `json:"entries" binding:"required,min=1,dive"`
}

// SaveExecutivesRequest replaces the salesperson→executive mapping.
type SaveExecutivesRequest struct {
	Assignments []ExecutiveAssignment `json:"assignments" binding:"required,dive"`
}

// ProcessRequest carries the two pre-parsed spreadsheet exports as rows of
// cells: the sales system export (primary) and the logistics export
// (secondary).
type ProcessRequest struct {
	PrimaryRows   [][]string `json:"primary_rows" binding:"required"`
	SecondaryRows [][]string `json:"secondary_rows" binding:"required"`
}

// RegisterChangeRequest records an observation-code change on an operation.
type RegisterChangeRequest struct {
	Operation    string `json:"operation" binding:"required"`
	PreviousCode string `json:"previous_code"`
	NewCode      string `json:"new_code"`
	PreviousZone *int   `json:"previous_zone"`
	NewZone      *int   `json:"new_zone"`
	Executive    string `json:"executive"`
}
