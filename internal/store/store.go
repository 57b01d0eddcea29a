package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dealertrack/internal/classifier"
	"dealertrack/internal/models"
)

// Store wraps the configuration and audit tables.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ZoneDurations lists the duration table ordered by zone.
func (s *Store) ZoneDurations() ([]models.ZoneDuration, error) {
	var zones []models.ZoneDuration
	if err := s.db.Order("zone asc").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("listing zone durations: %w", err)
	}
	return zones, nil
}

// SaveZoneDurations upserts the duration table one row per zone.
func (s *Store) SaveZoneDurations(zones []models.ZoneDuration) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, z := range zones {
			z.ID = 0
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "zone"}},
				DoUpdates: clause.AssignmentColumns([]string{"standard_days", "deviation_days", "updated_at"}),
			}).Create(&z).Error
			if err != nil {
				return fmt.Errorf("saving zone %d: %w", z.Zone, err)
			}
		}
		return nil
	})
}

// CodeMatrixEntries lists the matrix ordered by class then zone.
func (s *Store) CodeMatrixEntries() ([]models.CodeMatrixEntry, error) {
	var entries []models.CodeMatrixEntry
	if err := s.db.Order("class asc, zone asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing code matrix: %w", err)
	}
	return entries, nil
}

// ReplaceCodeMatrix swaps the whole matrix in one transaction.
func (s *Store) ReplaceCodeMatrix(entries []models.CodeMatrixEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CodeMatrixEntry{}).Error; err != nil {
			return fmt.Errorf("clearing code matrix: %w", err)
		}
		for i := range entries {
			entries[i].ID = 0
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("inserting code matrix: %w", err)
		}
		return nil
	})
}

// ZoneConfig loads the duration table in the classifier's value form.
func (s *Store) ZoneConfig() (classifier.ZoneConfig, error) {
	zones, err := s.ZoneDurations()
	if err != nil {
		return nil, err
	}
	cfg := make(classifier.ZoneConfig, 0, len(zones))
	for _, z := range zones {
		cfg = append(cfg, classifier.ZoneDuration{
			Zone:          z.Zone,
			StandardDays:  z.StandardDays,
			DeviationDays: z.DeviationDays,
		})
	}
	return cfg, nil
}

// CodeMatrix loads the matrix in the classifier's value form.
func (s *Store) CodeMatrix() (classifier.CodeMatrix, error) {
	entries, err := s.CodeMatrixEntries()
	if err != nil {
		return nil, err
	}
	matrix := make(classifier.CodeMatrix, 0, len(entries))
	for _, e := range entries {
		matrix = append(matrix, classifier.CodeRule{
			Class:       classifier.Class(e.Class),
			Zone:        e.Zone,
			Codes:       e.Codes,
			ArrivalZone: e.IsArrivalZone,
		})
	}
	return matrix, nil
}

// Executives returns the salesperson→executive mapping.
func (s *Store) Executives() (map[string]string, error) {
	var assignments []models.ExecutiveAssignment
	if err := s.db.Order("salesperson asc").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("listing executive assignments: %w", err)
	}
	mapping := make(map[string]string, len(assignments))
	for _, a := range assignments {
		mapping[a.Salesperson] = a.Executive
	}
	return mapping, nil
}

// ExecutiveAssignments lists the mapping rows for the API.
func (s *Store) ExecutiveAssignments() ([]models.ExecutiveAssignment, error) {
	var assignments []models.ExecutiveAssignment
	if err := s.db.Order("salesperson asc").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("listing executive assignments: %w", err)
	}
	return assignments, nil
}

// ReplaceExecutives swaps the whole mapping in one transaction.
func (s *Store) ReplaceExecutives(assignments []models.ExecutiveAssignment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ExecutiveAssignment{}).Error; err != nil {
			return fmt.Errorf("clearing executive assignments: %w", err)
		}
		if len(assignments) == 0 {
			return nil
		}
		for i := range assignments {
			assignments[i].ID = 0
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("inserting executive assignments: %w", err)
		}
		return nil
	})
}

// DeleteExecutive removes one salesperson from the mapping.
func (s *Store) DeleteExecutive(salesperson string) error {
	result := s.db.Where("salesperson = ?", salesperson).Delete(&models.ExecutiveAssignment{})
	if result.Error != nil {
		return fmt.Errorf("deleting executive assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecordChange appends an observation-code change to the audit trail and
// updates the per-operation stats. A change is a regression when its new
// zone is lower than its previous zone; an operation becomes suspicious
// once it accumulates more than one regression. The updated stats row is
// returned so callers can alert on the suspicious transition.
func (s *Store) RecordChange(change models.ObservationChange) (models.OperationStats, error) {
	var stats models.OperationStats
	err := s.db.Transaction(func(tx *gorm.DB) error {
		change.ID = uuid.New().String()
		change.Regression = change.PreviousZone != nil && change.NewZone != nil &&
			*change.NewZone < *change.PreviousZone
		if err := tx.Create(&change).Error; err != nil {
			return fmt.Errorf("inserting observation change: %w", err)
		}

		err := tx.Where("operation = ?", change.Operation).First(&stats).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = models.OperationStats{Operation: change.Operation}
		} else if err != nil {
			return fmt.Errorf("loading operation stats: %w", err)
		}

		stats.ChangeCount++
		if change.Regression {
			stats.RegressionCount++
		}
		stats.Suspicious = stats.RegressionCount > 1

		if err := tx.Save(&stats).Error; err != nil {
			return fmt.Errorf("saving operation stats: %w", err)
		}
		return nil
	})
	return stats, err
}

// OperationStats returns the aggregated audit stats for an operation;
// unknown operations yield zero counts rather than an error.
func (s *Store) OperationStats(operation string) (models.OperationStats, error) {
	var stats models.OperationStats
	err := s.db.Where("operation = ?", operation).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.OperationStats{Operation: operation}, nil
	}
	if err != nil {
		return stats, fmt.Errorf("loading operation stats: %w", err)
	}
	return stats, nil
}

// SuspiciousOperations returns the set of operations currently flagged.
func (s *Store) SuspiciousOperations() (map[string]bool, error) {
	var rows []models.OperationStats
	if err := s.db.Where("suspicious = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing suspicious operations: %w", err)
	}
	flagged := make(map[string]bool, len(rows))
	for _, r := range rows {
		flagged[r.Operation] = true
	}
	return flagged, nil
}
