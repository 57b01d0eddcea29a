package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"dealertrack/internal/models"
)

// DefaultZoneDurations is the factory duration table: zones 1..3 with
// their standard and deviation day counts. Zone 4 is terminal and carries
// no duration.
func DefaultZoneDurations() []models.ZoneDuration {
	return []models.ZoneDuration{
		{Zone: 1, StandardDays: 5, DeviationDays: 2},
		{Zone: 2, StandardDays: 10, DeviationDays: 3},
		{Zone: 3, StandardDays: 15, DeviationDays: 5},
	}
}

// DefaultCodeMatrix is the factory class×zone matrix. Each class has
// exactly one arrival (terminal) zone.
func DefaultCodeMatrix() []models.CodeMatrixEntry {
	return []models.CodeMatrixEntry{
		{Class: "CLASE A", Zone: 1, Codes: "1"},
		{Class: "CLASE A", Zone: 2, Codes: "1"},
		{Class: "CLASE A", Zone: 3, Codes: "0"},
		{Class: "CLASE A", Zone: 4, Codes: "3", IsArrivalZone: true},
		{Class: "CLASE B", Zone: 1, Codes: "2,3"},
		{Class: "CLASE B", Zone: 2, Codes: "3"},
		{Class: "CLASE B", Zone: 3, Codes: "2,3"},
		{Class: "CLASE B", Zone: 4, Codes: "4", IsArrivalZone: true},
		{Class: "CLASE C", Zone: 1, Codes: "6,4"},
		{Class: "CLASE C", Zone: 2, Codes: "4"},
		{Class: "CLASE C", Zone: 3, Codes: "0", IsArrivalZone: true},
		{Class: "CLASE D", Zone: 1, Codes: "5"},
		{Class: "CLASE D", Zone: 2, Codes: "0", IsArrivalZone: true},
		{Class: "CLASE E", Zone: 1, Codes: "8,7"},
		{Class: "CLASE E", Zone: 2, Codes: "7"},
		{Class: "CLASE E", Zone: 3, Codes: "4"},
		{Class: "CLASE E", Zone: 4, Codes: "0", IsArrivalZone: true},
	}
}

// SeedDefaults inserts the factory zone durations and code matrix when the
// corresponding tables are empty. Existing configuration is never touched.
func SeedDefaults(db *gorm.DB) error {
	var zoneCount int64
	if err := db.Model(&models.ZoneDuration{}).Count(&zoneCount).Error; err != nil {
		return fmt.Errorf("counting zone durations: %w", err)
	}
	if zoneCount == 0 {
		zones := DefaultZoneDurations()
		if err := db.Create(&zones).Error; err != nil {
			return fmt.Errorf("seeding zone durations: %w", err)
		}
		log.Println("Seeded default zone duration table")
	}

	var matrixCount int64
	if err := db.Model(&models.CodeMatrixEntry{}).Count(&matrixCount).Error; err != nil {
		return fmt.Errorf("counting code matrix entries: %w", err)
	}
	if matrixCount == 0 {
		entries := DefaultCodeMatrix()
		if err := db.Create(&entries).Error; err != nil {
			return fmt.Errorf("seeding code matrix: %w", err)
		}
		log.Println("Seeded default observation code matrix")
	}

	return nil
}
