package store

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dealertrack/internal/classifier"
	"dealertrack/internal/database"
	"dealertrack/internal/models"
)

var testStore *Store

func TestMain(m *testing.M) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate test database schema: %v", err)
	}
	testStore = New(db)

	exitCode := m.Run()

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
	os.Exit(exitCode)
}

func clearTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"zone_durations", "code_matrix_entries", "executive_assignments", "observation_changes", "operation_stats"} {
		require.NoError(t, testStore.db.Exec("DELETE FROM "+table).Error)
	}
}

func TestSaveZoneDurationsUpserts(t *testing.T) {
	clearTables(t)

	require.NoError(t, testStore.SaveZoneDurations([]models.ZoneDuration{
		{Zone: 1, StandardDays: 5, DeviationDays: 2},
		{Zone: 2, StandardDays: 10, DeviationDays: 3},
	}))
	require.NoError(t, testStore.SaveZoneDurations([]models.ZoneDuration{
		{Zone: 1, StandardDays: 8, DeviationDays: 2},
		{Zone: 3, StandardDays: 15, DeviationDays: 5},
	}))

	zones, err := testStore.ZoneDurations()
	require.NoError(t, err)
	require.Len(t, zones, 3)
	assert.Equal(t, 8, zones[0].StandardDays, "existing zone updated in place")
	assert.Equal(t, 10, zones[1].StandardDays)
	assert.Equal(t, 15, zones[2].StandardDays)
}

func TestZoneConfigConversion(t *testing.T) {
	clearTables(t)

	cfg, err := testStore.ZoneConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Loaded(), "empty table yields an unloaded config")

	require.NoError(t, testStore.SaveZoneDurations([]models.ZoneDuration{
		{Zone: 1, StandardDays: 5, DeviationDays: 2},
	}))
	cfg, err = testStore.ZoneConfig()
	require.NoError(t, err)
	require.True(t, cfg.Loaded())
	assert.Equal(t, 5, cfg.StandardDays(1, 0))
}

func TestReplaceCodeMatrix(t *testing.T) {
	clearTables(t)

	require.NoError(t, testStore.ReplaceCodeMatrix([]models.CodeMatrixEntry{
		{Class: "CLASE A", Zone: 1, Codes: "1"},
		{Class: "CLASE A", Zone: 2, Codes: "2", IsArrivalZone: true},
	}))
	require.NoError(t, testStore.ReplaceCodeMatrix([]models.CodeMatrixEntry{
		{Class: "CLASE B", Zone: 1, Codes: "3,4", IsArrivalZone: true},
	}))

	matrix, err := testStore.CodeMatrix()
	require.NoError(t, err)
	require.Len(t, matrix, 1, "replace is wholesale")
	assert.Equal(t, classifier.ClassB, matrix[0].Class)
	assert.Equal(t, 1, matrix.ArrivalZone(classifier.ClassB))
	assert.Equal(t, 4, matrix.ArrivalZone(classifier.ClassA), "missing class falls back to zone 4")
}

func TestExecutives(t *testing.T) {
	clearTables(t)

	require.NoError(t, testStore.ReplaceExecutives([]models.ExecutiveAssignment{
		{Salesperson: "ARROYO, JAVIER", Executive: "NACHO"},
	}))

	mapping, err := testStore.Executives()
	require.NoError(t, err)
	assert.Equal(t, "NACHO", mapping["ARROYO, JAVIER"])

	require.NoError(t, testStore.DeleteExecutive("ARROYO, JAVIER"))
	assert.ErrorIs(t, testStore.DeleteExecutive("ARROYO, JAVIER"), gorm.ErrRecordNotFound)
}

func TestRecordChangeRegressions(t *testing.T) {
	clearTables(t)

	zone1, zone2, zone3 := 1, 2, 3

	stats, err := testStore.RecordChange(models.ObservationChange{
		Operation: "1234", PreviousZone: &zone3, NewZone: &zone1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ChangeCount)
	assert.Equal(t, 1, stats.RegressionCount)
	assert.False(t, stats.Suspicious)

	stats, err = testStore.RecordChange(models.ObservationChange{
		Operation: "1234", PreviousZone: &zone1, NewZone: &zone2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ChangeCount)
	assert.Equal(t, 1, stats.RegressionCount, "moving forward is not a regression")

	stats, err = testStore.RecordChange(models.ObservationChange{
		Operation: "1234", PreviousZone: &zone2, NewZone: &zone1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.RegressionCount)
	assert.True(t, stats.Suspicious, "second regression flags the operation")

	t.Run("missing zones never count as regressions", func(t *testing.T) {
		stats, err := testStore.RecordChange(models.ObservationChange{Operation: "5555", NewZone: &zone1})
		require.NoError(t, err)
		assert.Equal(t, 0, stats.RegressionCount)
	})

	t.Run("lookup", func(t *testing.T) {
		stats, err := testStore.OperationStats("1234")
		require.NoError(t, err)
		assert.Equal(t, 3, stats.ChangeCount)

		flagged, err := testStore.SuspiciousOperations()
		require.NoError(t, err)
		assert.True(t, flagged["1234"])
		assert.False(t, flagged["5555"])

		unknown, err := testStore.OperationStats("0")
		require.NoError(t, err)
		assert.Equal(t, 0, unknown.ChangeCount)
	})
}
