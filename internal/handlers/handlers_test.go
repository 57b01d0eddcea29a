package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dealertrack/internal/database"
	"dealertrack/internal/models"
	"dealertrack/internal/pipeline"
	"dealertrack/internal/runs"
	"dealertrack/internal/store"
)

var (
	testDB     *gorm.DB
	router     *gin.Engine
	runStore   *runs.Store
	testAlerts *capturingPublisher
)

// capturingPublisher records alerts instead of publishing them.
type capturingPublisher struct {
	published []models.OperationStats
}

func (p *capturingPublisher) SuspiciousOperation(stats models.OperationStats) error {
	p.published = append(p.published, stats)
	return nil
}

func (p *capturingPublisher) Close() {}

// TestMain sets up the test database and router, runs tests, and then tears down.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("Failed to migrate test database schema: %v", err)
	}
	database.DB = testDB

	runStore = runs.NewStore()
	testAlerts = &capturingPublisher{}
	handler := New(store.New(testDB), runStore, pipeline.NewProcessor(), testAlerts)

	router = gin.Default()
	RegisterRoutes(router, handler)

	exitCode := m.Run()

	sqlDB, err := testDB.DB()
	if err == nil {
		sqlDB.Close()
	} else {
		log.Printf("Error getting DB for teardown: %v", err)
	}
	os.Exit(exitCode)
}

func resetState() {
	for _, table := range []string{"zone_durations", "code_matrix_entries", "executive_assignments", "observation_changes", "operation_stats"} {
		if err := testDB.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("Failed to clear %s table: %v", table, err)
		}
	}
	if err := database.SeedDefaults(testDB); err != nil {
		log.Fatalf("Failed to reseed defaults: %v", err)
	}
	testAlerts.published = nil
}

func performJSON(method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// salesExport builds a sales export fixture: eight banner rows, a header
// row, then the given data rows.
func salesExport(rows ...[]string) [][]string {
	header := []string{"Nº Fábrica", "Operación", "Vendedor", "Cliente", "Total Señas", "Usa.Pte.Pgo", "Créd. Bco.", "Pcio.Vta.Tot", "Días Asig", "Días Stock", "Observaciones (Asig.Uni)"}
	out := [][]string{{"LISTADO GENERAL DE UNIDADES"}}
	for i := 0; i < 7; i++ {
		out = append(out, []string{""})
	}
	out = append(out, header)
	out = append(out, rows...)
	return out
}

func logisticsExport(rows ...[2]string) [][]string {
	out := [][]string{{"operac"}}
	for _, r := range rows {
		row := make([]string, 12)
		row[0] = r[0]
		row[11] = r[1]
		out = append(out, row)
	}
	return out
}

func TestGetZoneConfig(t *testing.T) {
	resetState()

	w := performJSON("GET", "/api/v1/observations/zone-config", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var zones []models.ZoneDuration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &zones))
	require.Len(t, zones, 3)
	assert.Equal(t, 1, zones[0].Zone)
	assert.Equal(t, 5, zones[0].StandardDays)
	assert.Equal(t, 3, zones[2].Zone)
	assert.Equal(t, 15, zones[2].StandardDays)
}

func TestSaveZoneConfig(t *testing.T) {
	resetState()

	t.Run("upserts existing zones", func(t *testing.T) {
		payload := models.SaveZoneConfigRequest{Zones: []models.ZoneDuration{
			{Zone: 1, StandardDays: 7, DeviationDays: 2},
			{Zone: 2, StandardDays: 12, DeviationDays: 4},
			{Zone: 3, StandardDays: 20, DeviationDays: 6},
		}}
		w := performJSON("POST", "/api/v1/observations/zone-config", payload)
		assert.Equal(t, http.StatusOK, w.Code)

		var zones []models.ZoneDuration
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &zones))
		require.Len(t, zones, 3)
		assert.Equal(t, 7, zones[0].StandardDays)
		assert.Equal(t, 12, zones[1].StandardDays)
	})

	t.Run("rejects duplicate zones", func(t *testing.T) {
		payload := models.SaveZoneConfigRequest{Zones: []models.ZoneDuration{
			{Zone: 1, StandardDays: 5},
			{Zone: 1, StandardDays: 9},
		}}
		w := performJSON("POST", "/api/v1/observations/zone-config", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects zone out of range", func(t *testing.T) {
		payload := models.SaveZoneConfigRequest{Zones: []models.ZoneDuration{
			{Zone: 5, StandardDays: 5},
		}}
		w := performJSON("POST", "/api/v1/observations/zone-config", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetCodeMatrix(t *testing.T) {
	resetState()

	w := performJSON("GET", "/api/v1/observations/code-matrix", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var entries []models.CodeMatrixEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 17)
	assert.Equal(t, "CLASE A", entries[0].Class)
	assert.Equal(t, 1, entries[0].Zone)
}

func TestSaveCodeMatrix(t *testing.T) {
	resetState()

	t.Run("replaces the matrix wholesale", func(t *testing.T) {
		payload := models.SaveCodeMatrixRequest{Entries: []models.CodeMatrixEntry{
			{Class: "CLASE A", Zone: 1, Codes: "1,9"},
			{Class: "CLASE A", Zone: 2, Codes: "2", IsArrivalZone: true},
		}}
		w := performJSON("POST", "/api/v1/observations/code-matrix", payload)
		assert.Equal(t, http.StatusOK, w.Code)

		var entries []models.CodeMatrixEntry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "1,9", entries[0].Codes)
		assert.True(t, entries[1].IsArrivalZone)
	})

	t.Run("rejects two arrival zones for one class", func(t *testing.T) {
		payload := models.SaveCodeMatrixRequest{Entries: []models.CodeMatrixEntry{
			{Class: "CLASE A", Zone: 1, Codes: "1", IsArrivalZone: true},
			{Class: "CLASE A", Zone: 2, Codes: "2", IsArrivalZone: true},
		}}
		w := performJSON("POST", "/api/v1/observations/code-matrix", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects an entry without class", func(t *testing.T) {
		payload := models.SaveCodeMatrixRequest{Entries: []models.CodeMatrixEntry{
			{Zone: 1, Codes: "1"},
		}}
		w := performJSON("POST", "/api/v1/observations/code-matrix", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExecutivesLifecycle(t *testing.T) {
	resetState()

	payload := models.SaveExecutivesRequest{Assignments: []models.ExecutiveAssignment{
		{Salesperson: "ARROYO, JAVIER", Executive: "NACHO"},
		{Salesperson: "GOMEZ, ANA", Executive: "PEDRO"},
	}}
	w := performJSON("PUT", "/api/v1/executives", payload)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON("GET", "/api/v1/executives", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var assignments []models.ExecutiveAssignment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assignments))
	require.Len(t, assignments, 2)
	assert.Equal(t, "ARROYO, JAVIER", assignments[0].Salesperson)

	w = performJSON("DELETE", "/api/v1/executives/GOMEZ, ANA", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performJSON("DELETE", "/api/v1/executives/GOMEZ, ANA", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProcessRunLifecycle(t *testing.T) {
	resetState()

	mapping := models.SaveExecutivesRequest{Assignments: []models.ExecutiveAssignment{
		{Salesperson: "ARROYO, JAVIER", Executive: "NACHO"},
	}}
	w := performJSON("PUT", "/api/v1/executives", mapping)
	require.Equal(t, http.StatusOK, w.Code)

	process := models.ProcessRequest{
		PrimaryRows: salesExport(
			[]string{"F1", "1234", "ARROYO, JAVIER", "PEREZ, JUAN", "20.000", "", "30.000", "100.000", "3", "0", "6"},
			[]string{"F2", "66.539", "LOPEZ, MARIA", "DIAZ, SOFIA", "", "", "", "", "", "", ""},
		),
		SecondaryRows: logisticsExport([2]string{"1.234", "Shelf 4"}),
	}
	w = performJSON("POST", "/api/v1/process", process)
	require.Equal(t, http.StatusCreated, w.Code)

	var created ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.RunID)
	assert.Equal(t, 2, created.Stats.TotalRows)
	assert.Equal(t, 1, created.Stats.ExecutivesAssigned)
	assert.Equal(t, 1, created.Stats.LocationsFound)

	t.Run("records are enriched and filterable", func(t *testing.T) {
		w := performJSON("GET", fmt.Sprintf("/api/v1/runs/%s/records?executive=NACHO", created.RunID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp RunRecordsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
		require.Equal(t, 1, resp.Filtered)

		view := resp.Records[0]
		assert.Equal(t, "1234", view.Record.Operation)
		assert.Equal(t, "NACHO", view.Record.Executive)
		assert.Equal(t, "Shelf 4", view.Record.FolderLocation)
		assert.Equal(t, "CLASE C", view.Record.Class)
		assert.Equal(t, "1", view.Zone, "3 assigned days stay in zone 1 with default config")
		require.NotNil(t, view.CodeValid)
		assert.True(t, *view.CodeValid, "code 6 is allowed for CLASE C in zone 1")
	})

	t.Run("stats aggregate per class and executive", func(t *testing.T) {
		w := performJSON("GET", fmt.Sprintf("/api/v1/runs/%s/stats", created.RunID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp RunStatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Aggregates.PerClass["CLASE C"])
		assert.Equal(t, 1, resp.Aggregates.PerClass["CLASE X"])
		assert.Equal(t, 1, resp.Aggregates.PerExecutive["NACHO"])
	})

	t.Run("export produces the processed CSV", func(t *testing.T) {
		w := performJSON("GET", fmt.Sprintf("/api/v1/runs/%s/export", created.RunID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "SIAC_Procesado_")
		assert.Contains(t, w.Body.String(), "Operación")
		assert.Contains(t, w.Body.String(), "Shelf 4")
	})

	t.Run("delete removes the run", func(t *testing.T) {
		w := performJSON("DELETE", "/api/v1/runs/"+created.RunID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = performJSON("GET", fmt.Sprintf("/api/v1/runs/%s/records", created.RunID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProcessRejectsEmptySources(t *testing.T) {
	resetState()

	w := performJSON("POST", "/api/v1/process", models.ProcessRequest{
		PrimaryRows:   [][]string{},
		SecondaryRows: logisticsExport(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON("POST", "/api/v1/process", models.ProcessRequest{
		PrimaryRows:   salesExport(),
		SecondaryRows: [][]string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterChangeAndStats(t *testing.T) {
	resetState()

	zone3, zone1, zone2 := 3, 1, 2

	w := performJSON("POST", "/api/v1/observations/changes", models.RegisterChangeRequest{
		Operation: "66539", PreviousCode: "0", NewCode: "5", PreviousZone: &zone3, NewZone: &zone1, Executive: "NACHO",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var first RegisterChangeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.Regression)
	assert.False(t, first.Stats.Suspicious, "one regression is not suspicious yet")
	assert.Empty(t, testAlerts.published)

	w = performJSON("POST", "/api/v1/observations/changes", models.RegisterChangeRequest{
		Operation: "66539", PreviousCode: "5", NewCode: "3", PreviousZone: &zone3, NewZone: &zone2, Executive: "NACHO",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var second RegisterChangeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.True(t, second.Stats.Suspicious, "a second regression flags the operation")
	require.Len(t, testAlerts.published, 1, "the suspicious transition publishes exactly one alert")
	assert.Equal(t, "66539", testAlerts.published[0].Operation)

	t.Run("forward move is not a regression", func(t *testing.T) {
		w := performJSON("POST", "/api/v1/observations/changes", models.RegisterChangeRequest{
			Operation: "66539", PreviousCode: "3", NewCode: "4", PreviousZone: &zone1, NewZone: &zone3,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var resp RegisterChangeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Regression)
		assert.Equal(t, 3, resp.Stats.ChangeCount)
		assert.Equal(t, 2, resp.Stats.RegressionCount)
		assert.Len(t, testAlerts.published, 1, "already-flagged operations do not alert again")
	})

	t.Run("stats endpoint", func(t *testing.T) {
		w := performJSON("GET", "/api/v1/observations/stats/66539", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats models.OperationStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 3, stats.ChangeCount)
		assert.True(t, stats.Suspicious)
	})

	t.Run("unknown operation returns zero counts", func(t *testing.T) {
		w := performJSON("GET", "/api/v1/observations/stats/99999", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats models.OperationStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 0, stats.ChangeCount)
		assert.False(t, stats.Suspicious)
	})
}

func TestMissingRunIs404(t *testing.T) {
	resetState()
	w := performJSON("GET", "/api/v1/runs/does-not-exist/records", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = performJSON("GET", "/api/v1/runs/does-not-exist/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
