package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/repository"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/service"
)

type stubLogs struct{ rows []domain.AnalysisLog }

func (s *stubLogs) Insert(_ context.Context, l *domain.AnalysisLog) error {
	s.rows = append(s.rows, *l)
	return nil
}

func (s *stubLogs) ListRecent(_ context.Context, limit int) ([]domain.AnalysisLog, error) {
	if limit <= 0 || limit > len(s.rows) {
		limit = len(s.rows)
	}
	return s.rows[:limit], nil
}

func setupRouter(t *testing.T, logs service.LogStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewFileSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"), nil)
	svc := service.NewAnalysisService(store, logs, service.Options{}, nil)

	r := gin.New()
	New(svc).Register(r.Group("/api/nakhoda"))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type flowDoc struct {
	Nodes []struct {
		ID   string         `json:"id"`
		Data map[string]any `json:"data"`
	} `json:"nodes"`
	Edges []struct {
		ID       string `json:"id"`
		Animated bool   `json:"animated"`
	} `json:"edges"`
	Metrics     domain.Summary `json:"metrics"`
	Report      string         `json:"report"`
	Impact      *float64       `json:"impact"`
	PersonFound *bool          `json:"person_found"`
}

func decodeFlow(t *testing.T, w *httptest.ResponseRecorder) flowDoc {
	t.Helper()
	var doc flowDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

func TestGetGraph(t *testing.T) {
	r := setupRouter(t, nil)
	w := do(r, http.MethodGet, "/api/nakhoda/get-graph", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc := decodeFlow(t, w)
	assert.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.Edges, 3)
	assert.True(t, doc.Edges[0].Animated)
	assert.Equal(t, domain.Summary{TotalPeople: 3, TotalCollaborations: 3, AvgEffectiveness: doc.Metrics.AvgEffectiveness, NumSilos: 1}, doc.Metrics)
	assert.Nil(t, doc.Impact)
}

func TestLoadCustomGraph_UIPayload(t *testing.T) {
	r := setupRouter(t, nil)
	body := `{
		"pegawaiData": "[{\"id\":\"1\",\"nama\":\"A\",\"unit\":\"X\",\"skor_potensi\":90,\"skor_kinerja\":90},{\"id\":\"2\",\"nama\":\"B\",\"unit\":\"Y\"}]",
		"kolaborasiData": "[]"
	}`
	w := do(r, http.MethodPost, "/api/nakhoda/load-custom-graph", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	doc := decodeFlow(t, w)
	assert.Equal(t, 2, doc.Metrics.TotalPeople)
	assert.Equal(t, 2, doc.Metrics.NumSilos)
	assert.Equal(t, "A (X)\nSkor: 90", doc.Nodes[0].Data["label"])
}

func TestLoadCustomGraph_EnglishKeys(t *testing.T) {
	r := setupRouter(t, nil)
	body := `{"persons":[{"id":1,"name":"A","unit":"X"},{"id":2,"name":"B","unit":"X"}],"collaborations":[{"source_id":1,"target_id":2}]}`
	w := do(r, http.MethodPost, "/api/nakhoda/load-custom-graph", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decodeFlow(t, w).Metrics.TotalCollaborations)
}

func TestLoadCustomGraph_BadInput(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodPost, "/api/nakhoda/load-custom-graph", `{"pegawaiData": {"id": "1"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid input")

	w = do(r, http.MethodPost, "/api/nakhoda/load-custom-graph", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateMove(t *testing.T) {
	logs := &stubLogs{}
	r := setupRouter(t, logs)

	w := do(r, http.MethodPost, "/api/nakhoda/simulate-move", `{"pegawaiId": 3, "targetUnit": "A"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	doc := decodeFlow(t, w)
	assert.Equal(t, 1, doc.Metrics.NumSilos)
	assert.Contains(t, doc.Report, "Simulation Impact Report:")
	assert.Contains(t, doc.Report, "**Impact: +0.00 Points**")
	require.NotNil(t, doc.PersonFound)
	assert.True(t, *doc.PersonFound)
	require.Len(t, logs.rows, 1)
	assert.Equal(t, "3", logs.rows[0].PersonID)
}

func TestSimulateMove_MissingParameters(t *testing.T) {
	r := setupRouter(t, nil)
	w := do(r, http.MethodPost, "/api/nakhoda/simulate-move", `{"person_id": "3"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "target_unit is required")
}

func TestSimulateMove_UnknownPerson(t *testing.T) {
	r := setupRouter(t, nil)
	w := do(r, http.MethodPost, "/api/nakhoda/simulate-move", `{"person_id": "99", "target_unit": "A"}`)
	require.Equal(t, http.StatusOK, w.Code)

	doc := decodeFlow(t, w)
	require.NotNil(t, doc.PersonFound)
	assert.False(t, *doc.PersonFound)
	assert.Contains(t, doc.Report, "no employee with ID 99 was found")
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodPut, "/api/nakhoda/snapshot",
		`{"pegawai":[{"id":"7","nama":"G","unit":"Z"}],"kolaborasi":[]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"ok":true,"persons":1,"collaborations":0}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/nakhoda/snapshot", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Persons, 1)
	assert.Equal(t, "G", snap.Persons[0].Name)
}

func TestInsightsDotAndReport(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/api/nakhoda/insights", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detections":[]}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/nakhoda/graph.dot", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/vnd.graphviz")
	assert.Contains(t, w.Body.String(), "graph G {")

	w = do(r, http.MethodGet, "/api/nakhoda/report.xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "PK", w.Body.String()[:2])
}

func TestHistory(t *testing.T) {
	disabled := setupRouter(t, nil)
	w := do(disabled, http.MethodGet, "/api/nakhoda/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	logs := &stubLogs{}
	r := setupRouter(t, logs)
	do(r, http.MethodGet, "/api/nakhoda/get-graph", "")
	do(r, http.MethodGet, "/api/nakhoda/get-graph", "")

	w = do(r, http.MethodGet, "/api/nakhoda/history?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Logs, 1)

	w = do(r, http.MethodGet, "/api/nakhoda/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "3", idString([]byte(`3`)))
	assert.Equal(t, "abc", idString([]byte(`"abc"`)))
	assert.Equal(t, "", idString([]byte(`true`)))
	assert.Equal(t, "", idString(nil))
}
