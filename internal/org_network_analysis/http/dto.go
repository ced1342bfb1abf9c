package http

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/graph/export"
)

// Request lists stay raw: they may arrive as arrays or as JSON text, and the
// parser decides how to read them. The camelCase keys are what the existing
// UI sends; the snake_case keys are the documented English aliases.

type LoadCustomGraphRequest struct {
	PegawaiData    json.RawMessage `json:"pegawaiData"`
	Persons        json.RawMessage `json:"persons"`
	KolaborasiData json.RawMessage `json:"kolaborasiData"`
	Collaborations json.RawMessage `json:"collaborations"`
}

func (r LoadCustomGraphRequest) persons() []byte { return firstRaw(r.PegawaiData, r.Persons) }
func (r LoadCustomGraphRequest) collaborations() []byte {
	return firstRaw(r.KolaborasiData, r.Collaborations)
}

type SimulateMoveRequest struct {
	PegawaiID      json.RawMessage `json:"pegawaiId"`
	PersonID       json.RawMessage `json:"person_id"`
	TargetUnit     string          `json:"targetUnit"`
	TargetUnitAlt  string          `json:"target_unit"`
	PegawaiList    json.RawMessage `json:"pegawaiList"`
	Persons        json.RawMessage `json:"persons"`
	KolaborasiList json.RawMessage `json:"kolaborasiList"`
	Collaborations json.RawMessage `json:"collaborations"`
}

func (r SimulateMoveRequest) personID() string {
	return idString(firstRaw(r.PegawaiID, r.PersonID))
}

func (r SimulateMoveRequest) targetUnit() string {
	if r.TargetUnit != "" {
		return r.TargetUnit
	}
	return r.TargetUnitAlt
}

type SnapshotRequest struct {
	Pegawai        json.RawMessage `json:"pegawai"`
	Persons        json.RawMessage `json:"persons"`
	Kolaborasi     json.RawMessage `json:"kolaborasi"`
	Collaborations json.RawMessage `json:"collaborations"`
}

// SimulationResponse is the flow payload of the hypothetical organisation
// plus the delta report.
type SimulationResponse struct {
	export.FlowGraph
	Report      string  `json:"report"`
	Impact      float64 `json:"impact"`
	PersonFound bool    `json:"person_found"`
}

type InsightsResponse struct {
	Detections []domain.Detection `json:"detections"`
}

type HistoryResponse struct {
	Logs []domain.AnalysisLog `json:"logs"`
}

func firstRaw(candidates ...json.RawMessage) []byte {
	for _, c := range candidates {
		t := bytes.TrimSpace(c)
		if len(t) > 0 && !bytes.Equal(t, []byte("null")) {
			return c
		}
	}
	return nil
}

// idString accepts "3" as well as 3.
func idString(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String()
		}
	}
	return ""
}
