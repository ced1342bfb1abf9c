package domain

import "time"

const (
	PerformanceWeight = 0.6
	PotentialWeight   = 0.4
	DefaultScore      = 50.0
)

// Person is one employee or candidate under analysis. The JSON keys match
// the snapshot documents the UI already exchanges.
type Person struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"nama" yaml:"nama"`
	Unit             string  `json:"unit" yaml:"unit"`
	Role             string  `json:"jabatan,omitempty" yaml:"jabatan,omitempty"`
	PotentialScore   float64 `json:"skor_potensi" yaml:"skor_potensi"`
	PerformanceScore float64 `json:"skor_kinerja" yaml:"skor_kinerja"`
}

// CompositeScore blends performance (60%) and potential (40%).
func (p Person) CompositeScore() float64 {
	return p.PerformanceScore*PerformanceWeight + p.PotentialScore*PotentialWeight
}

// Collaboration is an undirected working relationship between two people.
type Collaboration struct {
	SourceID     string `json:"source" yaml:"source"`
	TargetID     string `json:"target" yaml:"target"`
	ProjectLabel string `json:"project,omitempty" yaml:"project,omitempty"`
}

type Snapshot struct {
	Persons        []Person        `json:"pegawai" yaml:"pegawai"`
	Collaborations []Collaboration `json:"kolaborasi" yaml:"kolaborasi"`
}

// DefaultSnapshot is seeded into an empty snapshot store.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Persons: []Person{
			{ID: "1", Name: "Anya", Unit: "A", PotentialScore: 90, PerformanceScore: 95},
			{ID: "2", Name: "Budi", Unit: "A", PotentialScore: 95, PerformanceScore: 70},
			{ID: "3", Name: "Citra", Unit: "SDM", PotentialScore: 80, PerformanceScore: 85},
		},
		Collaborations: []Collaboration{
			{SourceID: "1", TargetID: "2"},
			{SourceID: "1", TargetID: "3"},
			{SourceID: "2", TargetID: "3"},
		},
	}
}

type NodeMetrics struct {
	ID            string  `json:"id" yaml:"id"`
	Label         string  `json:"label" yaml:"label"`
	Name          string  `json:"name" yaml:"name"`
	Unit          string  `json:"unit" yaml:"unit"`
	Role          string  `json:"role" yaml:"role"`
	Score         float64 `json:"score" yaml:"score"`
	Degree        int     `json:"degree" yaml:"degree"`
	Centrality    float64 `json:"centrality" yaml:"centrality"`
	Effectiveness float64 `json:"effectiveness" yaml:"effectiveness"`
	Tier          Tier    `json:"tier" yaml:"tier"`
}

type EdgeMetrics struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label" yaml:"label"`
}

type Summary struct {
	TotalPeople         int     `json:"total_people" yaml:"total_people"`
	TotalCollaborations int     `json:"total_collaborations" yaml:"total_collaborations"`
	AvgEffectiveness    float64 `json:"avg_effectiveness" yaml:"avg_effectiveness"`
	NumSilos            int     `json:"num_silos" yaml:"num_silos"`
}

// AnalysisResult is the Metrics Engine output for one graph.
type AnalysisResult struct {
	Nodes   []NodeMetrics `json:"nodes" yaml:"nodes"`
	Edges   []EdgeMetrics `json:"edges" yaml:"edges"`
	Metrics Summary       `json:"metrics" yaml:"metrics"`
	// member ids per connected component, in order of first appearance
	Silos [][]string `json:"silos" yaml:"silos"`
}

// Node returns the metrics for id, or nil.
func (r *AnalysisResult) Node(id string) *NodeMetrics {
	for i := range r.Nodes {
		if r.Nodes[i].ID == id {
			return &r.Nodes[i]
		}
	}
	return nil
}

type SimulationResult struct {
	Result      *AnalysisResult `json:"result"`
	Baseline    *AnalysisResult `json:"baseline"`
	PersonID    string          `json:"person_id"`
	TargetUnit  string          `json:"target_unit"`
	PersonFound bool            `json:"person_found"`
	Impact      float64         `json:"impact"`
	Report      string          `json:"report"`
}

// Warning is a tolerated data-quality condition found while decoding or
// building a graph.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Subject string      `json:"subject,omitempty"`
	Message string      `json:"message"`
}

type Attrs map[string]any

type Detection struct {
	Kind     DetectionKind `json:"kind"`
	Severity Severity      `json:"severity"`
	Title    string        `json:"title"`
	Summary  string        `json:"summary"`
	Nodes    []string      `json:"nodes"`
	Evidence Attrs         `json:"evidence,omitempty"`
}

// AnalysisLog is one persisted row describing an analysis or simulation call.
type AnalysisLog struct {
	ID                  string    `json:"id"`
	Kind                LogKind   `json:"kind"`
	PersonID            string    `json:"person_id,omitempty"`
	TargetUnit          string    `json:"target_unit,omitempty"`
	TotalPeople         int       `json:"total_people"`
	TotalCollaborations int       `json:"total_collaborations"`
	AvgEffectiveness    float64   `json:"avg_effectiveness"`
	NumSilos            int       `json:"num_silos"`
	Impact              *float64  `json:"impact,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}
