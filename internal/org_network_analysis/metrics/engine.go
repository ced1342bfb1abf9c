package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/graph"
)

const (
	highTierFloor   = 80.0
	mediumTierFloor = 60.0
)

// Tier buckets a composite score. Both boundaries are exclusive on the lower
// side, so 80 is medium and 60 is low.
func Tier(score float64) domain.Tier {
	switch {
	case score > highTierFloor:
		return domain.TierHigh
	case score > mediumTierFloor:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

// Centrality returns the degree centrality of every member, indexed like
// g.Members(). A graph with fewer than two people has zero centrality.
func Centrality(g *graph.Graph) []float64 {
	n := g.NodeCount()
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	for i := range out {
		out[i] = float64(g.Degree(i)) / float64(n-1)
	}
	return out
}

// Label is the display text the flow UI renders inside a node.
func Label(name, unit string, score float64) string {
	return fmt.Sprintf("%s (%s)\nSkor: %.0f", name, unit, score)
}

// Analyze computes per-node and aggregate metrics. It does not modify g.
func Analyze(g *graph.Graph) *domain.AnalysisResult {
	members := g.Members()
	cent := Centrality(g)

	res := &domain.AnalysisResult{
		Nodes: make([]domain.NodeMetrics, 0, len(members)),
		Edges: make([]domain.EdgeMetrics, 0, g.EdgeCount()),
	}

	eff := make([]float64, 0, len(members))
	for i, m := range members {
		e := m.Score * (1 + cent[i])
		eff = append(eff, e)
		res.Nodes = append(res.Nodes, domain.NodeMetrics{
			ID:            m.ID,
			Label:         Label(m.Name, m.Unit, m.Score),
			Name:          m.Name,
			Unit:          m.Unit,
			Role:          m.Role,
			Score:         m.Score,
			Degree:        g.Degree(i),
			Centrality:    cent[i],
			Effectiveness: e,
			Tier:          Tier(m.Score),
		})
	}

	for _, e := range g.Edges() {
		res.Edges = append(res.Edges, domain.EdgeMetrics{Source: e.Source, Target: e.Target, Label: e.Label})
	}

	res.Silos = g.Components()

	var avg float64
	if len(eff) > 0 {
		avg = stat.Mean(eff, nil)
	}
	res.Metrics = domain.Summary{
		TotalPeople:         g.NodeCount(),
		TotalCollaborations: g.EdgeCount(),
		AvgEffectiveness:    avg,
		NumSilos:            len(res.Silos),
	}
	return res
}
