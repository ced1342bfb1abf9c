package export

import "github.com/navigara/navigara-backend/internal/org_network_analysis/domain"

// Tier fill colours shared by the flow payload and the DOT rendering.
var TierColors = map[domain.Tier]string{
	domain.TierHigh:   "#90EE90",
	domain.TierMedium: "#FFD700",
	domain.TierLow:    "#F08080",
}

type FlowGraph struct {
	Nodes   []FlowNode     `json:"nodes"`
	Edges   []FlowEdge     `json:"edges"`
	Metrics domain.Summary `json:"metrics"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type FlowNodeData struct {
	Label      string      `json:"label"`
	Unit       string      `json:"unit"`
	Role       string      `json:"role,omitempty"`
	Score      float64     `json:"score"`
	Tier       domain.Tier `json:"tier"`
	Centrality float64     `json:"centrality"`
}

type FlowStyle struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	WhiteSpace string `json:"whiteSpace"`
	TextAlign  string `json:"textAlign"`
}

type FlowNode struct {
	ID       string       `json:"id"`
	Position Position     `json:"position"`
	Data     FlowNodeData `json:"data"`
	Style    FlowStyle    `json:"style"`
}

type FlowEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Label    string `json:"label"`
	Animated bool   `json:"animated"`
}

// ToFlow converts an analysis into the node/edge payload consumed by the
// react-flow canvas. Positions are left at the origin; the client lays out.
func ToFlow(r *domain.AnalysisResult) FlowGraph {
	if r == nil {
		return FlowGraph{Nodes: []FlowNode{}, Edges: []FlowEdge{}}
	}
	out := FlowGraph{
		Nodes: make([]FlowNode, 0, len(r.Nodes)),
		Edges: make([]FlowEdge, 0, len(r.Edges)),
	}

	for _, n := range r.Nodes {
		out.Nodes = append(out.Nodes, FlowNode{
			ID: n.ID,
			Data: FlowNodeData{
				Label:      n.Label,
				Unit:       n.Unit,
				Role:       n.Role,
				Score:      n.Score,
				Tier:       n.Tier,
				Centrality: n.Centrality,
			},
			Style: FlowStyle{
				Background: TierColors[n.Tier],
				Border:     "1px solid #333",
				WhiteSpace: "pre-line",
				TextAlign:  "center",
			},
		})
	}
	for _, e := range r.Edges {
		out.Edges = append(out.Edges, FlowEdge{
			ID:       "e-" + e.Source + "-" + e.Target,
			Source:   e.Source,
			Target:   e.Target,
			Label:    e.Label,
			Animated: true,
		})
	}
	out.Metrics = r.Metrics
	return out
}
