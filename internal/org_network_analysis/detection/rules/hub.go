package rules

import (
	"github.com/navigara/navigara-backend/internal/org_network_analysis/detection"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

type hub struct{}

func (hub) Name() string { return "hub" }

func (hub) Detect(r *domain.AnalysisResult, opt detection.Options) ([]domain.Detection, error) {
	thr := opt.HubDegree
	if thr <= 0 {
		thr = detection.DefaultHubDegree
	}

	var out []domain.Detection
	for _, n := range r.Nodes {
		if n.Degree < thr {
			continue
		}
		out = append(out, domain.Detection{
			Kind:     domain.DetHub,
			Severity: domain.SeverityMedium,
			Title:    "Collaboration hub (single point of failure)",
			Summary:  n.Name + " connects an unusually large share of colleagues",
			Nodes:    []string{n.ID},
			Evidence: domain.Attrs{"degree": n.Degree, "threshold": thr, "centrality": n.Centrality},
		})
	}
	return out, nil
}

func init() { detection.Register(hub{}) }
