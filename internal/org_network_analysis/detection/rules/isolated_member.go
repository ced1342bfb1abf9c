package rules

import (
	"github.com/navigara/navigara-backend/internal/org_network_analysis/detection"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

type isolated struct{}

func (isolated) Name() string { return "isolated_member" }

func (isolated) Detect(r *domain.AnalysisResult, _ detection.Options) ([]domain.Detection, error) {
	if len(r.Nodes) < 2 {
		return nil, nil
	}

	var out []domain.Detection
	for _, n := range r.Nodes {
		if n.Degree > 0 {
			continue
		}
		out = append(out, domain.Detection{
			Kind:     domain.DetIsolatedMember,
			Severity: domain.SeverityLow,
			Title:    "Isolated member",
			Summary:  n.Name + " has no recorded collaborations",
			Nodes:    []string{n.ID},
			Evidence: domain.Attrs{"unit": n.Unit, "score": n.Score},
		})
	}
	return out, nil
}

func init() { detection.Register(isolated{}) }
