package rules

import (
	"fmt"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/detection"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

type silos struct{}

func (silos) Name() string { return "silos" }

// Detect reports every component of a fragmented organisation. A single
// connected organisation is not a finding.
func (silos) Detect(r *domain.AnalysisResult, _ detection.Options) ([]domain.Detection, error) {
	if len(r.Silos) < 2 {
		return nil, nil
	}

	var out []domain.Detection
	for i, members := range r.Silos {
		units := unitsOf(r, members)
		sev := domain.SeverityMedium
		if len(members) == 1 {
			sev = domain.SeverityHigh
		}
		out = append(out, domain.Detection{
			Kind:     domain.DetSilo,
			Severity: sev,
			Title:    fmt.Sprintf("Organisational silo #%d", i+1),
			Summary:  fmt.Sprintf("%d people have no collaboration path to the rest of the organisation", len(members)),
			Nodes:    append([]string(nil), members...),
			Evidence: domain.Attrs{"size": len(members), "units": units, "total_silos": len(r.Silos)},
		})
	}
	return out, nil
}

func unitsOf(r *domain.AnalysisResult, ids []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range ids {
		n := r.Node(id)
		if n == nil || seen[n.Unit] {
			continue
		}
		seen[n.Unit] = true
		out = append(out, n.Unit)
	}
	return out
}

func init() { detection.Register(silos{}) }
