package detection

import (
	"fmt"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

func RunAll(r *domain.AnalysisResult, opt Options) ([]domain.Detection, error) {
	if r == nil {
		return nil, fmt.Errorf("detection: analysis result is nil")
	}
	if opt.HubDegree <= 0 {
		opt.HubDegree = DefaultHubDegree
	}

	out := []domain.Detection{}
	for _, det := range All() {
		ds, err := det.Detect(r, opt)
		if err != nil {
			return nil, fmt.Errorf("detector %q failed: %w", det.Name(), err)
		}
		out = append(out, ds...)
	}
	return out, nil
}
