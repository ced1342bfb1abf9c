package detection

import "github.com/navigara/navigara-backend/internal/org_network_analysis/domain"

// Options tunes the detectors for one run.
type Options struct {
	HubDegree int
}

const DefaultHubDegree = 4

type Detector interface {
	Name() string
	Detect(r *domain.AnalysisResult, opt Options) ([]domain.Detection, error)
}
