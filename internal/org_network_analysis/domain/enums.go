package domain

type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

type DetectionKind string

const (
	DetSilo           DetectionKind = "silo"
	DetIsolatedMember DetectionKind = "isolated_member"
	DetHub            DetectionKind = "hub"
)

// WarningKind names a tolerated data-quality condition.
type WarningKind string

const (
	WarnMissingID              WarningKind = "missing_id"
	WarnMissingScore           WarningKind = "missing_score"
	WarnInvalidScore           WarningKind = "invalid_score"
	WarnScoreOutOfRange        WarningKind = "score_out_of_range"
	WarnMissingEndpoint        WarningKind = "missing_endpoint"
	WarnDuplicateID            WarningKind = "duplicate_id"
	WarnUnknownEndpoint        WarningKind = "unknown_endpoint"
	WarnSelfCollaboration      WarningKind = "self_collaboration"
	WarnDuplicateCollaboration WarningKind = "duplicate_collaboration"
	WarnPersonNotFound         WarningKind = "person_not_found"
)

type LogKind string

const (
	LogBaseline   LogKind = "baseline"
	LogCustom     LogKind = "custom"
	LogSimulation LogKind = "simulation"
	LogRefresh    LogKind = "refresh"
)
