package types

// Severity levels shared by todos and findings. Todos use None for
// "no severity assigned"; findings use NotApplicable instead.
const (
	SeverityCritical      = "Critical"
	SeverityHigh          = "High"
	SeverityMedium        = "Medium"
	SeverityLow           = "Low"
	SeverityInformational = "Informational"
	SeverityNone          = "None"
	SeverityNotApplicable = "NotApplicable"
)

// validTodoSeverities is the closed set accepted on todo records.
var validTodoSeverities = map[string]bool{
	SeverityCritical:      true,
	SeverityHigh:          true,
	SeverityMedium:        true,
	SeverityLow:           true,
	SeverityInformational: true,
	SeverityNone:          true,
}

// validFindingSeverities is the closed set accepted on finding records.
var validFindingSeverities = map[string]bool{
	SeverityCritical:      true,
	SeverityHigh:          true,
	SeverityMedium:        true,
	SeverityLow:           true,
	SeverityInformational: true,
	SeverityNotApplicable: true,
}

// findingSeverityRank is the fixed total order used when sorting findings
// by severity. Lower rank sorts first.
var findingSeverityRank = map[string]int{
	SeverityCritical:      0,
	SeverityHigh:          1,
	SeverityMedium:        2,
	SeverityLow:           3,
	SeverityInformational: 4,
	SeverityNotApplicable: 5,
}

// FindingSeverityRank returns the sort rank for a finding severity.
// Unrecognized values sort last.
func FindingSeverityRank(severity string) int {
	if r, ok := findingSeverityRank[severity]; ok {
		return r
	}
	return len(findingSeverityRank)
}
