package domain

import "time"

// ValidationSummary aggregates the findings of one validation run.
type ValidationSummary struct {
	Timestamp      time.Time
	TotalVariables int
	Errors         []string
	Warnings       []string
	InfoMessages   []string
	IsValid        bool
	// Findings keeps every finding in emission order.
	Findings      []Finding
	Configuration Configuration
}

// NewValidationSummary groups findings by severity. IsValid is true iff no
// finding has error severity.
func NewValidationSummary(ts time.Time, cfg Configuration, findings []Finding) *ValidationSummary {
	s := &ValidationSummary{
		Timestamp:      ts,
		TotalVariables: len(cfg),
		Errors:         []string{},
		Warnings:       []string{},
		InfoMessages:   []string{},
		Findings:       findings,
		Configuration:  cfg,
	}
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			s.Errors = append(s.Errors, f.Message)
		case SeverityWarning:
			s.Warnings = append(s.Warnings, f.Message)
		default:
			s.InfoMessages = append(s.InfoMessages, f.Message)
		}
	}
	s.IsValid = len(s.Errors) == 0
	return s
}

// ProbeStatus classifies the outcome of an external tool probe.
type ProbeStatus string

const (
	ProbeAuthenticated    ProbeStatus = "authenticated"
	ProbeNotInstalled     ProbeStatus = "not_installed"
	ProbeNotAuthenticated ProbeStatus = "not_authenticated"
	ProbeTimeout          ProbeStatus = "timeout"
	ProbeFailed           ProbeStatus = "failed"
)

// ProbeResult is what a tool probe observed about the local Azure tooling.
type ProbeResult struct {
	Status           ProbeStatus
	SubscriptionName string
	SubscriptionID   string
	TenantID         string
	Detail           string
}
