package domain

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one atomic validation result.
type Finding struct {
	Check    string
	Severity Severity
	Message  string
}
