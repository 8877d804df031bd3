package api

import "time"

type ValidateRequest struct {
	Configuration map[string]string `json:"configuration"`
	Verbose       bool              `json:"verbose"`
}

type ValidationCounts struct {
	Errors       int `json:"errors" yaml:"errors"`
	Warnings     int `json:"warnings" yaml:"warnings"`
	InfoMessages int `json:"info_messages" yaml:"info_messages"`
}

// ValidationReport is the machine-readable outcome of one validation run.
// Configuration is empty unless the run was verbose.
type ValidationReport struct {
	Timestamp         time.Time         `json:"timestamp" yaml:"timestamp"`
	TotalVariables    int               `json:"total_variables" yaml:"total_variables"`
	ValidationResults ValidationCounts  `json:"validation_results" yaml:"validation_results"`
	Errors            []string          `json:"errors" yaml:"errors"`
	Warnings          []string          `json:"warnings" yaml:"warnings"`
	InfoMessages      []string          `json:"info_messages" yaml:"info_messages"`
	IsValid           bool              `json:"is_valid" yaml:"is_valid"`
	Configuration     map[string]string `json:"configuration" yaml:"configuration"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
