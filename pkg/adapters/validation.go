package adapters

import (
	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

func MapValidationSummaryDomainToApi(s *domain.ValidationSummary, verbose bool) api.ValidationReport {
	report := api.ValidationReport{
		Timestamp:      s.Timestamp,
		TotalVariables: s.TotalVariables,
		ValidationResults: api.ValidationCounts{
			Errors:       len(s.Errors),
			Warnings:     len(s.Warnings),
			InfoMessages: len(s.InfoMessages),
		},
		Errors:        append([]string{}, s.Errors...),
		Warnings:      append([]string{}, s.Warnings...),
		InfoMessages:  append([]string{}, s.InfoMessages...),
		IsValid:       s.IsValid,
		Configuration: map[string]string{},
	}
	if verbose && s.Configuration != nil {
		report.Configuration = s.Configuration.Strings()
	}
	return report
}
