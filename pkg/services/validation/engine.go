package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/services/catalog"
	"github.com/de-tools/ai-foundry/pkg/services/envconfig"
	"github.com/rs/zerolog"
)

const DefaultProbeTimeout = 10 * time.Second

// ToolProbe inspects the local Azure tooling. Implementations must honour ctx
// and report every failure through the returned status instead of an error.
type ToolProbe interface {
	Probe(ctx context.Context) domain.ProbeResult
}

type Option func(*Engine)

// WithProbe enables the external tool check. Without it the check is skipped.
func WithProbe(p ToolProbe) Option {
	return func(e *Engine) {
		e.probe = p
	}
}

func WithProbeTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.probeTimeout = d
		}
	}
}

// WithClock replaces time.Now for the summary timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine evaluates a configuration against a rule catalog. It holds no state
// between runs and is safe for concurrent use.
type Engine struct {
	catalog      *catalog.Catalog
	probe        ToolProbe
	probeTimeout time.Duration
	now          func() time.Time
}

func NewEngine(c *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:      c,
		probeTimeout: DefaultProbeTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type check struct {
	name string
	run  func(ctx context.Context, cfg domain.Configuration, out *findings)
}

func (e *Engine) checks() []check {
	return []check{
		{name: "naming", run: e.checkNaming},
		{name: "region", run: e.checkRegion},
		{name: "sku", run: e.checkSkus},
		{name: "boolean", run: e.checkBooleans},
		{name: "network_access", run: e.checkNetworkAccess},
		{name: "email", run: e.checkEmail},
		{name: "tooling", run: e.checkTooling},
	}
}

// Validate runs every check once, in order, and aggregates their findings.
// A failing check never prevents the others from running.
func (e *Engine) Validate(ctx context.Context, cfg domain.Configuration) *domain.ValidationSummary {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("variables", len(cfg)).Msg("starting configuration validation")

	acc := &findings{}
	for _, c := range e.checks() {
		before := len(acc.items)
		e.runCheck(ctx, c, cfg, acc)
		logger.Debug().
			Str("check", c.name).
			Int("findings", len(acc.items)-before).
			Msg("check completed")
	}

	summary := domain.NewValidationSummary(e.now(), cfg, acc.items)
	logger.Debug().
		Int("errors", len(summary.Errors)).
		Int("warnings", len(summary.Warnings)).
		Int("info", len(summary.InfoMessages)).
		Bool("valid", summary.IsValid).
		Msg("configuration validation finished")
	return summary
}

func (e *Engine) runCheck(ctx context.Context, c check, cfg domain.Configuration, acc *findings) {
	acc.check = c.name
	defer func() {
		if r := recover(); r != nil {
			zerolog.Ctx(ctx).Error().Str("check", c.name).Interface("panic", r).Msg("check aborted")
			acc.warn("Check %q could not complete: %v", c.name, r)
		}
	}()
	c.run(ctx, cfg, acc)
}

// LoadFailure renders a load error as a summary. No rule checks run.
func (e *Engine) LoadFailure(err error) *domain.ValidationSummary {
	acc := &findings{check: "load"}

	var loadErr *envconfig.LoadError
	switch {
	case errors.As(err, &loadErr):
		for _, msg := range loadErr.Messages() {
			acc.add(domain.SeverityError, msg)
		}
	case err != nil:
		acc.add(domain.SeverityError, err.Error())
	}
	if len(acc.items) == 0 {
		acc.add(domain.SeverityError, "Configuration could not be loaded")
	}

	return domain.NewValidationSummary(e.now(), nil, acc.items)
}

type findings struct {
	check string
	items []domain.Finding
}

func (f *findings) add(sev domain.Severity, msg string) {
	f.items = append(f.items, domain.Finding{Check: f.check, Severity: sev, Message: msg})
}

func (f *findings) fail(format string, args ...any) {
	f.add(domain.SeverityError, fmt.Sprintf(format, args...))
}

func (f *findings) warn(format string, args ...any) {
	f.add(domain.SeverityWarning, fmt.Sprintf(format, args...))
}

func (f *findings) info(format string, args ...any) {
	f.add(domain.SeverityInfo, fmt.Sprintf(format, args...))
}
