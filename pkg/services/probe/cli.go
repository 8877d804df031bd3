package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

const DefaultCommand = "az"

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands through os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return stdout.Bytes(), fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

// CLIProbe checks that the Azure CLI is installed and logged in.
type CLIProbe struct {
	command string
	run     Runner
}

func NewCLIProbe(command string, run Runner) *CLIProbe {
	if command == "" {
		command = DefaultCommand
	}
	if run == nil {
		run = ExecRunner
	}
	return &CLIProbe{command: command, run: run}
}

type accountShow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TenantID string `json:"tenantId"`
}

func (p *CLIProbe) Probe(ctx context.Context) domain.ProbeResult {
	if _, err := p.run(ctx, p.command, "--version"); err != nil {
		if ctx.Err() != nil {
			return timeout(ctx)
		}
		// exec.ErrNotFound and a broken install are reported the same way.
		return domain.ProbeResult{Status: domain.ProbeNotInstalled, Detail: err.Error()}
	}

	out, err := p.run(ctx, p.command, "account", "show", "--output", "json")
	if err != nil {
		if ctx.Err() != nil {
			return timeout(ctx)
		}
		return domain.ProbeResult{Status: domain.ProbeNotAuthenticated, Detail: err.Error()}
	}

	var account accountShow
	if err := json.Unmarshal(out, &account); err != nil {
		return domain.ProbeResult{Status: domain.ProbeFailed, Detail: fmt.Sprintf("decode account: %v", err)}
	}

	return domain.ProbeResult{
		Status:           domain.ProbeAuthenticated,
		SubscriptionName: account.Name,
		SubscriptionID:   account.ID,
		TenantID:         account.TenantID,
	}
}

func timeout(ctx context.Context) domain.ProbeResult {
	return domain.ProbeResult{Status: domain.ProbeTimeout, Detail: ctx.Err().Error()}
}
