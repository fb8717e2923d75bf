package testsupport

import (
	"context"
	"fmt"

	"github.com/beta3zer0/go-customfields/pkg/renderers/tui"
)

// ScriptedPromptDriver replays canned answers for terminal editor tests.
// Inputs and Selects are consumed in order; Info messages are recorded so
// tests can assert on what a session displayed.
type ScriptedPromptDriver struct {
	Inputs  []string
	Selects []int
	Infos   []string

	inputPos  int
	selectPos int
}

var _ tui.PromptDriver = (*ScriptedPromptDriver)(nil)

func (d *ScriptedPromptDriver) Input(ctx context.Context, cfg tui.InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if d.inputPos >= len(d.Inputs) {
		return "", fmt.Errorf("testsupport: no scripted input left for %q", cfg.Message)
	}
	answer := d.Inputs[d.inputPos]
	d.inputPos++
	if cfg.Validator != nil && answer != "" {
		if err := cfg.Validator(answer); err != nil {
			return "", fmt.Errorf("testsupport: scripted input %q rejected: %w", answer, err)
		}
	}
	return answer, nil
}

func (d *ScriptedPromptDriver) Select(ctx context.Context, cfg tui.SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if d.selectPos >= len(d.Selects) {
		return 0, fmt.Errorf("testsupport: no scripted selection left for %q", cfg.Message)
	}
	pick := d.Selects[d.selectPos]
	d.selectPos++
	if pick < 0 || pick >= len(cfg.Options) {
		return 0, fmt.Errorf("testsupport: scripted selection %d out of range for %q (%d options)", pick, cfg.Message, len(cfg.Options))
	}
	return pick, nil
}

func (d *ScriptedPromptDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.Infos = append(d.Infos, msg)
	return nil
}
