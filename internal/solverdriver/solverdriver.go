// Package solverdriver invokes the external MILP solver as a
// collaborator process, never linked into this binary: exec.Command,
// cmd.Start(), cmd.Process.Wait(), branch on exit code, read the
// external process's output file back in.
package solverdriver

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/rhyrak/degreeplan/internal/lpformat"
	"github.com/rhyrak/degreeplan/pkg/model"
)

// ErrInfeasible is returned when the solver terminates cleanly but
// reports the model has no feasible solution.
var ErrInfeasible = errors.New("solverdriver: model is infeasible or unsolvable")

// ErrSolverInvocation is returned when the solver process itself could
// not be started or exited on an unexpected failure, as opposed to a
// clean infeasibility report.
var ErrSolverInvocation = errors.New("solverdriver: solver invocation failed")

// Config names the external solver binary and the on-disk paths it
// reads/writes.
type Config struct {
	BinaryPath   string
	ModelPath    string
	SolutionPath string
	Timeout      time.Duration
}

// Driver runs one solver invocation at a time; it holds exclusive
// ownership of the solver session for the duration of a solve.
type Driver struct {
	cfg    Config
	logger zerolog.Logger
}

// New returns a Driver that logs through logger, the same
// logger-as-a-field idiom used throughout this module's service layer.
func New(cfg Config, logger zerolog.Logger) *Driver {
	return &Driver{cfg: cfg, logger: logger.With().Str("component", "solverdriver").Logger()}
}

// Solve writes m to cfg.ModelPath, invokes the solver binary against
// it, and on success parses the name=value solution dump back into a
// model.Solution keyed by CourseID. cat is used only to translate
// variable names like "x_3_2" back into (CourseID, term) pairs.
func (d *Driver) Solve(ctx context.Context, m *lpformat.Model, cat *model.Catalog, smax int) (*model.Solution, error) {
	if err := m.WriteFile(d.cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("solverdriver: failed to write model %s: %w", d.cfg.ModelPath, err)
	}
	d.logger.Info().Str("model", d.cfg.ModelPath).Msg("model written")

	runCtx := ctx
	var cancel context.CancelFunc
	if d.cfg.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, d.cfg.BinaryPath, d.cfg.ModelPath, d.cfg.SolutionPath)
	d.logger.Info().Str("exec", cmd.String()).Msg("invoking solver")
	if err := cmd.Start(); err != nil {
		d.logger.Error().Err(err).Msg("failed to start solver process")
		return nil, fmt.Errorf("%w: %v", ErrSolverInvocation, err)
	}
	d.logger.Info().Int("pid", cmd.Process.Pid).Msg("spawned solver process")

	state, err := cmd.Process.Wait()
	if err != nil {
		d.logger.Error().Err(err).Msg("solver process wait failed")
		return nil, fmt.Errorf("%w: %v", ErrSolverInvocation, err)
	}
	d.logger.Info().Int("exit_code", state.ExitCode()).Msg("solver process exited")

	switch state.ExitCode() {
	case 0:
		return d.parseSolution(cat, smax)
	case 2:
		d.logger.Warn().Msg("solver reported infeasibility")
		return nil, ErrInfeasible
	default:
		return nil, fmt.Errorf("%w: solver exited with code %d", ErrSolverInvocation, state.ExitCode())
	}
}

func (d *Driver) parseSolution(cat *model.Catalog, smax int) (*model.Solution, error) {
	values, err := lpformat.ReadSolution(d.cfg.SolutionPath)
	if err != nil {
		return nil, fmt.Errorf("solverdriver: failed to read solution %s: %w", d.cfg.SolutionPath, err)
	}

	terms := make(map[model.CourseID]int)
	for _, c := range cat.Courses() {
		for s := 0; s <= smax; s++ {
			name := fmt.Sprintf("x_%d_%d", c.ID, s)
			v, ok := values[name]
			if ok && lpformat.IsSet(v) {
				terms[c.ID] = s
				break
			}
		}
	}
	d.logger.Info().Int("scheduled_courses", len(terms)).Msg("solution parsed")
	return model.NewSolution(terms), nil
}
