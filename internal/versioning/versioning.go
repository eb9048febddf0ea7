// Package versioning runs the new-version workflow: it finds the current
// plan, asks for a change description and a bump strategy, and writes the
// next plan file cloned from the current one.
package versioning

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pablasso/plankit/internal/lattice"
	"github.com/pablasso/plankit/internal/logging"
	"github.com/pablasso/plankit/internal/plan"
	"github.com/pablasso/plankit/internal/prompt"
	"github.com/pablasso/plankit/internal/tui/styles"
)

var (
	// ErrNoCurrentVersion is returned when the plan directory holds no
	// versioned plan file to start from.
	ErrNoCurrentVersion = errors.New("no current version found, create an initial plan first")
	// ErrEmptyChanges is returned when the change description is blank.
	ErrEmptyChanges = errors.New("change description cannot be empty")
)

// Strategy selects how the target version is derived.
type Strategy string

const (
	StrategyMajor  Strategy = "major"
	StrategyMinor  Strategy = "minor"
	StrategyPatch  Strategy = "patch"
	StrategyCustom Strategy = "custom"
	StrategyAuto   Strategy = "auto"
)

// Strategies lists the strategies in prompt order.
var Strategies = []Strategy{StrategyMajor, StrategyMinor, StrategyPatch, StrategyCustom, StrategyAuto}

var strategyHelp = map[Strategy]string{
	StrategyMajor:  "breaking changes or architectural rework",
	StrategyMinor:  "new backward-compatible features",
	StrategyPatch:  "bug fixes and small improvements",
	StrategyCustom: "enter the version number by hand",
	StrategyAuto:   "detect from the change description",
}

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Strategies {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid version type %q (valid: major, minor, patch, custom, auto)", name)
}

func strategyChoices() []prompt.Choice {
	choices := make([]prompt.Choice, len(Strategies))
	for i, s := range Strategies {
		choices[i] = prompt.Choice{Label: string(s), Description: strategyHelp[s]}
	}
	return choices
}

// Options configures a workflow run.
type Options struct {
	Repo     *plan.Repository
	Prompter prompt.Provider
	// Out receives the user-facing transcript.
	Out    io.Writer
	Logger *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result describes what a run did.
type Result struct {
	Source    plan.VersionFile
	Target    lattice.Version
	Strategy  Strategy
	Path      string
	Cancelled bool
}

// Run executes the workflow. Every precondition is checked before the new
// file is written; a declined confirmation returns a cancelled result and
// no error. An interrupted prompt returns prompt.ErrAborted.
func Run(ctx context.Context, opts Options) (Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	current, ok, err := opts.Repo.Current()
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, ErrNoCurrentVersion
	}
	res := Result{Source: current}
	fmt.Fprintf(out, "Current version: %s\n", styles.SuccessStyle.Render(current.Version.String()))
	logger.Debug("found current plan", "path", current.Path)

	changes, err := opts.Prompter.Ask(ctx, "Describe the changes in this version", "")
	if err != nil {
		return res, err
	}
	changes = strings.TrimSpace(changes)
	if changes == "" {
		return res, ErrEmptyChanges
	}

	idx, err := opts.Prompter.Choose(ctx, "Select the version type", strategyChoices())
	if err != nil {
		return res, err
	}
	res.Strategy = Strategies[idx]

	target, err := deriveTarget(ctx, opts.Prompter, current.Version, res.Strategy, changes, out)
	if err != nil {
		return res, err
	}
	res.Target = target
	fmt.Fprintf(out, "New version: %s\n", styles.SuccessStyle.Render(target.String()))

	if target.Compare(current.Version) <= 0 {
		logger.Warn("target version is not above the current one", "current", current.Version, "target", target)
	}
	if opts.Repo.HasVersion(target) {
		return res, fmt.Errorf("%w: %s", plan.ErrTargetExists, opts.Repo.PathFor(target))
	}

	confirmed, err := opts.Prompter.Confirm(ctx, fmt.Sprintf("Create version %s?", target))
	if err != nil {
		return res, err
	}
	if !confirmed {
		res.Cancelled = true
		fmt.Fprintln(out, styles.WarningStyle.Render("Cancelled."))
		return res, nil
	}

	lock, err := opts.Repo.Lock()
	if err != nil {
		return res, err
	}
	defer releaseLock(lock, logger)

	src, err := opts.Repo.Load(current.Path)
	if err != nil {
		return res, err
	}
	next, err := plan.NextVersion(src, target, changes, now())
	if err != nil {
		return res, err
	}
	data, err := next.Encode()
	if err != nil {
		return res, fmt.Errorf("failed to encode plan %s: %w", target, err)
	}

	res.Path = opts.Repo.PathFor(target)
	if err := opts.Repo.Create(res.Path, data); err != nil {
		return res, err
	}
	logger.Info("created plan", "path", res.Path, "from", current.Path, "bytes", len(data))

	fmt.Fprintf(out, "%s %s\n", styles.SuccessStyle.Render("Created"), res.Path)
	fmt.Fprintln(out, styles.SubtleStyle.Render("Next: edit the new file to add goals and tasks, then run plankit validate."))
	return res, nil
}

// releaseLock releases the directory lock, logging a failure. The plan
// file is already written or abandoned at that point.
func releaseLock(lock *plan.DirLock, logger *log.Logger) {
	if err := lock.Release(); err != nil {
		logger.Warn("failed to release plan directory lock", "path", lock.Path(), "err", err)
	}
}

func deriveTarget(ctx context.Context, p prompt.Provider, current lattice.Version, s Strategy, changes string, out io.Writer) (lattice.Version, error) {
	switch s {
	case StrategyCustom:
		text, err := p.Ask(ctx, "Enter the new version (x.y.z)", "")
		if err != nil {
			return lattice.Version{}, err
		}
		return lattice.Parse(strings.TrimSpace(text))
	case StrategyAuto:
		kind := lattice.Classify(changes)
		fmt.Fprintf(out, "Detected version type: %s\n", styles.WarningStyle.Render(string(kind)))
		return lattice.Bump(current, kind), nil
	default:
		kind, err := lattice.ParseKind(string(s))
		if err != nil {
			return lattice.Version{}, err
		}
		return lattice.Bump(current, kind), nil
	}
}
