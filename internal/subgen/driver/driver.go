// Package driver orchestrates one generation pass: classify, derive, assemble
// and emit each target method, then commit the collector. A driver instance
// owns its registry and report exclusively; there is no shared state across
// passes and no mid-pass abort.
package driver

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crucible-vm/crucible/internal/subgen/assemble"
	generrors "github.com/crucible-vm/crucible/internal/subgen/errors"
	"github.com/crucible-vm/crucible/internal/subgen/model"
	"github.com/crucible-vm/crucible/internal/subgen/registry"
	"github.com/crucible-vm/crucible/internal/subgen/sink"
)

// State is the lifecycle phase of a generation pass.
type State int

const (
	// StateInitializing means the pass is bound but has processed nothing.
	StateInitializing State = iota
	// StateProcessing means at least one round of target methods ran.
	StateProcessing
	// StateCommitted is terminal: the collector is closed, no further
	// processing is accepted.
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateProcessing:
		return "processing"
	case StateCommitted:
		return "committed"
	}
	return "unknown"
}

// DefaultCollectorName is the identifier of the aggregate registry artifact.
const DefaultCollectorName = "SubstitutorCollector"

// Options configure a generation pass.
type Options struct {
	// Flavor selects the generator flavor.
	Flavor assemble.Flavor
	// Sink receives the artifacts.
	Sink sink.Sink
	// PackageName is the package artifacts are generated into.
	PackageName string
	// TargetImport is the import path of the target implementations.
	TargetImport string
	// CollectorName names the aggregate registry artifact.
	CollectorName string
	// AllowCollisions reproduces the legacy behavior for same-identifier
	// overloads: both artifacts are emitted and recorded, the later write
	// winning at the sink. Off by default; collisions are then reported as
	// errors and the colliding method is skipped before emission.
	AllowCollisions bool
	// Logger receives structured pass events. Nil means no logging.
	Logger *zap.Logger
}

// Report is the outcome of one pass: what was emitted, what was skipped, and
// every diagnostic raised along the way. Failures during processing are
// never fatal to the pass; they are surfaced here at commit time.
type Report struct {
	// PassID identifies the pass in logs.
	PassID string `json:"pass_id"`
	// Flavor is the generator flavor that ran.
	Flavor string `json:"flavor"`
	// Emitted lists the artifact identifiers in discovery order.
	Emitted []string `json:"emitted"`
	// Skipped counts target methods that produced no recorded artifact.
	Skipped int `json:"skipped"`
	// Diagnostics carries collision, classification, and emission events.
	Diagnostics generrors.List `json:"diagnostics,omitempty"`
}

// Driver runs one pass from Initializing to Committed.
type Driver struct {
	opts    Options
	asm     *assemble.Assembler
	reg     *registry.Builder
	state   State
	claimed map[string]string
	report  *Report
	log     *zap.Logger
}

// New binds a pass to its flavor and sink. The collector prologue is built
// here, once, at pass start.
func New(opts Options) (*Driver, error) {
	if opts.Flavor == nil {
		return nil, fmt.Errorf("driver: flavor is required")
	}
	if opts.Sink == nil {
		return nil, fmt.Errorf("driver: sink is required")
	}
	// Without the targets import path the adapters' import blocks would
	// reference an empty path and never compile.
	if opts.TargetImport == "" {
		return nil, fmt.Errorf("driver: target import is required")
	}
	if opts.CollectorName == "" {
		opts.CollectorName = DefaultCollectorName
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	asm := assemble.New(opts.Flavor, assemble.Options{
		PackageName:  opts.PackageName,
		TargetImport: opts.TargetImport,
	})
	return &Driver{
		opts:    opts,
		asm:     asm,
		reg:     registry.NewBuilder(asm.PackageName()),
		state:   StateInitializing,
		claimed: make(map[string]string),
		report: &Report{
			PassID: uuid.NewString(),
			Flavor: opts.Flavor.Name(),
		},
		log: log,
	}, nil
}

// State returns the lifecycle phase of the pass.
func (d *Driver) State() State { return d.state }

// Process runs one discovery round. Each method is classified, named,
// assembled, and emitted; per-method emission failures are recorded as
// diagnostics and skipped, and the round continues. Processing after commit
// is a programming error and is rejected.
func (d *Driver) Process(methods []model.TargetMethod) error {
	if d.state == StateCommitted {
		return generrors.NewStateViolation("Process")
	}
	d.state = StateProcessing

	// Uniqueness check over the full set of derived identifiers, this round
	// and everything claimed before, ahead of any emission.
	skip := make(map[int]bool)
	for i := range methods {
		m := &methods[i]
		id := model.AdapterNameFor(m)
		if first, taken := d.claimed[id]; taken {
			if d.opts.AllowCollisions {
				d.log.Warn("identifier collision, last write wins",
					zap.String("identifier", id),
					zap.String("method", m.QualifiedName()),
					zap.String("first", first))
				continue
			}
			d.diag(generrors.NewNameCollision(m.QualifiedName(), id, first))
			skip[i] = true
			continue
		}
		d.claimed[id] = m.QualifiedName()
	}

	for i := range methods {
		m := &methods[i]
		if skip[i] {
			d.report.Skipped++
			continue
		}

		cls := model.Classify(m)
		for _, kind := range cls.DuplicateInjections {
			d.diag(generrors.NewDuplicateInjection(m.QualifiedName(), string(kind)))
		}

		unit := d.asm.Assemble(m)
		if err := d.opts.Sink.Create(unit.Name, unit.Render()); err != nil {
			d.diag(generrors.NewEmitFailed(m.QualifiedName(), unit.Name, err))
			d.report.Skipped++
			continue
		}
		if err := d.reg.Record(unit.Name); err != nil {
			return err
		}
		d.report.Emitted = append(d.report.Emitted, unit.Name)
		d.log.Debug("emitted substitutor",
			zap.String("identifier", unit.Name),
			zap.String("method", m.QualifiedName()))
	}
	return nil
}

// Commit closes the registry, emits the collector artifact, and returns the
// pass report. The pass is terminal afterwards; committing twice is rejected.
func (d *Driver) Commit() (*Report, error) {
	if d.state == StateCommitted {
		return nil, generrors.NewStateViolation("Commit")
	}

	content, err := d.reg.Commit()
	if err != nil {
		return nil, err
	}
	if err := d.opts.Sink.Create(d.opts.CollectorName, content); err != nil {
		d.diag(generrors.NewEmitFailed("", d.opts.CollectorName, err))
	}
	d.state = StateCommitted

	errCount, warnCount := d.report.Diagnostics.Count()
	d.log.Info("generation pass committed",
		zap.String("pass_id", d.report.PassID),
		zap.String("flavor", d.report.Flavor),
		zap.Int("emitted", len(d.report.Emitted)),
		zap.Int("skipped", d.report.Skipped),
		zap.Int("errors", errCount),
		zap.Int("warnings", warnCount))
	return d.report, nil
}

func (d *Driver) diag(e *generrors.GenError) {
	d.report.Diagnostics = append(d.report.Diagnostics, e)
}
