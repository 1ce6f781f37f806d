package cfr

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// MetricsLogger receives periodic metric snapshots during training.
type MetricsLogger interface {
	LogMetrics(iteration int, policyValue, nashConv float64) error
}

// Config controls a single training run.
type Config struct {
	// Iterations is the number of CFR iterations to run. Required.
	Iterations int

	// LogInterval is the number of iterations between metric snapshots
	// handed to Logger. Zero selects the automatic interval
	// max(1, Iterations/10000). Snapshots are disabled entirely when
	// Logger is nil.
	LogInterval int

	// Verbose emits percentage milestones and positive-regret diagnostics
	// at every tenth of the run.
	Verbose bool

	// Logger receives (iteration, policy value, NashConv) triples, in
	// iteration order.
	Logger MetricsLogger
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("iterations must be > 0")
	}

	if c.LogInterval < 0 {
		return errors.New("log interval cannot be negative")
	}

	return nil
}

// Train runs cfg.Iterations CFR iterations, each a full traversal from the
// initial state with unit reach. Metric snapshots are taken on the
// configured interval from an average-strategy copy, so logging never
// observes live accumulators. Train may be called repeatedly on the same
// solver to continue refining the tables.
func (s *Solver[S, A]) Train(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logEvery := cfg.LogInterval
	if logEvery == 0 {
		logEvery = cfg.Iterations / 10000
		if logEvery < 1 {
			logEvery = 1
		}
	}

	milestone := cfg.Iterations / 10
	if milestone < 1 {
		milestone = 1
	}

	for t := 1; t <= cfg.Iterations; t++ {
		v1, _ := s.RunIteration()
		glog.V(2).Infof("iteration %d: root value %v", s.iter, v1)

		if cfg.Logger != nil && t%logEvery == 0 {
			policy := s.AverageStrategy()
			value := ExpectedValue(s.game, policy, Player1)
			conv := NashConv(s.game, policy)
			if err := cfg.Logger.LogMetrics(s.iter, value, conv); err != nil {
				return errors.Wrap(err, "logging metrics")
			}
		}

		if cfg.Verbose && t%milestone == 0 {
			avgPos, maxPos := s.RegretDiagnostics()
			glog.Infof("CFR %d%% complete (iteration %d, %d infosets)",
				100*t/cfg.Iterations, s.iter, len(s.entries))
			glog.Infof("avg pos regret/iter = %.6g, max pos regret/iter = %.6g", avgPos, maxPos)
		}
	}

	return nil
}
