package solver

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/process"
	"github.com/rfielding/modalmu/transformer"
)

type rooted struct {
	process.System
	initial string
}

func (r rooted) Initial() string {
	return r.initial
}

// Check normalizes and numbers f, expands sys and solves the dependency
// graph. Each call is an independent session with its own decision diagram.
func Check(sys process.System, f formula.Formula, options ...Option) (*Result, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	log := cfg.log.WithField("session", uuid.New().String())

	idx, err := formula.Number(formula.NNF(f))
	if err != nil {
		return nil, err
	}
	if cfg.initial != "" {
		sys = rooted{System: sys, initial: cfg.initial}
	}
	pg, err := process.Expand(sys)
	if err != nil {
		return nil, err
	}
	m, err := transformer.New(idx.Len(), idx.Order(),
		transformer.NodeSize(cfg.nodesize), transformer.CacheSize(cfg.cachesize))
	if err != nil {
		return nil, errors.Wrap(err, "creating transformer manager")
	}
	g, err := Build(m, pg, idx)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"formula":     f.String(),
		"subformulas": idx.Len(),
		"blocks":      len(idx.Blocks),
		"states":      pg.Len(),
	}).Debug("dependency graph built")

	res, err := Solve(g, with(options, WithLogger(log))...)
	if err != nil {
		return nil, err
	}
	cfg.metrics.observe(time.Since(start))
	log.WithFields(logrus.Fields{
		"initial":     sys.Initial(),
		"holds":       res.Verdict(),
		"evaluations": res.Stats.Evaluations,
		"updates":     res.Stats.Updates,
		"elapsed":     time.Since(start),
	}).Info("check finished")
	return res, nil
}

// Satisfies reports whether process initial of sys satisfies f.
func Satisfies(sys process.System, f formula.Formula, initial string, options ...Option) (bool, error) {
	res, err := Check(sys, f, with(options, WithInitial(initial))...)
	if err != nil {
		return false, err
	}
	return res.Verdict(), nil
}
