// Package pipeline wires the five stage managers over one shared store.
//
// The managers only reference each other's aggregates by id, so the
// composition is a plain struct; workers pick the manager they need.
package pipeline

import (
	"time"

	"hiring-pipeline/internal/common/config"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/export"
	"hiring-pipeline/internal/notify"
	"hiring-pipeline/internal/pipeline/capacity"
	"hiring-pipeline/internal/pipeline/interview"
	"hiring-pipeline/internal/pipeline/offer"
	"hiring-pipeline/internal/pipeline/onboarding"
	"hiring-pipeline/internal/pipeline/shortlist"
	"hiring-pipeline/internal/scoring"
	"hiring-pipeline/internal/store"
)

type Pipeline struct {
	Capacity   *capacity.Guard
	Shortlist  *shortlist.Engine
	Interviews *interview.Pipeline
	Offers     *offer.Lifecycle
	Onboarding *onboarding.Workflow
}

// Collaborators are the external services the managers call out to. A nil
// notifier or exporter disables that side effect.
type Collaborators struct {
	Scorer   scoring.Scorer
	Notifier notify.Notifier
	Exporter export.Exporter
}

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock sets the time source of every manager.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(s store.Store, cfg config.PipelineConfig, c Collaborators, log logger.Logger, opts ...Option) *Pipeline {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if c.Notifier == nil {
		c.Notifier = notify.Noop{}
	}
	if c.Exporter == nil {
		c.Exporter = export.Noop{}
	}

	var (
		capOpts   []capacity.Option
		listOpts  []shortlist.Option
		ivOpts    []interview.Option
		offerOpts []offer.Option
		obOpts    []onboarding.Option
	)
	if o.now != nil {
		capOpts = append(capOpts, capacity.WithClock(o.now))
		listOpts = append(listOpts, shortlist.WithClock(o.now))
		ivOpts = append(ivOpts, interview.WithClock(o.now))
		offerOpts = append(offerOpts, offer.WithClock(o.now))
		obOpts = append(obOpts, onboarding.WithClock(o.now))
	}

	return &Pipeline{
		Capacity:   capacity.NewGuard(s, c.Exporter, cfg.Capacity, log, capOpts...),
		Shortlist:  shortlist.NewEngine(s, c.Scorer, cfg.Shortlist, log, listOpts...),
		Interviews: interview.NewPipeline(s, c.Notifier, log, ivOpts...),
		Offers:     offer.NewLifecycle(s, cfg.Offer, log, offerOpts...),
		Onboarding: onboarding.NewWorkflow(s, cfg.Onboarding, log, obOpts...),
	}
}
