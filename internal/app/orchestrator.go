// Package app wires the audit pipeline together and manages async audit jobs.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tmarchev/beacon/internal/analyzer"
	"github.com/tmarchev/beacon/internal/crawler"
	"github.com/tmarchev/beacon/internal/dedup"
	"github.com/tmarchev/beacon/internal/fetcher"
	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/narrative"
	"github.com/tmarchev/beacon/internal/report"
	"github.com/tmarchev/beacon/internal/robots"
	"github.com/tmarchev/beacon/internal/scoring"
	"github.com/tmarchev/beacon/internal/store"
	"github.com/tmarchev/beacon/internal/urlutil"
	"github.com/tmarchev/beacon/internal/webclient"
)

var ErrJobNotFound = errors.New("job not found")

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobFailed   JobStatus = "failed"
	JobCanceled JobStatus = "canceled"
)

type JobEventType string

const (
	JobEventStatus JobEventType = "status"
	JobEventResult JobEventType = "result"
)

type JobEvent struct {
	JobID  string       `json:"job_id"`
	Type   JobEventType `json:"type"`
	Status JobStatus    `json:"status,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Job is one asynchronous audit run.
type Job struct {
	ID        string        `json:"id"`
	SeedURL   string        `json:"seed_url"`
	Depth     int           `json:"depth"`
	Status    JobStatus     `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at,omitempty"`
	Events    chan JobEvent `json:"-"`

	// Report is set once the job completes.
	Report *model.SiteReport `json:"report,omitempty"`
}

// Orchestrator runs audits, synchronously or as tracked jobs.
type Orchestrator struct {
	cfg    *Config
	store  *store.Store
	gen    narrative.Generator
	logger logging.Logger

	jobsMu     sync.Mutex
	jobs       map[string]*Job
	jobCancels map[string]context.CancelFunc
}

// NewOrchestrator ties together config, store and the optional narrative
// generator. store and gen may be nil; both degrade gracefully.
func NewOrchestrator(cfg *Config, st *store.Store, gen narrative.Generator, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		cfg:        cfg,
		store:      st,
		gen:        gen,
		logger:     logger,
		jobs:       make(map[string]*Job),
		jobCancels: make(map[string]context.CancelFunc),
	}
}

// RunAudit performs one full audit: crawl, score, aggregate, cluster
// duplicates, narrate and persist. Only crawl-level problems (bad seed,
// canceled context) fail the run; narration and persistence degrade with a
// warning.
func (o *Orchestrator) RunAudit(ctx context.Context, seedURL string, depth int) (*model.SiteReport, error) {
	seed, err := urlutil.Normalize(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	origin, err := urlutil.Origin(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	wc, err := webclient.NewWebClient(o.cfg.WebClientCfg, o.logger)
	if err != nil {
		return nil, fmt.Errorf("create web client: %w", err)
	}
	defer wc.Close()

	policy := robots.FetchPolicy(ctx, wc, origin, o.logger)

	ccfg := o.cfg.CrawlerCfg
	ccfg.MaxDepth = depth

	cr := crawler.New(ccfg,
		fetcher.New(wc, policy, o.logger),
		analyzer.New(o.logger),
		scoring.NewScorer(o.cfg.Weights, o.logger),
		o.logger)

	res, err := cr.Crawl(ctx, seed)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rep := report.NewAggregator(o.logger).Build(seed, depth, res.Pages, res.Failures)
	rep.DuplicateClusters = dedup.NewWithThreshold(o.cfg.DedupThreshold, o.logger).Clusters(res.Pages)

	if o.gen != nil {
		text, err := o.gen.Generate(ctx, rep)
		switch {
		case err == nil:
			rep.Narrative = text
		case errors.Is(err, narrative.ErrNoService):
			// Narration disabled; nothing to report.
		default:
			o.logger.Warn("narrative generation failed, continuing without it",
				logging.Field{Key: "report_id", Value: rep.ID},
				logging.Field{Key: "error", Value: err.Error()})
		}
	}

	if o.store != nil {
		if err := o.store.Save(ctx, rep); err != nil {
			o.logger.Warn("failed to persist audit, report still returned",
				logging.Field{Key: "report_id", Value: rep.ID},
				logging.Field{Key: "error", Value: err.Error()})
		}
	}

	return rep, nil
}

// StartAuditJob runs RunAudit in the background and returns immediately with
// a pending Job. Progress is observable through the job's Events channel and
// GetJob polling.
func (o *Orchestrator) StartAuditJob(ctx context.Context, seedURL string, depth int) (*Job, error) {
	if _, err := urlutil.Normalize(seedURL); err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	jobID := uuid.New().String()
	job := &Job{
		ID:        jobID,
		SeedURL:   seedURL,
		Depth:     depth,
		Status:    JobPending,
		StartedAt: time.Now().UTC(),
		Events:    make(chan JobEvent, 16),
	}

	jobCtx, cancel := context.WithCancel(ctx)

	o.jobsMu.Lock()
	o.jobs[jobID] = job
	o.jobCancels[jobID] = cancel
	snap := *job
	o.jobsMu.Unlock()

	o.emitJobEvent(jobID, JobEvent{JobID: jobID, Type: JobEventStatus, Status: JobPending})

	go func() {
		defer func() {
			o.jobsMu.Lock()
			if j, ok := o.jobs[jobID]; ok {
				j.EndedAt = time.Now().UTC()
			}
			delete(o.jobCancels, jobID)
			j := o.jobs[jobID]
			o.jobsMu.Unlock()

			// Close events so websocket readers terminate cleanly.
			if j != nil && j.Events != nil {
				close(j.Events)
			}
		}()

		o.setJobStatus(jobID, JobRunning, "")
		o.emitJobEvent(jobID, JobEvent{JobID: jobID, Type: JobEventStatus, Status: JobRunning})

		rep, err := o.RunAudit(jobCtx, seedURL, depth)
		if err != nil {
			status := JobFailed
			if jobCtx.Err() != nil {
				status = JobCanceled
				err = jobCtx.Err()
			}
			o.setJobStatus(jobID, status, err.Error())
			o.emitJobEvent(jobID, JobEvent{JobID: jobID, Type: JobEventStatus, Status: status, Error: err.Error()})
			return
		}

		o.jobsMu.Lock()
		if j, ok := o.jobs[jobID]; ok {
			j.Status = JobDone
			j.Report = rep
		}
		o.jobsMu.Unlock()
		o.emitJobEvent(jobID, JobEvent{JobID: jobID, Type: JobEventResult, Status: JobDone})
	}()

	return &snap, nil
}

func (o *Orchestrator) setJobStatus(jobID string, status JobStatus, errMsg string) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if j, ok := o.jobs[jobID]; ok {
		j.Status = status
		j.Error = errMsg
	}
}

func (o *Orchestrator) emitJobEvent(jobID string, ev JobEvent) {
	o.jobsMu.Lock()
	job, ok := o.jobs[jobID]
	o.jobsMu.Unlock()
	if !ok || job.Events == nil {
		return
	}

	// Non-blocking send; drop if the buffer is full.
	select {
	case job.Events <- ev:
	default:
	}
}

// GetJob returns a snapshot of a job by ID, or nil when unknown. The job
// goroutine keeps mutating the live record under the lock, so callers get a
// copy they can read or encode freely.
func (o *Orchestrator) GetJob(jobID string) *Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	j, ok := o.jobs[jobID]
	if !ok {
		return nil
	}
	snap := *j
	return &snap
}

// ListJobs returns snapshots of all known jobs, newest first.
func (o *Orchestrator) ListJobs() []*Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()

	out := make([]*Job, 0, len(o.jobs))
	for _, j := range o.jobs {
		snap := *j
		out = append(out, &snap)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].StartedAt.After(out[k].StartedAt) })
	return out
}

// CancelJob cancels a running job. Unknown or finished jobs are a no-op.
func (o *Orchestrator) CancelJob(jobID string) {
	o.jobsMu.Lock()
	cancel := o.jobCancels[jobID]
	o.jobsMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// DeleteJob cancels and forgets a job.
func (o *Orchestrator) DeleteJob(jobID string) error {
	o.CancelJob(jobID)

	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if _, ok := o.jobs[jobID]; !ok {
		return ErrJobNotFound
	}
	delete(o.jobs, jobID)
	return nil
}

// Store exposes the audit store for read-side handlers. Nil when persistence
// is disabled.
func (o *Orchestrator) Store() *store.Store { return o.store }
