// Package app wires the allocator core to its ambient collaborators:
// config, the revision store, and metrics. It is the only package besides
// cmd/ that is allowed to know about all of internal/alloc,
// internal/infra/sqlite, and internal/infra/metrics at once.
package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/icecake0141/patchwork-beta/internal/alloc"
	"github.com/icecake0141/patchwork-beta/internal/domain"
	"github.com/icecake0141/patchwork-beta/internal/infra/metrics"
	"github.com/icecake0141/patchwork-beta/internal/infra/sqlite"
)

// Planner runs the validate-then-allocate pipeline and optionally persists
// the outcome as a revision.
type Planner struct {
	store   *sqlite.DB
	metrics *metrics.Metrics
}

func NewPlanner(store *sqlite.DB, m *metrics.Metrics) *Planner {
	return &Planner{store: store, metrics: m}
}

// Plan validates and allocates project, without touching the store. Used
// by the dry-run HTTP endpoint and by Save below.
func (p *Planner) Plan(project domain.Project) (domain.AllocationResult, error) {
	if err := alloc.Validate(project); err != nil {
		if p.metrics != nil {
			p.metrics.AllocationsTotal.WithLabelValues("invalid").Inc()
		}
		return domain.AllocationResult{}, err
	}

	started := time.Now()
	result := alloc.Allocate(project)
	took := time.Since(started)

	if p.metrics != nil {
		sessionsByMedia, modulesByType := metrics.Breakdown(result)
		p.metrics.ObserveAllocation("ok", took, sessionsByMedia, modulesByType)
	}
	return result, nil
}

// Save plans project and persists the outcome as a new revision. If a
// revision with the same project ID and an identical input hash already
// exists, that revision is returned instead of creating a duplicate.
func (p *Planner) Save(project domain.Project) (domain.Revision, error) {
	inputHash, err := InputHash(project)
	if err != nil {
		return domain.Revision{}, fmt.Errorf("app: hash project: %w", err)
	}

	if existingID, ok, err := p.store.FindByInputHash(project.ID, inputHash); err != nil {
		return domain.Revision{}, err
	} else if ok {
		return p.store.GetRevision(existingID)
	}

	result, err := p.Plan(project)
	if err != nil {
		return domain.Revision{}, err
	}

	revision := domain.Revision{
		RevisionID: uuid.NewString(),
		ProjectID:  project.ID,
		InputHash:  inputHash,
		CreatedAt:  time.Now().UTC(),
		Result:     result,
	}
	if err := p.store.SaveRevision(revision); err != nil {
		return domain.Revision{}, fmt.Errorf("app: save revision: %w", err)
	}
	return revision, nil
}

// Get returns a previously saved revision.
func (p *Planner) Get(revisionID string) (domain.Revision, error) {
	return p.store.GetRevision(revisionID)
}

// List returns every saved revision's summary, newest first.
func (p *Planner) List() ([]domain.Revision, error) {
	return p.store.ListRevisions()
}
