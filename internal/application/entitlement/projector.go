package entitlement

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/work"
)

const defaultProjectionConcurrency = 8

// FeatureResolver resolves a single feature for a viewer.
type FeatureResolver interface {
	Resolve(ctx context.Context, viewer *work.Viewer, feature entitlement.Feature) entitlement.Result
}

// gatedField ties a record field to the feature that owns it.
type gatedField struct {
	feature entitlement.Feature
	copy    func(dst *work.RedactedWork, src *work.Work)
}

var gatedFields = []gatedField{
	{entitlement.FeatureViewPrompt, func(dst *work.RedactedWork, src *work.Work) {
		dst.Prompt = cloneString(src.Prompt)
	}},
	{entitlement.FeatureViewSource, func(dst *work.RedactedWork, src *work.Work) {
		dst.RepositoryURL = cloneString(src.RepositoryURL)
	}},
}

// Projection is the outcome of projecting one record for one viewer.
type Projection struct {
	Visible bool
	Work    work.RedactedWork
}

// Projector applies the record-level gate and field-level redaction.
type Projector struct {
	resolver    FeatureResolver
	concurrency int
}

// NewProjector creates a projector. concurrency bounds ProjectList fan-out.
func NewProjector(resolver FeatureResolver, concurrency int) *Projector {
	if concurrency <= 0 {
		concurrency = defaultProjectionConcurrency
	}
	return &Projector{resolver: resolver, concurrency: concurrency}
}

// Project redacts w for viewer. The only error is work.ErrMissingVisibility.
func (p *Projector) Project(ctx context.Context, w *work.Work, viewer *work.Viewer) (Projection, error) {
	if w == nil || w.Visibility == "" {
		return Projection{}, work.ErrMissingVisibility
	}

	if viewer.IsAdmin() || viewer.IsAuthorOf(w) {
		return Projection{Visible: true, Work: work.Full(w)}, nil
	}
	if w.Visibility != work.VisibilityPublic {
		return Projection{}, nil
	}

	out := work.Public(w)
	for _, g := range gatedFields {
		if p.resolver.Resolve(ctx, viewer, g.feature).Status == entitlement.StatusVisible {
			g.copy(&out, w)
		}
	}
	return Projection{Visible: true, Work: out}, nil
}

// ProjectList projects every record concurrently, drops the invisible ones
// and keeps input order.
func (p *Projector) ProjectList(ctx context.Context, works []*work.Work, viewer *work.Viewer) ([]work.RedactedWork, error) {
	projections := make([]Projection, len(works))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, w := range works {
		g.Go(func() error {
			proj, err := p.Project(gctx, w, viewer)
			if err != nil {
				return err
			}
			projections[i] = proj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]work.RedactedWork, 0, len(works))
	for _, proj := range projections {
		if proj.Visible {
			out = append(out, proj.Work)
		}
	}
	return out, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
