package services

import (
	"context"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/quantumstack/site/internal/clients/backend"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"strings"
	"unicode/utf8"
)

type catalog interface {
	Jobs(ctx context.Context) ([]entities.JobOpening, error)
	Staff(ctx context.Context) ([]entities.StaffMember, error)
	StaffMember(ctx context.Context, slug string) (entities.StaffMember, error)
	Portfolio(ctx context.Context) ([]entities.PortfolioProject, error)
}

type PortfolioGroups struct {
	Featured []entities.PortfolioProject
	All      []entities.PortfolioProject
}

func (g PortfolioGroups) Empty() bool {
	return len(g.Featured) == 0 && len(g.All) == 0
}

// Listings reads the backend collections for page renders. A failed read is
// logged and rendered as an empty collection.
type Listings struct {
	catalog catalog
	policy  *bluemonday.Policy
}

func NewListings(catalog catalog) *Listings {
	return &Listings{catalog: catalog, policy: bluemonday.UGCPolicy()}
}

func (l *Listings) Jobs(ctx context.Context) []entities.JobOpening {
	jobs, err := l.catalog.Jobs(ctx)
	if err != nil {
		logFetchError("jobs", err)
		return []entities.JobOpening{}
	}

	return lo.Map(jobs, func(job entities.JobOpening, _ int) entities.JobOpening {
		job.Description = l.policy.Sanitize(job.Description)
		return job
	})
}

func (l *Listings) Job(ctx context.Context, id string) (entities.JobOpening, bool) {
	return lo.Find(l.Jobs(ctx), func(job entities.JobOpening) bool {
		return job.ID == id
	})
}

func (l *Listings) Staff(ctx context.Context) []entities.StaffMember {
	staff, err := l.catalog.Staff(ctx)
	if err != nil {
		logFetchError("staff", err)
		return []entities.StaffMember{}
	}
	return staff
}

// StaffMember reports false both for unknown slugs and for failed fetches.
func (l *Listings) StaffMember(ctx context.Context, slug string) (entities.StaffMember, bool) {
	member, err := l.catalog.StaffMember(ctx, slug)
	if err != nil {
		if !errors.Is(err, backend.ErrNotFound) {
			logFetchError("staff member "+slug, err)
		}
		return entities.StaffMember{}, false
	}
	return member, true
}

func (l *Listings) Portfolio(ctx context.Context) PortfolioGroups {
	projects, err := l.catalog.Portfolio(ctx)
	if err != nil {
		logFetchError("portfolio", err)
		return PortfolioGroups{}
	}
	return GroupPortfolio(projects)
}

// GroupPortfolio puts pinned projects under Featured and the rest under All, keeping order.
func GroupPortfolio(projects []entities.PortfolioProject) PortfolioGroups {
	featured, rest := lo.Partition(projects, func(p entities.PortfolioProject, _ int) bool {
		return p.Pinned
	})
	return PortfolioGroups{Featured: featured, All: rest}
}

// Excerpt returns the plain text of an HTML fragment cut to at most limit runes.
func Excerpt(html string, limit int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := strings.TrimSpace(string(runes[:limit]))
	if i := strings.LastIndex(cut, " "); i > limit/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

func logFetchError(resource string, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
		Errorf("failed to fetch %s: %v", resource, err)
}
