package repositories

import (
	"context"
	"github.com/patrickmn/go-cache"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/metrics"
	"golang.org/x/sync/singleflight"
	"time"
)

type catalogSource interface {
	GetJobs(ctx context.Context) ([]entities.JobOpening, error)
	GetStaff(ctx context.Context) ([]entities.StaffMember, error)
	GetStaffMember(ctx context.Context, slug string) (entities.StaffMember, error)
	GetPortfolio(ctx context.Context) ([]entities.PortfolioProject, error)
}

// Revalidation holds how long a fetched response may be reused, per resource.
type Revalidation struct {
	Jobs      time.Duration
	Staff     time.Duration
	Portfolio time.Duration
}

const (
	ResourceJobs        = "jobs"
	ResourceStaff       = "staff"
	ResourceStaffMember = "staff_member"
	ResourcePortfolio   = "portfolio"
)

// Catalog is a read-through cache in front of the backend. Failed fetches are never cached.
type Catalog struct {
	source catalogSource
	ttl    Revalidation
	cache  *cache.Cache
	group  singleflight.Group
}

func NewCatalog(source catalogSource, ttl Revalidation) *Catalog {
	return &Catalog{
		source: source,
		ttl:    ttl,
		cache:  cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (c *Catalog) Jobs(ctx context.Context) ([]entities.JobOpening, error) {
	return cached(ctx, c, ResourceJobs, ResourceJobs, c.ttl.Jobs, c.source.GetJobs)
}

func (c *Catalog) Staff(ctx context.Context) ([]entities.StaffMember, error) {
	return cached(ctx, c, ResourceStaff, ResourceStaff, c.ttl.Staff, c.source.GetStaff)
}

func (c *Catalog) StaffMember(ctx context.Context, slug string) (entities.StaffMember, error) {
	return cached(ctx, c, ResourceStaffMember+":"+slug, ResourceStaffMember, c.ttl.Staff,
		func(ctx context.Context) (entities.StaffMember, error) {
			return c.source.GetStaffMember(ctx, slug)
		})
}

func (c *Catalog) Portfolio(ctx context.Context) ([]entities.PortfolioProject, error) {
	return cached(ctx, c, ResourcePortfolio, ResourcePortfolio, c.ttl.Portfolio, c.source.GetPortfolio)
}

// Invalidate drops every cached response so the next read goes to the backend.
func (c *Catalog) Invalidate() {
	c.cache.Flush()
}

func cached[T any](ctx context.Context, c *Catalog, key, resource string, ttl time.Duration,
	fetch func(ctx context.Context) (T, error)) (T, error) {

	if value, found := c.cache.Get(key); found {
		metrics.BackendFetchesCounter.WithLabelValues(resource, "cached").Inc()
		return value.(T), nil
	}

	// the shared fetch outlives any single caller; the client's own timeout bounds it
	shared := context.WithoutCancel(ctx)
	result := c.group.DoChan(key, func() (any, error) {
		start := time.Now()
		fetched, err := fetch(shared)
		metrics.BackendFetchDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.BackendFetchesCounter.WithLabelValues(resource, "failed").Inc()
			return fetched, err
		}

		metrics.BackendFetchesCounter.WithLabelValues(resource, "ok").Inc()
		c.cache.Set(key, fetched, ttl)
		return fetched, nil
	})

	select {
	case res := <-result:
		return res.Val.(T), res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
