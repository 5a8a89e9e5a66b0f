package services

import (
	"context"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/quantumstack/site/internal/clients/backend"
	"github.com/quantumstack/site/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"net/http"
	"testing"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Jobs(ctx context.Context) ([]entities.JobOpening, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]entities.JobOpening)
	return jobs, args.Error(1)
}

func (m *mockCatalog) Staff(ctx context.Context) ([]entities.StaffMember, error) {
	args := m.Called(ctx)
	staff, _ := args.Get(0).([]entities.StaffMember)
	return staff, args.Error(1)
}

func (m *mockCatalog) StaffMember(ctx context.Context, slug string) (entities.StaffMember, error) {
	args := m.Called(ctx, slug)
	member, _ := args.Get(0).(entities.StaffMember)
	return member, args.Error(1)
}

func (m *mockCatalog) Portfolio(ctx context.Context) ([]entities.PortfolioProject, error) {
	args := m.Called(ctx)
	projects, _ := args.Get(0).([]entities.PortfolioProject)
	return projects, args.Error(1)
}

func Test_Listings_FailedJobsFetchDegradesToEmpty(t *testing.T) {

	catalog := &mockCatalog{}
	catalog.On("Jobs", mock.Anything).
		Return(nil, &backend.StatusError{Code: http.StatusInternalServerError, Body: "boom"}).Once()

	jobs := NewListings(catalog).Jobs(context.Background())

	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
	catalog.AssertExpectations(t)
}

func Test_Listings_JobDescriptionsAreSanitized(t *testing.T) {

	catalog := &mockCatalog{}
	catalog.On("Jobs", mock.Anything).Return([]entities.JobOpening{
		{ID: "a", Description: `<p onclick="steal()">Build things</p><script>alert(1)</script>`},
	}, nil)

	listings := NewListings(catalog)
	jobs := listings.Jobs(context.Background())

	assert.Equal(t, "<p>Build things</p>", jobs[0].Description)

	job, found := listings.Job(context.Background(), "a")
	assert.True(t, found)
	assert.Equal(t, "a", job.ID)

	_, found = listings.Job(context.Background(), "missing")
	assert.False(t, found)
}

func Test_Listings_StaffMemberNotFound(t *testing.T) {

	catalog := &mockCatalog{}
	catalog.On("StaffMember", mock.Anything, "ghost").Return(nil, errors.WithStack(backend.ErrNotFound))
	catalog.On("StaffMember", mock.Anything, "broken").Return(nil, errors.New("timeout"))
	catalog.On("StaffMember", mock.Anything, "ada").Return(entities.StaffMember{FullName: "Ada"}, nil)

	listings := NewListings(catalog)

	_, found := listings.StaffMember(context.Background(), "ghost")
	assert.False(t, found)
	_, found = listings.StaffMember(context.Background(), "broken")
	assert.False(t, found)

	member, found := listings.StaffMember(context.Background(), "ada")
	assert.True(t, found)
	assert.Equal(t, "Ada", member.FullName)
}

func Test_Listings_FailedStaffAndPortfolioDegradeToEmpty(t *testing.T) {

	catalog := &mockCatalog{}
	catalog.On("Staff", mock.Anything).Return(nil, errors.New("connection refused"))
	catalog.On("Portfolio", mock.Anything).Return(nil, errors.New("connection refused"))

	listings := NewListings(catalog)

	assert.Empty(t, listings.Staff(context.Background()))
	assert.True(t, listings.Portfolio(context.Background()).Empty())
}

func Test_GroupPortfolio_PinnedOnlyInFeatured(t *testing.T) {

	projects := []entities.PortfolioProject{
		{ID: "1", Title: "Bank", Pinned: true},
		{ID: "2", Title: "Shop"},
		{ID: "3", Title: "Clinic", Pinned: true},
		{ID: "4", Title: "School"},
	}

	groups := GroupPortfolio(projects)

	want := PortfolioGroups{
		Featured: []entities.PortfolioProject{projects[0], projects[2]},
		All:      []entities.PortfolioProject{projects[1], projects[3]},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("GroupPortfolio() mismatch (-want +got):\n%s", diff)
	}
}

func Test_Excerpt(t *testing.T) {

	assert.Equal(t, "Build reliable systems.", Excerpt("<p>Build <b>reliable</b>\n systems.</p>", 100))
	assert.Equal(t, "We are looking for a…", Excerpt("<p>We are looking for a senior engineer</p>", 22))
	assert.Equal(t, "", Excerpt("", 10))
}
