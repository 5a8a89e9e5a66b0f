package repositories

import (
	"context"
	"github.com/quantumstack/site/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
	"time"
)

func newTestDbContext(t *testing.T) *DbContext {
	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func Test_Applications_AddAssignsIDAndStores(t *testing.T) {

	repo := NewApplicationsRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	application := &entities.JobApplication{
		JobID:       "senior-fullstack-dev",
		JobTitle:    "Senior Full-Stack Developer",
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		CoverLetter: "Hello",
	}
	require.NoError(t, repo.Add(ctx, application))
	assert.NotEmpty(t, application.ID)

	stored, err := repo.GetByJob(ctx, "senior-fullstack-dev")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Ada Lovelace", stored[0].FullName)

	other, err := repo.GetByJob(ctx, "ui-ux-designer")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func Test_Applications_RemoveOlderThan(t *testing.T) {

	repo := NewApplicationsRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	old := &entities.JobApplication{JobID: "job", FullName: "Old", CreatedAt: time.Now().Add(-100 * 24 * time.Hour)}
	fresh := &entities.JobApplication{JobID: "job", FullName: "Fresh"}
	require.NoError(t, repo.Add(ctx, old))
	require.NoError(t, repo.Add(ctx, fresh))

	removed, err := repo.RemoveOlderThan(ctx, time.Now().Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	left, err := repo.GetByJob(ctx, "job")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Fresh", left[0].FullName)
}
