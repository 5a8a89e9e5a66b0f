package repositories

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_WithPragmas(t *testing.T) {
	assert.Equal(t,
		"site.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		withPragmas("site.db"))
	assert.Equal(t,
		"file:site.db?mode=rwc&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		withPragmas("file:site.db?mode=rwc"))
	assert.Equal(t, "site.db?_pragma=journal_mode(DELETE)", withPragmas("site.db?_pragma=journal_mode(DELETE)"))
}

func Test_DbContext_InMemory(t *testing.T) {
	dbCtx, err := NewDbContext(memoryDatabase)
	require.NoError(t, err)
	defer dbCtx.Close()

	require.NoError(t, dbCtx.Migrate())
	assert.True(t, dbCtx.DB.Migrator().HasTable("job_applications"))
}
