package services

import (
	"context"
	"testing"

	"bookstore-api/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronService_AuditReportsDanglingReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	authorID := f.seedAuthor(t)

	withFile, err := f.books.Create(ctx, newBook(authorID, "present.png", encode("x")))
	require.NoError(t, err)
	dangling, err := f.books.Create(ctx, newBook(authorID, "missing.png", ""))
	require.NoError(t, err)
	_, err = f.books.Create(ctx, newBook(authorID, "", ""))
	require.NoError(t, err)

	before := f.assetFiles(t)
	report, err := f.cron.AuditAssets(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Dangling, 1)
	assert.Equal(t, dangling.ID, report.Dangling[0].BookID)
	assert.Equal(t, "missing.png", report.Dangling[0].Image)
	assert.NotEqual(t, withFile.ID, report.Dangling[0].BookID)
	assert.Equal(t, before, f.assetFiles(t))
}

func TestCronService_StartStop(t *testing.T) {
	f := newFixture(t)

	disabled := NewCronService(nil, nil, "", logging.Discard())
	require.NoError(t, disabled.Start())
	disabled.Stop()

	bad := NewCronService(f.books.repo, f.books.assets, "not a schedule", logging.Discard())
	assert.Error(t, bad.Start())

	ok := NewCronService(f.books.repo, f.books.assets, "@every 1h", logging.Discard())
	require.NoError(t, ok.Start())
	ok.Stop()
}
