//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/fulfillment-service/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestMain shares one MongoDB container across every integration test in
// this package, so catalog and logs tests do not each pay the container
// startup cost.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func getSharedContainerURI() string {
	return testutil.GetSharedContainerURI()
}

func sanitizeDBName(testName string) string {
	return testutil.SanitizeDBName(testName)
}

// setupTestDBFromSharedContainer opens a per-test database on the shared
// container so tests never see each other's stores or logs.
func setupTestDBFromSharedContainer(t *testing.T) *MongoDB {
	db, err := NewMongoDB(getSharedContainerURI(), sanitizeDBName(t.Name()))
	require.NoError(t, err)
	return db
}
