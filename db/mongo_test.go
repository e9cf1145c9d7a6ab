package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func TestMongoStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	store, err := OpenMongo(ctx, uri, "sportsmanagement_test", 10*time.Second, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })

	runStoreContract(t, store)
}

func TestMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb://mongodb:27017", MongoURI("mongodb", "27017"))
}
