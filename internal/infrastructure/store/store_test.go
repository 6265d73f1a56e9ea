package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-events/config"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

func TestOpenMemory(t *testing.T) {
	repos, err := Open(context.Background(), &config.Config{StoreDriver: config.StoreDriverMemory}, helpers.NewDiscardLogger())
	require.NoError(t, err)
	defer repos.Close()

	assert.Equal(t, config.StoreDriverMemory, repos.Driver)
	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Registrations)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "firestore"}, helpers.NewDiscardLogger())
	assert.EqualError(t, err, `unknown STORE_DRIVER "firestore"`)
}
