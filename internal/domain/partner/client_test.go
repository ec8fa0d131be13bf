package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("valid client", func(t *testing.T) {
		c, err := NewClient("  Acme Traders  ")
		require.NoError(t, err)
		assert.Equal(t, "Acme Traders", c.Name)
		assert.Equal(t, 1, c.Version)
		assert.False(t, c.ID.String() == "")
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewClient("   ")
		assert.Error(t, err)
	})

	t.Run("overlong name rejected", func(t *testing.T) {
		_, err := NewClient(strings.Repeat("x", 201))
		assert.Error(t, err)
	})
}

func TestClientRename(t *testing.T) {
	c, err := NewClient("Old Name")
	require.NoError(t, err)

	require.NoError(t, c.Rename("New Name"))
	assert.Equal(t, "New Name", c.Name)
	assert.Equal(t, 2, c.Version)

	assert.Error(t, c.Rename(""))
}
