package category

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	c, err := New(uuid.New(), " Comida ", Expense)
	require.NoError(t, err)
	assert.Equal(t, "Comida", c.Name)

	_, err = New(uuid.New(), "", Income)
	assert.ErrorIs(t, err, ErrNameRequired)
	_, err = New(uuid.New(), "Otros", Type("transfer"))
	assert.ErrorIs(t, err, ErrInvalidType)
}
