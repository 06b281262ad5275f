package questionnaire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherpa-labs/sherpa/internal/errors"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questionnaire.yaml")

	q1 := Default()
	require.NoError(t, Save(path, q1))

	q2, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, q2)

	assert.Equal(t, q1.Name, q2.Name)
	require.Len(t, q2.Axes, len(q1.Axes))
	for i, axis := range q1.Axes {
		assert.Equal(t, axis.ID, q2.Axes[i].ID)
		assert.Equal(t, axis.Positive.Questions, q2.Axes[i].Positive.Questions)
		assert.Equal(t, axis.Negative.Questions, q2.Axes[i].Negative.Questions)
	}
	assert.Equal(t, q1.Criteria, q2.Criteria)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("axes: [broken"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
	})

	t.Run("valid yaml failing invariants", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")

		// Save validates too, so write the broken framework by hand.
		require.NoError(t, os.WriteFile(path, []byte(`
name: broken
axes:
  - id: only
    positive:
      id: up
      questions:
        - {id: q1, text: t, rationale: r, weight: 9.5}
    negative:
      id: down
      questions:
        - {id: q2, text: t, rationale: r, weight: 10}
`), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
	})
}

func TestLoadOrDefault(t *testing.T) {
	q, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().Name, q.Name)

	path := filepath.Join(t.TempDir(), "questionnaire.yaml")
	custom := Default()
	custom.Name = "custom"
	require.NoError(t, Save(path, custom))

	q, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", q.Name)
}
