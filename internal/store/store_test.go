package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherpa-labs/sherpa/internal/errors"
	"github.com/sherpa-labs/sherpa/internal/scoring"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func floatPtr(v float64) *float64 { return &v }

func TestUpsertAndGetSubnet(t *testing.T) {
	repo := newTestRepo(t)

	subnet := &Subnet{
		Netuid:      1,
		Name:        "text-prompting",
		Description: "decentralized text generation",
	}
	require.NoError(t, repo.UpsertSubnet(subnet))

	got, err := repo.GetSubnet(1)
	require.NoError(t, err)
	assert.Equal(t, "text-prompting", got.Name)
	assert.Nil(t, got.Quality)
	assert.False(t, got.CreatedAt.IsZero())

	// Update keeps the row, refreshes the snapshot.
	subnet.Name = "prompting"
	subnet.Quality = floatPtr(4.2)
	subnet.CreatedAt = got.CreatedAt
	require.NoError(t, repo.UpsertSubnet(subnet))

	got, err = repo.GetSubnet(1)
	require.NoError(t, err)
	assert.Equal(t, "prompting", got.Name)
	require.NotNil(t, got.Quality)
	assert.InDelta(t, 4.2, *got.Quality, 1e-9)
}

func TestGetSubnet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetSubnet(99)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryNotFound))
}

func TestListSubnets_Ranking(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.UpsertSubnet(&Subnet{Netuid: 1, Name: "alpha", Quality: floatPtr(2.0)}))
	require.NoError(t, repo.UpsertSubnet(&Subnet{Netuid: 2, Name: "beta", Quality: floatPtr(7.5)}))
	require.NoError(t, repo.UpsertSubnet(&Subnet{Netuid: 3, Name: "gamma"})) // unrated

	byNetuid, err := repo.ListSubnets(false, 0)
	require.NoError(t, err)
	require.Len(t, byNetuid, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{byNetuid[0].Netuid, byNetuid[1].Netuid, byNetuid[2].Netuid})

	ranked, err := repo.ListSubnets(true, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, 2, ranked[0].Netuid, "highest quality first")
	assert.Equal(t, 1, ranked[1].Netuid)
	assert.Equal(t, 3, ranked[2].Netuid, "unrated subnets last")

	limited, err := repo.ListSubnets(true, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRecordEvaluation(t *testing.T) {
	repo := newTestRepo(t)

	subnet := &Subnet{Netuid: 8, Name: "compute-horde"}
	results := []scoring.AxisResult{
		{AxisID: "service-research", Position: -3.5},
		{AxisID: "intelligence-resource", Position: -1.25},
	}
	answers := map[string]float64{"service_working_product": 1.0}
	eval := NewEvaluation(8, answers, nil, results, floatPtr(3.1))

	require.NoError(t, repo.RecordEvaluation(subnet, eval))

	got, err := repo.GetSubnet(8)
	require.NoError(t, err)
	require.NotNil(t, got.ServiceResearch)
	require.NotNil(t, got.IntelligenceResource)
	assert.InDelta(t, -3.5, *got.ServiceResearch, 1e-9)
	assert.InDelta(t, -1.25, *got.IntelligenceResource, 1e-9)
	assert.Equal(t, scoring.QuadrantServiceResource, got.Quadrant)
	require.NotNil(t, got.Quality)
	assert.InDelta(t, 3.1, *got.Quality, 1e-9)

	latest, err := repo.LatestEvaluation(8)
	require.NoError(t, err)
	assert.Equal(t, eval.ID, latest.ID)
	assert.Equal(t, answers, latest.Answers)
	assert.Nil(t, latest.Ratings)
	require.Len(t, latest.Results, 2)
	assert.InDelta(t, -3.5, latest.Results[0].Position, 1e-9)
}

func TestLatestEvaluation_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.UpsertSubnet(&Subnet{Netuid: 5, Name: "never-scored"}))

	_, err := repo.LatestEvaluation(5)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryNotFound))
}

func TestCountSubnets(t *testing.T) {
	repo := newTestRepo(t)

	n, err := repo.CountSubnets()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, repo.UpsertSubnet(&Subnet{Netuid: 1, Name: "a"}))
	require.NoError(t, repo.UpsertSubnet(&Subnet{Netuid: 2, Name: "b"}))

	n, err = repo.CountSubnets()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
