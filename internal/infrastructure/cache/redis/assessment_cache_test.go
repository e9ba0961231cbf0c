package redis

import (
	"context"
	"testing"
	"time"

	"peer-lending/internal/config"
	"peer-lending/internal/domain/assessment"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *AssessmentCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewAssessmentCache(client)
}

func TestAssessmentCache_RoundTrip(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	result := &assessment.Result{
		Recommendation: assessment.RecommendationModify,
		Justification:  "Moderate credit history suggests modified terms would be appropriate.",
		Suggestion:     &assessment.ModificationSuggestion{ModifiedTerms: "Reduce amount by 10%", RequireCoMaker: true},
	}
	require.NoError(t, cache.Set(ctx, "assessment:abc", result, time.Minute))

	got, found, err := cache.Get(ctx, "assessment:abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, result, got)
	assert.Equal(t, time.Minute, mr.TTL("assessment:abc"))
}

func TestAssessmentCache_Miss(t *testing.T) {
	_, cache := setupCache(t)

	got, found, err := cache.Get(context.Background(), "assessment:missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestAssessmentCache_Expiry(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "assessment:ttl", &assessment.Result{Recommendation: assessment.RecommendationApprove}, time.Second))
	mr.FastForward(2 * time.Second)

	_, found, err := cache.Get(ctx, "assessment:ttl")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAssessmentCache_CorruptEntry(t *testing.T) {
	mr, cache := setupCache(t)
	require.NoError(t, mr.Set("assessment:bad", "not-json"))

	_, found, err := cache.Get(context.Background(), "assessment:bad")
	assert.Error(t, err)
	assert.False(t, found)
}

func TestAssessmentCache_ServerDown(t *testing.T) {
	mr, cache := setupCache(t)
	mr.Close()

	_, _, err := cache.Get(context.Background(), "assessment:any")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	mr.Close()
	_, err = NewClient(context.Background(), config.RedisConfig{Address: mr.Addr()})
	assert.ErrorContains(t, err, "redis ping failed")
}
