package usecases

import (
	"testing"

	campaignentities "github.com/RodolfoBonis/spooliq/features/campaigns/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributeSumsToRequired(t *testing.T) {
	campaigns := []*campaignentities.FixedCampaignEntity{
		{Weight: 1, Priority: 1},
		{Weight: 1, Priority: 2},
		{Weight: 1, Priority: 3},
	}

	for _, required := range []int64{0, 1, 2, 10, 100, 101, 1000} {
		allocations := distribute(required, campaigns)
		require.Len(t, allocations, 3)

		var sum int64
		for _, a := range allocations {
			assert.GreaterOrEqual(t, a, int64(0))
			sum += a
		}
		assert.Equal(t, required, sum, "allocations must sum to the required total for %d", required)
	}
}

func TestDistributeWeightsProportionally(t *testing.T) {
	campaigns := []*campaignentities.FixedCampaignEntity{
		{Weight: 2, Priority: 1},
		{Weight: 1, Priority: 2},
		{Weight: 1, Priority: 3},
	}

	allocations := distribute(400, campaigns)
	assert.Equal(t, []int64{200, 100, 100}, allocations)
}

func TestDistributeRemainderGoesToHighestPriority(t *testing.T) {
	campaigns := []*campaignentities.FixedCampaignEntity{
		{Weight: 1, Priority: 3},
		{Weight: 1, Priority: 1},
		{Weight: 1, Priority: 2},
	}

	allocations := distribute(1, campaigns)
	assert.Equal(t, []int64{0, 1, 0}, allocations)
}
