package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		earned int64
		want   string
	}{
		{0, TierBronze},
		{499, TierBronze},
		{500, TierSilver},
		{1999, TierSilver},
		{2000, TierGold},
		{4999, TierGold},
		{5000, TierPlatinum},
		{123456, TierPlatinum},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.earned), "earned=%d", tc.earned)
	}
}

func TestValidTier(t *testing.T) {
	for _, tier := range []string{TierBronze, TierSilver, TierGold, TierPlatinum} {
		assert.True(t, ValidTier(tier))
	}
	assert.False(t, ValidTier(""))
	assert.False(t, ValidTier("diamond"))
	assert.False(t, ValidTier("Gold")) // tiers are stored lowercase
}
