package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLPAToUSDK(t *testing.T) {
	t.Run("fixed multiplier", func(t *testing.T) {
		assert.InDelta(t, 12.0, LPAToUSDK(10), 1e-9)
		assert.InDelta(t, 36.0, LPAToUSDK(30), 1e-9)
	})

	t.Run("strictly monotonic", func(t *testing.T) {
		prev := LPAToUSDK(0)
		for lpa := 1.0; lpa <= 100; lpa++ {
			cur := LPAToUSDK(lpa)
			assert.Greater(t, cur, prev)
			prev = cur
		}
	})
}

func TestPPPAdjust(t *testing.T) {
	assert.InDelta(t, 50.0, PPPAdjust(150), 1e-9)
	assert.InDelta(t, 40.0, PPPAdjust(120), 1e-9)
}
