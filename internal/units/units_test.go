package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleConversions(t *testing.T) {
	assert.Equal(t, math.Pi, DegToRad(180))
	assert.Equal(t, 180.0, RadToDeg(math.Pi))
	assert.Zero(t, DegToRad(0))

	for _, deg := range []float64{-270, -90, 1, 45, 359.9} {
		assert.InDelta(t, deg, RadToDeg(DegToRad(deg)), 1e-12)
	}
}

func TestKpcToPc(t *testing.T) {
	assert.Equal(t, 1000.0, 1.0*KpcToPc)
}
