package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomFloat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandomFloat()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRandomInt(t *testing.T) {
	t.Run("within bounds", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v := RandomInt(3, 5)
			assert.GreaterOrEqual(t, v, 3)
			assert.LessOrEqual(t, v, 5)
		}
	})

	t.Run("inverted bounds return min", func(t *testing.T) {
		assert.Equal(t, 7, RandomInt(7, 2))
	})
}

func TestDefaultRand(t *testing.T) {
	r := DefaultRand()
	for i := 0; i < 100; i++ {
		assert.Less(t, r.IntN(4), 4)
		assert.Less(t, r.Float64(), 1.0)
	}
}
