package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveBitsPerComponentDefaultsToEight(t *testing.T) {
	img := &ImageXObject{}
	assert.Equal(t, 8, img.EffectiveBitsPerComponent())
}

func TestEffectiveBitsPerComponentHonoursExplicitValue(t *testing.T) {
	img := &ImageXObject{BitsPerComponent: 1}
	assert.Equal(t, 1, img.EffectiveBitsPerComponent())
}
