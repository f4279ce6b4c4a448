package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yashrajoria/storefront-backend/models"
)

func TestVariant_Equal_Structural(t *testing.T) {
	red := &models.Variant{Name: "Color", Option: "Red"}
	redAgain := &models.Variant{Name: "Color", Option: "Red"}
	blue := &models.Variant{Name: "Color", Option: "Blue"}

	assert.True(t, red.Equal(redAgain))
	assert.False(t, red.Equal(blue))
}

func TestVariant_Equal_NilAndEmptyAreTheSame(t *testing.T) {
	var nilVariant *models.Variant
	empty := &models.Variant{}
	red := &models.Variant{Name: "Color", Option: "Red"}

	assert.True(t, nilVariant.Equal(empty))
	assert.True(t, empty.Equal(nilVariant))
	assert.True(t, nilVariant.Equal(nil))
	assert.False(t, nilVariant.Equal(red))
	assert.False(t, red.Equal(empty))
}

func TestVariant_Equal_ShoeFields(t *testing.T) {
	a := &models.Variant{Color: "Black", Size: 42.5, Width: "D", Material: "leather"}
	b := &models.Variant{Color: "Black", Size: 42.5, Width: "D", Material: "leather"}
	c := &models.Variant{Color: "Black", Size: 43, Width: "D", Material: "leather"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
