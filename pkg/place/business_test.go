package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusinessType(t *testing.T) {
	assert.True(t, IsBusinessType("supermarket"))
	assert.True(t, IsBusinessType("bakery"))
	assert.True(t, IsBusinessType("establishment"))
	assert.False(t, IsBusinessType("SUPERMARKET"))
	assert.False(t, IsBusinessType("spaceport"))
	assert.False(t, IsBusinessType(""))
}

func TestBusinessTypes_Catalog(t *testing.T) {
	assert.Len(t, BusinessTypes, 104)
	assert.Equal(t, "accounting", BusinessTypes[0])
	assert.Contains(t, BusinessTypes, "zoo")
	assert.Contains(t, BusinessTypes, "grocery_or_supermarket")
}
