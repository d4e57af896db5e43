package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidWeekday(t *testing.T) {
	for _, day := range WeekdayNames {
		assert.True(t, IsValidWeekday(day), "day %s", day)
	}

	assert.False(t, IsValidWeekday("monday"))
	assert.False(t, IsValidWeekday("Mon"))
	assert.False(t, IsValidWeekday(""))
}
