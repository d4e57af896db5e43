package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageMarkRead(t *testing.T) {
	m := &Message{}
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	m.MarkRead(now)

	assert.True(t, m.IsRead)
	assert.NotNil(t, m.ReadAt)
	assert.Equal(t, now, *m.ReadAt)
}

func TestMessageMarkReadKeepsFirstTimestamp(t *testing.T) {
	first := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	m := &Message{}
	m.MarkRead(first)
	m.MarkRead(later)

	assert.Equal(t, first, *m.ReadAt)
}
