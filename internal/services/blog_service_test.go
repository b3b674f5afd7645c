package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateReadTime(t *testing.T) {
	assert.Equal(t, 0, estimateReadTime(""))
	assert.Equal(t, 1, estimateReadTime("one"))
	assert.Equal(t, 1, estimateReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, estimateReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 2, estimateReadTime(strings.Repeat("word ", 400)))
	assert.Equal(t, 5, estimateReadTime(strings.Repeat("word ", 1000)))
}
