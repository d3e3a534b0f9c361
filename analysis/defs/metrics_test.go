package defs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricByName(t *testing.T) {
	m, err := MetricByName("body_weight")
	require.NoError(t, err)
	assert.Equal(t, "BodyMass.csv", m.File)
	assert.Equal(t, AggMean, m.Aggregation)

	_, err = MetricByName("blood_type")
	assert.Error(t, err)
}

func TestRegistryComplete(t *testing.T) {
	names := MetricNames()
	assert.Len(t, names, len(metrics), "every metric belongs to a category")

	for _, name := range names {
		m, err := MetricByName(name)
		require.NoError(t, err)
		assert.NotEmpty(t, m.Title, name)
		if m.Derived == DerivedNone {
			assert.NotEmpty(t, m.File, name)
		} else {
			assert.NotEmpty(t, m.Components, name)
		}
	}
}
