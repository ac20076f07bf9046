package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Predictions.WithLabelValues("spam").Inc()
	m.Predictions.WithLabelValues("spam").Inc()
	m.PredictionErrors.WithLabelValues("empty_input").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Predictions.WithLabelValues("spam")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PredictionErrors.WithLabelValues("empty_input")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "spamguard_predictions_total")
	assert.Contains(t, names, "spamguard_prediction_errors_total")
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
