package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationsTotal(t *testing.T) {
	before := testutil.ToFloat64(SimulationsTotal.WithLabelValues(OutcomeNoData))
	SimulationsTotal.WithLabelValues(OutcomeNoData).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SimulationsTotal.WithLabelValues(OutcomeNoData)))
}

func TestDatasetRecords(t *testing.T) {
	DatasetRecords.Set(1234)

	expected := `
# HELP salarysim_dataset_records Number of salary records in the loaded dataset
# TYPE salarysim_dataset_records gauge
salarysim_dataset_records 1234
`
	require.NoError(t, testutil.CollectAndCompare(DatasetRecords, strings.NewReader(expected)))
}

func TestCollectorsLint(t *testing.T) {
	problems, err := testutil.CollectAndLint(SimulationDuration)
	require.NoError(t, err)
	assert.Empty(t, problems)
}
