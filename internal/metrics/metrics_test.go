package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Calboot/RandomSeatGenerator/internal/seating"
)

func TestOutcome(t *testing.T) {
	_, illegal := seating.GenerateEmpty(&seating.Config{})
	require.Error(t, illegal)

	cases := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{illegal, OutcomeIllegal},
		{fmt.Errorf("%w: after 3 attempts", seating.ErrGenerationTimeout), OutcomeTimeout},
		{context.Canceled, OutcomeCanceled},
		{errors.New("boom"), OutcomeError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Outcome(tc.err))
	}
}

func TestObserveGeneration(t *testing.T) {
	m := New("")
	table, err := seating.GenerateEmpty(&seating.Config{RowCount: 2, ColumnCount: 3})
	require.NoError(t, err)

	m.ObserveGeneration(SourceSaved, time.Now(), table, nil)
	m.ObserveGeneration(SourceSaved, time.Now(), table, nil)
	m.ObserveGeneration(SourceAdHoc, time.Now(), nil, seating.ErrGenerationTimeout)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues(SourceSaved, OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues(SourceAdHoc, OutcomeTimeout)))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `seating_generations_total{outcome="ok",source="saved"} 2`)
	assert.Contains(t, rec.Body.String(), "seating_seat_table_cells_count 2")

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveGeneration(SourceAdHoc, time.Now(), nil, nil) })
}
