package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(OperationsTotal.WithLabelValues("create", OutcomeSuccess))
	ObserveOperation("create", OutcomeSuccess, time.Now().Add(-time.Millisecond))
	assert.Equal(t, before+1, testutil.ToFloat64(OperationsTotal.WithLabelValues("create", OutcomeSuccess)))
}

func TestObserveAsset(t *testing.T) {
	okBefore := testutil.ToFloat64(AssetOperations.WithLabelValues("put", OutcomeSuccess))
	errBefore := testutil.ToFloat64(AssetOperations.WithLabelValues("delete", OutcomeError))

	ObserveAsset("put", 2048, nil)
	ObserveAsset("delete", 0, errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(AssetOperations.WithLabelValues("put", OutcomeSuccess)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(AssetOperations.WithLabelValues("delete", OutcomeError)))
}
