package spending_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/internal/domain/spending"
)

func ptr(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		allocation spending.Allocation
		reason     shared.RejectionReason
	}{
		{"valid split", spending.Allocation{"settle": 40, "structures": 30, "military": 20, "engineers": 10}, ""},
		{"all zero", spending.Allocation{"settle": 0, "structures": 0}, ""},
		{"exactly one hundred", spending.Allocation{"military": 100}, ""},
		{"sums past one hundred", spending.Allocation{"settle": 40, "structures": 40, "military": 30}, shared.ReasonOverCapacity},
		{"negative value", spending.Allocation{"settle": -1}, shared.ReasonInvalidPercent},
		{"value above one hundred", spending.Allocation{"settle": 100.5}, shared.ReasonInvalidPercent},
		{"not a number", spending.Allocation{"settle": math.NaN()}, shared.ReasonInvalidPercent},
		{"infinite", spending.Allocation{"military": math.Inf(1)}, shared.ReasonInvalidPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := spending.Validate(tt.allocation)

			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			var rejection *shared.Rejection
			require.True(t, errors.As(err, &rejection))
			assert.Equal(t, tt.reason, rejection.Reason)
			assert.Equal(t, spending.Message, rejection.Message)
		})
	}
}

func TestMerge_KeepsUnsetValues(t *testing.T) {
	current := map[string]float64{"settle": 10, "structures": 20, "military": 30, "engineers": 5}

	merged := spending.Merge(current, spending.Update{Military: ptr(50), Engineers: ptr(0)})

	assert.Equal(t, spending.Allocation{"settle": 10, "structures": 20, "military": 50, "engineers": 0}, merged)
	assert.Equal(t, 80.0, merged.Total())
}

func TestMerge_MissingCurrentDefaultsToZero(t *testing.T) {
	merged := spending.Merge(nil, spending.Update{Settle: ptr(25)})

	assert.Equal(t, spending.Allocation{"settle": 25, "structures": 0, "military": 0, "engineers": 0}, merged)
}

func TestValidate_MergedNaNIsRejected(t *testing.T) {
	merged := spending.Merge(map[string]float64{}, spending.Update{Settle: ptr(math.NaN())})

	err := spending.Validate(merged)

	var rejection *shared.Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, shared.ReasonInvalidPercent, rejection.Reason)
}
