package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/adapters/schema"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

func TestQuantities_CoercesBlankValuesToZero(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()
	doc := map[string]interface{}{
		"hangars":   "3",
		"workshops": "",
		"farms":     nil,
		"ignored":   7,
	}

	// Act
	got, err := v.Quantities(doc, []string{"hangars", "workshops", "farms", "mines"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, kingdom.Inventory{"hangars": 3, "workshops": 0, "farms": 0, "mines": 0}, got)
}

func TestQuantities_AcceptsWholeFloats(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()

	// Act
	got, err := v.Quantities(map[string]interface{}{"attackers": float64(12)}, []string{"attackers"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 12, got.Get("attackers"))
}

func TestQuantities_RejectsNonNumericValue(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()

	// Act
	_, err := v.Quantities(map[string]interface{}{"hangars": "lots"}, []string{"hangars"})

	// Assert
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hangars", verr.Field)
}

func TestQuantities_KeepsNegativesForTheValidators(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()

	// Act
	got, err := v.Quantities(map[string]interface{}{"hangars": "-2"}, []string{"hangars"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, -2, got.Get("hangars"))
}

func TestAmount(t *testing.T) {
	v := schema.MustNewValidator()

	tests := []struct {
		name    string
		doc     map[string]interface{}
		want    int
		wantErr bool
	}{
		{name: "integer", doc: map[string]interface{}{"amount": float64(5)}, want: 5},
		{name: "string", doc: map[string]interface{}{"amount": " 40 "}, want: 40},
		{name: "missing", doc: map[string]interface{}{}, want: 0},
		{name: "null", doc: map[string]interface{}{"amount": nil}, want: 0},
		{name: "nil document", doc: nil, want: 0},
		{name: "fraction", doc: map[string]interface{}{"amount": 2.5}, wantErr: true},
		{name: "boolean", doc: map[string]interface{}{"amount": true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, err := v.Amount(tt.doc)

			// Assert
			if tt.wantErr {
				var verr *shared.ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpending_OmittedAndBlankFieldsStayNil(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()

	// Act
	got, err := v.Spending(map[string]interface{}{"settle": "12.5", "military": float64(40), "engineers": ""})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got.Settle)
	assert.Equal(t, 12.5, *got.Settle)
	require.NotNil(t, got.Military)
	assert.Equal(t, 40.0, *got.Military)
	assert.Nil(t, got.Structures)
	assert.Nil(t, got.Engineers)
}

func TestSpending_RejectsUnknownField(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()

	// Act
	_, err := v.Spending(map[string]interface{}{"bribes": float64(10)})

	// Assert
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestProjects_AssignCounts(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()
	doc := map[string]interface{}{
		"action":   "assign",
		"projects": map[string]interface{}{"pop_bonus": "3", "fuel_bonus": float64(2)},
	}

	// Act
	got, err := v.Projects(doc)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "assign", got.Action)
	assert.Equal(t, map[string]int{"pop_bonus": 3, "fuel_bonus": 2}, got.Counts)
}

func TestProjects_ClearAcceptsNamesOrMapping(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()

	// Act
	fromList, err := v.Projects(map[string]interface{}{
		"action":   "clear",
		"projects": []interface{}{"pop_bonus"},
	})
	require.NoError(t, err)
	fromMap, err := v.Projects(map[string]interface{}{
		"action":   "clear",
		"projects": map[string]interface{}{"pop_bonus": float64(0), "fuel_bonus": nil},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"pop_bonus"}, fromList.Clear)
	assert.Equal(t, []string{"fuel_bonus", "pop_bonus"}, fromMap.Clear)
}

func TestProjects_RejectsUnknownAction(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()

	// Act
	_, err := v.Projects(map[string]interface{}{"action": "promote"})

	// Assert
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "action", verr.Field)
}

func TestQuantities_RejectsValuesBeyondMaxQuantity(t *testing.T) {
	v := schema.MustNewValidator()

	tests := []struct {
		name string
		raw  interface{}
	}{
		{name: "max int string", raw: "9223372036854775807"},
		{name: "eleven digit string", raw: "10000000000"},
		{name: "large float", raw: float64(1e18)},
		{name: "negative int", raw: -schema.MaxQuantity - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			doc := map[string]interface{}{"homes": tt.raw, "mines": tt.raw}

			// Act
			_, err := v.Quantities(doc, []string{"homes", "mines"})

			// Assert
			var verr *shared.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, []string{"homes", "mines"}, verr.Field)
		})
	}
}

func TestQuantities_AcceptsMaxQuantity(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()

	// Act
	got, err := v.Quantities(map[string]interface{}{"homes": "1000000000"}, []string{"homes"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, schema.MaxQuantity, got.Get("homes"))
}

func TestProjects_RejectsHugeEngineerCounts(t *testing.T) {
	// Arrange
	v := schema.MustNewValidator()
	doc := map[string]interface{}{
		"action":   "add",
		"projects": map[string]interface{}{"pop_bonus": "9223372036854775807"},
	}

	// Act
	_, err := v.Projects(doc)

	// Assert
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
}
