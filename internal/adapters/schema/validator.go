// Package schema checks order documents at the transport boundary and turns
// them into typed quantities.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const baseURL = "https://domnus.local/schemas/"

// MaxQuantity bounds any single quantity in either direction. It keeps every
// order sum far from integer overflow.
const MaxQuantity = 1_000_000_000

// Validator holds the compiled order schemas
type Validator struct {
	quantities *jsonschema.Schema
	amount     *jsonschema.Schema
	spending   *jsonschema.Schema
	projects   *jsonschema.Schema
}

// NewValidator compiles the embedded schemas
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	for _, entry := range entries {
		raw, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", entry.Name(), err)
		}
		if err := compiler.AddResource(baseURL+entry.Name(), bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", entry.Name(), err)
		}
	}

	v := &Validator{}
	targets := []struct {
		name string
		dst  **jsonschema.Schema
	}{
		{"quantities.schema.json", &v.quantities},
		{"amount.schema.json", &v.amount},
		{"spending.schema.json", &v.spending},
		{"projects.schema.json", &v.projects},
	}
	for _, t := range targets {
		compiled, err := compiler.Compile(baseURL + t.name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", t.name, err)
		}
		*t.dst = compiled
	}
	return v, nil
}

// MustNewValidator compiles the embedded schemas and panics on failure
func MustNewValidator() *Validator {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Quantities validates a per-kind order and returns the quantities of the
// given kinds. Missing, null and empty values are zero; other keys are ignored.
func (v *Validator) Quantities(doc map[string]interface{}, kinds []string) (kingdom.Inventory, error) {
	if err := validate(v.quantities, doc); err != nil {
		return nil, err
	}
	out := make(kingdom.Inventory, len(kinds))
	for _, kind := range kinds {
		n, err := toInt(kind, doc[kind])
		if err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, nil
}

// Amount validates a single-quantity order
func (v *Validator) Amount(doc map[string]interface{}) (int, error) {
	if err := validate(v.amount, doc); err != nil {
		return 0, err
	}
	return toInt(kingdom.AmountKind, doc[kingdom.AmountKind])
}

// SpendingUpdate is a validated spending document. Nil fields were omitted.
type SpendingUpdate struct {
	Settle     *float64
	Structures *float64
	Military   *float64
	Engineers  *float64
}

// Spending validates a spending allocation document. Null and empty values
// count as omitted.
func (v *Validator) Spending(doc map[string]interface{}) (SpendingUpdate, error) {
	var out SpendingUpdate
	if err := validate(v.spending, doc); err != nil {
		return out, err
	}
	fields := []struct {
		key string
		dst **float64
	}{
		{"settle", &out.Settle},
		{"structures", &out.Structures},
		{"military", &out.Military},
		{"engineers", &out.Engineers},
	}
	for _, f := range fields {
		p, err := toPercent(f.key, doc[f.key])
		if err != nil {
			return SpendingUpdate{}, err
		}
		*f.dst = p
	}
	return out, nil
}

// ProjectsUpdate is a validated projects document
type ProjectsUpdate struct {
	Action string
	Clear  []string
	Counts map[string]int
}

// Projects validates a projects document. Clear takes a list of names or a
// mapping whose keys are cleared; assign and add take a mapping.
func (v *Validator) Projects(doc map[string]interface{}) (ProjectsUpdate, error) {
	if err := validate(v.projects, doc); err != nil {
		return ProjectsUpdate{}, err
	}
	out := ProjectsUpdate{Action: doc["action"].(string)}

	switch projects := doc["projects"].(type) {
	case []interface{}:
		if out.Action != "clear" {
			return ProjectsUpdate{}, shared.NewValidationError("projects", "must map project names to engineer counts")
		}
		for _, name := range projects {
			out.Clear = append(out.Clear, name.(string))
		}
	case map[string]interface{}:
		if out.Action == "clear" {
			for name := range projects {
				out.Clear = append(out.Clear, name)
			}
			sort.Strings(out.Clear)
			break
		}
		out.Counts = make(map[string]int, len(projects))
		for name, raw := range projects {
			n, err := toInt(name, raw)
			if err != nil {
				return ProjectsUpdate{}, err
			}
			out.Counts[name] = n
		}
	case nil:
		if out.Action != "clear" {
			out.Counts = map[string]int{}
		}
	}
	return out, nil
}

func validate(s *jsonschema.Schema, doc map[string]interface{}) error {
	if doc == nil {
		doc = map[string]interface{}{}
	}
	if err := s.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return toValidationError(verr)
		}
		return shared.NewValidationError("order", err.Error())
	}
	return nil
}

// toValidationError reports the deepest failing keyword. Quantity
// alternatives all fail the same way, so they read as "must be a number".
func toValidationError(verr *jsonschema.ValidationError) *shared.ValidationError {
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if field == "" {
		return shared.NewValidationError("order", leaf.Message)
	}
	if strings.Contains(leaf.KeywordLocation, "anyOf") {
		if outOfRange(verr) {
			return outOfRangeError(field)
		}
		return shared.NewValidationError(field, "must be a number")
	}
	return shared.NewValidationError(field, leaf.Message)
}

// outOfRange reports whether a bound keyword failed anywhere under verr
func outOfRange(verr *jsonschema.ValidationError) bool {
	if strings.HasSuffix(verr.KeywordLocation, "/maximum") || strings.HasSuffix(verr.KeywordLocation, "/minimum") {
		return true
	}
	for _, cause := range verr.Causes {
		if outOfRange(cause) {
			return true
		}
	}
	return false
}

func outOfRangeError(field string) *shared.ValidationError {
	return shared.NewValidationError(field, fmt.Sprintf("must be between -%d and %d", MaxQuantity, MaxQuantity))
}

func toInt(field string, raw interface{}) (int, error) {
	var n int64
	switch val := raw.(type) {
	case nil:
		return 0, nil
	case int:
		n = int64(val)
	case int64:
		n = val
	case float64:
		if val != math.Trunc(val) {
			return 0, shared.NewValidationError(field, "must be a whole number")
		}
		if math.Abs(val) > MaxQuantity {
			return 0, outOfRangeError(field)
		}
		n = int64(val)
	case json.Number:
		parsed, err := val.Int64()
		if err != nil {
			return 0, shared.NewValidationError(field, "must be a whole number")
		}
		n = parsed
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return 0, shared.NewValidationError(field, "must be a whole number")
		}
		n = parsed
	default:
		return 0, shared.NewValidationError(field, "must be a number")
	}
	if n > MaxQuantity || n < -MaxQuantity {
		return 0, outOfRangeError(field)
	}
	return int(n), nil
}

func toPercent(field string, raw interface{}) (*float64, error) {
	var f float64
	switch val := raw.(type) {
	case nil:
		return nil, nil
	case int:
		f = float64(val)
	case float64:
		f = val
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return nil, shared.NewValidationError(field, "must be a number")
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, shared.NewValidationError(field, "must be a number")
		}
		f = parsed
	default:
		return nil, shared.NewValidationError(field, "must be a number")
	}
	return &f, nil
}
