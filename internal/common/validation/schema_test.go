// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalStartSchema(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		valid   bool
	}{
		{"valid", `{"country":"Portugal","type":"Visa"}`, true},
		{"all types accepted", `{"country":"Germany","type":"Asylum Application"}`, true},
		{"missing country", `{"type":"Visa"}`, false},
		{"empty country", `{"country":"","type":"Visa"}`, false},
		{"unknown type", `{"country":"Portugal","type":"Teleport"}`, false},
		{"extra field", `{"country":"Portugal","type":"Visa","x":1}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJSON(GoalStartSchema, []byte(tc.payload))
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGoalAnswersSchema(t *testing.T) {
	assert.NoError(t, ValidateJSON(GoalAnswersSchema, []byte(`{}`)))
	assert.NoError(t, ValidateJSON(GoalAnswersSchema, []byte(`{"answers":{"reason":"Work"}}`)))
	assert.Error(t, ValidateJSON(GoalAnswersSchema, []byte(`{"answers":{"reason":1}}`)))
	assert.Error(t, ValidateJSON(GoalAnswersSchema, []byte(`{"other":{}}`)))
}

func TestCitizenshipSchema(t *testing.T) {
	assert.NoError(t, ValidateJSON(CitizenshipSchema, []byte(`{"country":"Germany"}`)))
	assert.NoError(t, ValidateJSON(CitizenshipSchema, []byte(`{"country":"Germany","code":"DE"}`)))
	assert.Error(t, ValidateJSON(CitizenshipSchema, []byte(`{}`)))
	assert.Error(t, ValidateJSON(CitizenshipSchema, []byte(`{"country":""}`)))
}

func TestValidateJSONMalformedDocument(t *testing.T) {
	assert.Error(t, ValidateJSON(GoalStartSchema, []byte(`not json`)))
}
