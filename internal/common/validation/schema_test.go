package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValidator_ValidateBytes(t *testing.T) {
	v := NewRecordValidator()

	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantField string
	}{
		{
			name:      "full record",
			doc:       `{"name":"感冒","symptom":["发热","咳嗽"],"cause":"病毒","cure_way":["药物治疗"],"cure_lasttime":"7天","cured_prob":"95%","desc":"常见病"}`,
			wantValid: true,
		},
		{
			name:      "name only",
			doc:       `{"name":"感冒"}`,
			wantValid: true,
		},
		{
			name:      "unknown fields are allowed",
			doc:       `{"name":"感冒","yibao_status":"是","_id":{"$oid":"5bb578b6831b973a137e3ee6"}}`,
			wantValid: true,
		},
		{
			name:      "optional fields may be null",
			doc:       `{"name":"感冒","symptom":null,"cause":null,"cure_way":null,"cure_lasttime":null,"cured_prob":null,"desc":null}`,
			wantValid: true,
		},
		{
			name:      "null name",
			doc:       `{"name":null}`,
			wantValid: false,
			wantField: "name",
		},
		{
			name:      "missing name",
			doc:       `{"cause":"病毒"}`,
			wantValid: false,
		},
		{
			name:      "empty name",
			doc:       `{"name":""}`,
			wantValid: false,
			wantField: "name",
		},
		{
			name:      "symptom is not a list",
			doc:       `{"name":"感冒","symptom":"发热"}`,
			wantValid: false,
			wantField: "symptom",
		},
		{
			name:      "cure_way holds a number",
			doc:       `{"name":"感冒","cure_way":[1]}`,
			wantValid: false,
			wantField: "cure_way",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateBytes([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid, result.String())
			if !tt.wantValid {
				assert.NotEmpty(t, result.Errors)
			}
			if tt.wantField != "" {
				assert.True(t, result.HasErrors(tt.wantField), result.String())
			}
		})
	}
}

func TestRecordValidator_ValidateBytes_NotJSON(t *testing.T) {
	v := NewRecordValidator()

	_, err := v.ValidateBytes([]byte(`{"name":`))
	assert.Error(t, err)
}

func TestRecordValidator_ValidateGo(t *testing.T) {
	v := NewRecordValidator()

	result, err := v.ValidateGo(map[string]interface{}{"name": "感冒", "desc": "常见病"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "valid", result.String())
}

func TestNewValidator_BadSchema(t *testing.T) {
	_, err := NewValidator([]byte(`{"type": 12}`))
	assert.Error(t, err)
}
