package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRequest_AgeDecoding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantNil bool
		want    string
	}{
		{"number", `{"age":30}`, false, "30"},
		{"zero", `{"age":0}`, false, "0"},
		{"string", `{"age":"30"}`, false, "30"},
		{"empty string", `{"age":""}`, false, ""},
		{"null", `{"age":null}`, true, ""},
		{"absent", `{}`, true, ""},
		{"bool kept as text", `{"age":true}`, false, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UserRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			in := req.Input()
			if tt.wantNil {
				assert.Nil(t, in.Age)
				return
			}
			require.NotNil(t, in.Age)
			assert.Equal(t, tt.want, *in.Age)
		})
	}
}

func TestEnvelope_NullData(t *testing.T) {
	out, err := json.Marshal(NewEnvelope(404, nil, "User not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":404,"data":null,"message":"User not found"}`, string(out))
}
