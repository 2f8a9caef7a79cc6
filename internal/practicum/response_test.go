package practicum

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homework-notifier/internal/models"
)

func TestCheckResponse(t *testing.T) {
	resp, err := CheckResponse(json.RawMessage(`{
		"homeworks": [
			{"homework_name": "newest", "status": "approved"},
			{"homework_name": "older", "status": "rejected"}
		],
		"current_date": 1700000000
	}`))
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000), resp.CurrentDate)
	require.Len(t, resp.Homeworks, 2)
	assert.JSONEq(t, `{"homework_name": "newest", "status": "approved"}`, string(resp.Homeworks[0]))
	assert.JSONEq(t, `{"homework_name": "older", "status": "rejected"}`, string(resp.Homeworks[1]))
}

func TestCheckResponseEmptyBatch(t *testing.T) {
	resp, err := CheckResponse(json.RawMessage(`{"current_date": 1000, "homeworks": []}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), resp.CurrentDate)
	_, ok := resp.Latest()
	assert.False(t, ok)
}

func TestCheckResponseMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"no current_date", `{"homeworks": []}`, "current_date"},
		{"no homeworks", `{"current_date": 1000}`, "homeworks"},
		{"empty object", `{}`, "current_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckResponse(json.RawMessage(tt.raw))
			var mf *models.MissingFieldError
			require.True(t, errors.As(err, &mf), "got %v", err)
			assert.Equal(t, tt.field, mf.Field)
		})
	}
}

func TestCheckResponseWrongTypes(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		kind  models.MalformedKind
		field string
	}{
		{"array payload", `[{"homeworks": []}]`, models.KindTopLevelType, ""},
		{"string payload", `"ok"`, models.KindTopLevelType, ""},
		{"null payload", `null`, models.KindTopLevelType, ""},
		{"homeworks object", `{"current_date": 1, "homeworks": {"a": 1}}`, models.KindFieldType, "homeworks"},
		{"homeworks string", `{"current_date": 1, "homeworks": "none"}`, models.KindFieldType, "homeworks"},
		{"homeworks null", `{"current_date": 1, "homeworks": null}`, models.KindFieldType, "homeworks"},
		{"date string", `{"current_date": "today", "homeworks": []}`, models.KindFieldType, "current_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckResponse(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrMalformedResponse))

			var mr *models.MalformedResponseError
			require.True(t, errors.As(err, &mr))
			assert.Equal(t, tt.kind, mr.Kind)
			assert.Equal(t, tt.field, mr.Field)
		})
	}
}
