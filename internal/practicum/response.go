package practicum

import (
	"bytes"
	"encoding/json"

	"homework-notifier/internal/models"
)

// CheckResponse validates the API answer and returns its homeworks unchanged.
func CheckResponse(raw json.RawMessage) (models.StatusResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.StatusResponse{}, &models.MalformedResponseError{Kind: models.KindTopLevelType, Err: err}
	}

	var resp models.StatusResponse

	date, ok := fields["current_date"]
	if !ok {
		return models.StatusResponse{}, &models.MissingFieldError{Field: "current_date"}
	}
	if err := json.Unmarshal(date, &resp.CurrentDate); err != nil || isNull(date) {
		return models.StatusResponse{}, &models.MalformedResponseError{Kind: models.KindFieldType, Field: "current_date", Err: err}
	}

	hws, ok := fields["homeworks"]
	if !ok {
		return models.StatusResponse{}, &models.MissingFieldError{Field: "homeworks"}
	}
	// null decodes into a nil slice without error
	if err := json.Unmarshal(hws, &resp.Homeworks); err != nil || isNull(hws) {
		return models.StatusResponse{}, &models.MalformedResponseError{Kind: models.KindFieldType, Field: "homeworks", Err: err}
	}

	return resp, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
