package models

import (
	"encoding/json"
	"fmt"
)

// HomeworkStatus is a review verdict code reported by the API.
type HomeworkStatus string

const (
	StatusApproved  HomeworkStatus = "approved"
	StatusReviewing HomeworkStatus = "reviewing"
	StatusRejected  HomeworkStatus = "rejected"
)

// Homework is one validated record from the homeworks list.
type Homework struct {
	Name   string         `json:"homework_name"`
	Status HomeworkStatus `json:"status"`
}

// StatusResponse is a validated API answer. Homeworks are kept raw, newest first;
// only the record that is acted on gets decoded.
type StatusResponse struct {
	CurrentDate int64
	Homeworks   []json.RawMessage
}

// Latest returns the newest record, or false for an empty batch.
func (r StatusResponse) Latest() (json.RawMessage, bool) {
	if len(r.Homeworks) == 0 {
		return nil, false
	}
	return r.Homeworks[0], true
}

// DecodeHomework builds a Homework, failing when status or homework_name is absent.
// The status value is not checked against the known verdicts.
func DecodeHomework(raw json.RawMessage) (Homework, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Homework{}, &MalformedResponseError{Kind: KindTopLevelType, Field: "homework", Err: err}
	}

	var hw Homework
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"status", (*string)(&hw.Status)},
		{"homework_name", &hw.Name},
	} {
		v, ok := fields[f.key]
		if !ok {
			return Homework{}, &MissingFieldError{Field: f.key}
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return Homework{}, &MalformedResponseError{
				Kind:  KindFieldType,
				Field: f.key,
				Err:   fmt.Errorf("expected string: %w", err),
			}
		}
	}
	return hw, nil
}
