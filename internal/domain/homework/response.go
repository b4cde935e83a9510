// internal/domain/homework/response.go
package homework

import (
	"bytes"
	"encoding/json"
)

// StatusResponse is the validated shape of one API answer.
type StatusResponse struct {
	// Homeworks is the record list, newest first. May be empty.
	Homeworks []Homework
	// CurrentDate is the cursor echoed by the API for the next poll.
	// HasCurrentDate is false when the field was absent, in which case the
	// caller keeps its previous cursor.
	CurrentDate    int64
	HasCurrentDate bool
}

var jsonNull = []byte("null")

// CheckResponse is the defensive boundary against the external API changing
// shape. Every violation is reported as a typed error rather than silently
// defaulted, so the poll loop can notify about the contract break. An empty
// homeworks list is valid and means "nothing to report".
func CheckResponse(raw json.RawMessage) (*StatusResponse, error) {
	// A null body decodes into a nil map without error, so it has to be
	// rejected up front.
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, &TypeMismatchError{Want: "JSON-объектом"}
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &TypeMismatchError{Want: "JSON-объектом"}
	}

	hwRaw, ok := envelope["homeworks"]
	if !ok {
		return nil, MissingFieldError("homeworks")
	}
	if bytes.Equal(bytes.TrimSpace(hwRaw), jsonNull) {
		return nil, &TypeMismatchError{Field: "homeworks", Want: "списком"}
	}
	var homeworks []Homework
	if err := json.Unmarshal(hwRaw, &homeworks); err != nil {
		return nil, &TypeMismatchError{Field: "homeworks", Want: "списком"}
	}

	resp := &StatusResponse{Homeworks: homeworks}
	if cdRaw, ok := envelope["current_date"]; ok {
		var cursor int64
		if err := json.Unmarshal(cdRaw, &cursor); err != nil {
			return nil, &TypeMismatchError{Field: "current_date", Want: "числом"}
		}
		resp.CurrentDate = cursor
		resp.HasCurrentDate = true
	}
	return resp, nil
}
