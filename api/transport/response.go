package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and
// error payloads. The auth client adapter decodes this exact shape.
type Envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	raw, err := json.Marshal(data)
	if err != nil {
		raw = nil
	}
	return Envelope{
		Status: StatusSuccess,
		Data:   raw,
	}
}

// NewError returns an error envelope.
func NewError(code, message string) Envelope {
	return Envelope{
		Status: StatusError,
		Code:   code,
		Error:  message,
	}
}

func (e Envelope) OK() bool {
	return e.Status == StatusSuccess
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
