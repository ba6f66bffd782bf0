package dto

// Envelope is the body of every API response, success or failure.
// Status repeats the HTTP status code; Data is null on failure and for
// operations without a natural result.
type Envelope struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func NewEnvelope(status int, data any, message string) Envelope {
	return Envelope{Status: status, Data: data, Message: message}
}
