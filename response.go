package plunk

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// SendResult is the API's success body, passed through unmodified.
type SendResult struct {
	Success bool        `json:"success"`
	Emails  []SentEmail `json:"emails"`
}

// SentEmail pairs a recipient contact with the created email record.
type SentEmail struct {
	Contact Contact `json:"contact"`
	Email   string  `json:"email"`
}

// Contact is the API's contact record for a recipient.
type Contact struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// errorBody covers the error shapes the API returns.
type errorBody struct {
	Errors  []string `json:"errors"`
	Message string   `json:"message"`
	Error   string   `json:"error"`
}

// classify maps an HTTP response onto a result or a classified *Error.
func classify(status int, body []byte) (*SendResult, error) {
	switch {
	case status == http.StatusOK:
		var res SendResult
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, newError(KindGeneric, status, "malformed response body")
		}
		return &res, nil
	case status == http.StatusBadRequest:
		return nil, newError(KindValidation, status, errorMessages(status, body)...)
	case status == http.StatusUnauthorized:
		return nil, newError(KindAuthorization, status, errorMessages(status, body)...)
	case status == http.StatusForbidden:
		return nil, newError(KindRejection, status, errorMessages(status, body)...)
	case status == http.StatusRequestEntityTooLarge:
		return nil, newError(KindMailSize, status, "message too large")
	case status == http.StatusTooManyRequests:
		return nil, newError(KindRateLimit, status, "too many requests")
	case status >= 400 && status < 500:
		return nil, newError(KindGeneric, status, "client error")
	case status >= 500 && status < 600:
		return nil, newError(KindGeneric, status, "server error")
	}
	return nil, newError(KindGeneric, status, "unexpected status code="+strconv.Itoa(status))
}

// errorMessages reads the "errors" array, falling back to a single
// message/error string and finally to the status text.
func errorMessages(status int, body []byte) []string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if len(eb.Errors) > 0 {
			return eb.Errors
		}
		if eb.Message != "" {
			return []string{eb.Message}
		}
		if eb.Error != "" {
			return []string{eb.Error}
		}
	}
	return []string{http.StatusText(status)}
}
