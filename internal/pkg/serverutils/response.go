package serverutils

// APIError is the envelope every non-2xx handler response uses.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

func ErrorResponse(code int, message string) APIError {
	return APIError{Code: code, Message: message}
}

// ErrorResponseWithDetail attaches extra context, like the opening
// schedule on an hours rejection, next to the message.
func ErrorResponseWithDetail(code int, message string, detail any) APIError {
	return APIError{Code: code, Message: message, Detail: detail}
}
