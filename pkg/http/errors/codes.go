package errors

// Human-readable messages for each outcome class. The numeric HTTP status
// doubles as the machine-readable error code in the response envelope.
const (
	MsgBadRequest       = "Bad request. Please check your input."
	MsgNotFound         = "The requested resource could not be found."
	MsgMethodNotAllowed = "This HTTP method is not allowed for the requested URL."
	MsgUnprocessable    = "Unprocessable request."
	MsgInternalError    = "Something went wrong on the server."
)
