package errors

type Code string

const (
	CodeUnknown    Code = "UNKNOWN"
	CodeValidation Code = "VALIDATION"
	CodePermission Code = "PERMISSION_DENIED"
	CodeNotFound   Code = "NOT_FOUND"
	CodeConflict   Code = "CONFLICT"
	CodeTransport  Code = "TRANSPORT"
	CodeNotJoined  Code = "NOT_JOINED"
)
