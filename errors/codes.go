package errors

// ErrorCode is the machine-readable code carried by every AppError
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Session
	ErrorCode_SESSION_NOT_FOUND             ErrorCode = 2000
	ErrorCode_SESSION_INVALID_CONTRIBUTOR   ErrorCode = 2001
	ErrorCode_SESSION_OUT_OF_RANGE          ErrorCode = 2002
	ErrorCode_SESSION_ILLEGAL_STATE         ErrorCode = 2003
	ErrorCode_SESSION_CONFIRMATION_REQUIRED ErrorCode = 2004
	ErrorCode_SESSION_DEVICE_UNAVAILABLE    ErrorCode = 2005
	ErrorCode_SESSION_EMPTY_CAPTURE         ErrorCode = 2006

	// Recording store
	ErrorCode_RECORDING_NOT_FOUND             ErrorCode = 3000
	ErrorCode_RECORDING_STORE_UNAVAILABLE     ErrorCode = 3001
	ErrorCode_RECORDING_BLOB_WRITE_FAILED     ErrorCode = 3002
	ErrorCode_RECORDING_METADATA_WRITE_FAILED ErrorCode = 3003
	ErrorCode_RECORDING_DELETE_FAILED         ErrorCode = 3004

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000
	ErrorCode_INTEGRATION_TRAINER_FAILED ErrorCode = 4001
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 4002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                     "UNSPECIFIED",
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_SESSION_NOT_FOUND:               "SESSION_NOT_FOUND",
	ErrorCode_SESSION_INVALID_CONTRIBUTOR:     "SESSION_INVALID_CONTRIBUTOR",
	ErrorCode_SESSION_OUT_OF_RANGE:            "SESSION_OUT_OF_RANGE",
	ErrorCode_SESSION_ILLEGAL_STATE:           "SESSION_ILLEGAL_STATE",
	ErrorCode_SESSION_CONFIRMATION_REQUIRED:   "SESSION_CONFIRMATION_REQUIRED",
	ErrorCode_SESSION_DEVICE_UNAVAILABLE:      "SESSION_DEVICE_UNAVAILABLE",
	ErrorCode_SESSION_EMPTY_CAPTURE:           "SESSION_EMPTY_CAPTURE",
	ErrorCode_RECORDING_NOT_FOUND:             "RECORDING_NOT_FOUND",
	ErrorCode_RECORDING_STORE_UNAVAILABLE:     "RECORDING_STORE_UNAVAILABLE",
	ErrorCode_RECORDING_BLOB_WRITE_FAILED:     "RECORDING_BLOB_WRITE_FAILED",
	ErrorCode_RECORDING_METADATA_WRITE_FAILED: "RECORDING_METADATA_WRITE_FAILED",
	ErrorCode_RECORDING_DELETE_FAILED:         "RECORDING_DELETE_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_TRAINER_FAILED:      "INTEGRATION_TRAINER_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
