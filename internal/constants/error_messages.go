package constants

const (
	ErrCodeVerificationFailed = "VERIFICATION_FAILED"
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeMalformedPayload   = "MALFORMED_PAYLOAD"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

const (
	ErrMsgVerificationFailed = "webhook verification failed"
	ErrMsgInvalidSignature   = "invalid payload signature"
	ErrMsgMalformedPayload   = "failed to parse webhook payload"
	ErrMsgInternalError      = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeVerificationFailed: ErrMsgVerificationFailed,
	ErrCodeInvalidSignature:   ErrMsgInvalidSignature,
	ErrCodeMalformedPayload:   ErrMsgMalformedPayload,
	ErrCodeInternalError:      ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

// GetHTTPStatus maps an error code to the status returned to the platform.
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeVerificationFailed, ErrCodeInvalidSignature:
		return 403
	case ErrCodeMalformedPayload, ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
