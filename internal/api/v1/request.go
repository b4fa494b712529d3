package v1

// Query parameters of the subscription handshake.
const (
	QueryMode        = "hub.mode"
	QueryVerifyToken = "hub.verify_token"
	QueryChallenge   = "hub.challenge"

	ModeSubscribe = "subscribe"
)
