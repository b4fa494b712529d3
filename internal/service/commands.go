package service

type IncomingMessageCommand struct {
	MessageID string
	From      string
	Text      string
}
