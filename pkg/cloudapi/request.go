package cloudapi

const (
	MessagingProduct        = "whatsapp"
	RecipientTypeIndividual = "individual"
	MessageTypeText         = "text"

	// MaxTextBodyLength is the platform limit for a text message body.
	MaxTextBodyLength = 4096
)

type SendMessageRequest struct {
	MessagingProduct string      `json:"messaging_product" validate:"required"`
	RecipientType    string      `json:"recipient_type" validate:"required"`
	To               string      `json:"to" validate:"required"`
	Type             string      `json:"type" validate:"required"`
	Text             TextPayload `json:"text"`
}

type TextPayload struct {
	Body       string `json:"body" validate:"required,max=4096"`
	PreviewURL bool   `json:"preview_url"`
}

func NewTextMessageRequest(to, body string) SendMessageRequest {
	return SendMessageRequest{
		MessagingProduct: MessagingProduct,
		RecipientType:    RecipientTypeIndividual,
		To:               to,
		Type:             MessageTypeText,
		Text:             TextPayload{Body: body},
	}
}
