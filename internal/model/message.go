package model

import "strings"

// WebhookEvent is the envelope the platform posts to the webhook. A single
// delivery may carry messages, delivery statuses or neither.
type WebhookEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

type ChangeValue struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
	Statuses         []Status  `json:"statuses,omitempty"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type Contact struct {
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
	WaID string `json:"wa_id"`
}

type Message struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
}

type Text struct {
	Body string `json:"body"`
}

type Status struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// FirstValue returns entry[0].changes[0].value.
func (e WebhookEvent) FirstValue() (ChangeValue, bool) {
	if len(e.Entry) == 0 || len(e.Entry[0].Changes) == 0 {
		return ChangeValue{}, false
	}
	return e.Entry[0].Changes[0].Value, true
}

// FirstMessage returns entry[0].changes[0].value.messages[0]. The second
// result is false for deliveries without messages, such as status callbacks.
func (e WebhookEvent) FirstMessage() (Message, bool) {
	value, ok := e.FirstValue()
	if !ok || len(value.Messages) == 0 {
		return Message{}, false
	}
	return value.Messages[0], true
}

// TextBody returns the text body when the message carries a non-blank one.
func (m Message) TextBody() (string, bool) {
	if m.Text == nil || strings.TrimSpace(m.Text.Body) == "" {
		return "", false
	}
	return m.Text.Body, true
}

// OutboundMessage is a reply addressed to a single recipient.
type OutboundMessage struct {
	Recipient string
	Body      string
}
