package service

import "github.com/bright0ne/A.M-Yusuf-Official/internal/model"

type ReplyResult struct {
	Outbound  model.OutboundMessage
	MessageID string
}
