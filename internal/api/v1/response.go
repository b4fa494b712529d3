package v1

type AckResponse struct {
	Status string `json:"status"`
}

var ack = AckResponse{Status: "ok"}
