package handler

import "github.com/lambda-feedback/simpleserver/internal/server"

const faultMessage = "Something went wrong!"

type faultResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// NewFaultResponder returns the responder used once a handler
// panicked. It never exposes the cause.
func NewFaultResponder(res *Responder) server.FaultResponder {
	return res
}
