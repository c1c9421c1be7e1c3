package websocket

import "github.com/escolar-app/escolar-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventNotice Event = "notice"
	EventError  Event = "error"
	EventPong   Event = "pong"
)

// NoticeEvent carries a freshly published notice to stream subscribers.
type NoticeEvent struct {
	Event  Event        `json:"event"`
	Notice model.Notice `json:"notice"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
