package ws

import (
	"encoding/json"

	"github.com/windoze95/recipefinder/internal/finder"
)

// WebSocket message types for the live search protocol.
const (
	MsgTypeQuery     = "query"     // Client keystroke: {"q": "..."}
	MsgTypeSelect    = "select"    // Client opens a recipe: {"id": 123}
	MsgTypeBack      = "back"      // Client returns to the result grid
	MsgTypeState     = "state"     // Server pushes the current view state
	MsgTypeError     = "error"     // Server rejects a malformed message
	MsgTypeConnected = "connected" // Connection confirmed
)

// View modes reported in StatePayload.
const (
	ModeGrid    = "grid"
	ModeLoading = "loading"
	ModeDetail  = "detail"
)

// WSMessage is the envelope for all messages on the live search socket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// QueryPayload carries the text of the search box.
type QueryPayload struct {
	Q string `json:"q"`
}

// SelectPayload carries the ID of the clicked recipe card.
type SelectPayload struct {
	ID int `json:"id"`
}

// StatePayload is the full view state plus the pre-split instruction steps.
type StatePayload struct {
	finder.State
	Mode  string   `json:"mode"`
	Steps []string `json:"steps,omitempty"`
}

// ErrorPayload describes a rejected client message.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms the session.
type ConnectedPayload struct {
	SessionID string `json:"sessionId"`
}

func newStatePayload(s finder.State) StatePayload {
	mode := ModeGrid
	switch {
	case s.ShowingDetail():
		mode = ModeDetail
	case s.DetailLoading:
		mode = ModeLoading
	}
	return StatePayload{State: s, Mode: mode, Steps: s.Steps()}
}

// encode builds a message envelope. Payload types are all plain structs,
// so marshalling cannot fail.
func encode(msgType string, payload interface{}) []byte {
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}
	data, _ := json.Marshal(WSMessage{Type: msgType, Payload: raw})
	return data
}
