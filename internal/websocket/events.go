package websocket

import "encoding/json"

// Event names pushed to clients.
const (
	EventOnlineUsers = "getOnlineUsers"
	EventNewMessage  = "newMessage"
)

// Event is the envelope for everything pushed over the socket channel.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// MarshalEvent encodes an event envelope for the wire.
func MarshalEvent(name string, data interface{}) ([]byte, error) {
	return json.Marshal(Event{Event: name, Data: data})
}
