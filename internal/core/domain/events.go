package domain

// EventType defines the type of real-time event.
type EventType string

const (
	EventNewMessage EventType = "newMessage"
)

// Event is the envelope pushed to dashboard clients over WebSocket.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewMessagePayload carries an inbound message together with the resolved
// contact it belongs to.
type NewMessagePayload struct {
	ContactID string  `json:"contactId"`
	Message   Message `json:"message"`
}

// NewMessageEvent builds the event published when a customer message arrives.
func NewMessageEvent(contactID string, msg Message) Event {
	return Event{
		Type:    EventNewMessage,
		Payload: NewMessagePayload{ContactID: contactID, Message: msg},
	}
}
