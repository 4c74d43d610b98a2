package domain

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAI     Sender = "ai"
	SenderAdmin  Sender = "admin"
	SenderSystem Sender = "system"
)

// Message is a single chat message as shown on the dashboard.
// Timestamp is milliseconds since epoch.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	Sender    Sender `json:"sender"`
}

// EpochMillis converts a provider timestamp in whole seconds to milliseconds.
func EpochMillis(seconds int64) int64 {
	return seconds * 1000
}

// ChatMessage is one turn of a conversation handed to the AI collaborator.
type ChatMessage struct {
	Role string `json:"role"` // "user" | "assistant" | "system"
	Text string `json:"text"`
}
