package entity

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry of the conversation history.
//
// Content may embed textual conventions such as a <thinking> region or an
// appended "TOOL RESULTS:" block; neither is a structured field.
type Message struct {
	// Role is the sender role (system/user/assistant).
	Role Role `json:"role"`

	// Content is the text content of the message.
	Content string `json:"content"`

	// Name is an optional sender name.
	Name string `json:"name,omitempty"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
