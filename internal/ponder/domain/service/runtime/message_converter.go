package runtime

import (
	"github.com/cloudwego/eino/schema"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
)

// ToSchemaMessages converts domain messages to Eino schema messages.
func ToSchemaMessages(msgs []entity.Message) []*schema.Message {
	result := make([]*schema.Message, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, ToSchemaMessage(msg))
	}
	return result
}

func ToSchemaMessage(msg entity.Message) *schema.Message {
	return &schema.Message{
		Role:    toSchemaRole(msg.Role),
		Content: msg.Content,
		Name:    msg.Name,
	}
}

// FromSchemaMessage converts an Eino reply back to a domain message.
// ReasoningContent becomes a leading <thinking> region unless the content
// already has one.
func FromSchemaMessage(sm *schema.Message) entity.Message {
	if sm == nil {
		return entity.Message{}
	}
	content := sm.Content
	if sm.ReasoningContent != "" && !thinkingRegionRe.MatchString(content) {
		content = "<thinking>\n" + sm.ReasoningContent + "\n</thinking>\n\n" + content
	}
	return entity.Message{
		Role:    fromSchemaRole(sm.Role),
		Content: content,
		Name:    sm.Name,
	}
}

func toSchemaRole(role entity.Role) schema.RoleType {
	switch role {
	case entity.RoleAssistant:
		return schema.Assistant
	case entity.RoleSystem:
		return schema.System
	default:
		return schema.User
	}
}

func fromSchemaRole(role schema.RoleType) entity.Role {
	switch role {
	case schema.Assistant:
		return entity.RoleAssistant
	case schema.System:
		return entity.RoleSystem
	default:
		return entity.RoleUser
	}
}
