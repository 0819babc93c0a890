package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ChatMessage is one entry of a session's append-only chat transcript.
type ChatMessage struct {
	ent.Schema
}

func (ChatMessage) Fields() []ent.Field {
	return []ent.Field{
		field.String("message_id").
			Unique().
			NotEmpty(),
		field.String("session_id").
			NotEmpty(),
		field.Enum("role").
			Values("user", "assistant"),
		field.Text("content"),
		field.Int64("timestamp").
			Comment("Epoch milliseconds"),
	}
}

func (ChatMessage) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
