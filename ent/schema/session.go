package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Session holds the per-session profile metadata document. One row per
// session identifier.
type Session struct {
	ent.Schema
}

func (Session) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Unique().
			NotEmpty(),
		field.Int("version").
			Default(0).
			Comment("Schema version of the metadata document"),
		field.Text("metadata").
			Default("{}").
			Comment("Profile metadata as JSON: recents, quiz result"),
		field.Int64("created_at"),
		field.Int64("updated_at"),
	}
}
