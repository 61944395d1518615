package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Snapshot is one saved copy of the user's journey: profile, answers,
// score, onboarding result and chat.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Text("data").
			Comment("Journey snapshot as JSON"),
	}
}
