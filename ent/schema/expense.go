package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Expense is one entry of the expense diary.
type Expense struct {
	ent.Schema
}

func (Expense) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID"),
		field.String("description").
			NotEmpty(),
		field.Float("amount").
			Positive().
			Comment("Amount in BRL"),
		field.String("category"),
		field.String("feeling"),
		field.Time("spent_at").
			Comment("Stored as unix nanoseconds"),
	}
}

func (Expense) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("spent_at"),
	}
}
