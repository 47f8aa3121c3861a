package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/db/ent/schema/utils"
)

// ExamDocument is the uploaded document record owned by the outer
// application. Jobs without explicit input refs borrow theirs from here.
type ExamDocument struct{ ent.Schema }

func (ExamDocument) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "exam_document"},
	}
}

func (ExamDocument) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.UUID("owner_id", uuid.UUID{}),
		field.JSON("input_refs", []string{}).Optional(),
		field.String("title").Optional(),
		field.String("category").Optional().
			Validate(utils.EnumValidator(constants.AsStringSlice()...)),
		field.Time("created_at").Default(time.Now),
	}
}

func (ExamDocument) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("jobs", ExamJob.Type),
	}
}

func (ExamDocument) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id", "created_at"),
	}
}
