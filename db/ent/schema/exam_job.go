package schema

import (
	"encoding/json"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/db/ent/schema/utils"
)

type ExamJob struct{ ent.Schema }

func (ExamJob) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "exam_job"},
	}
}

func (ExamJob) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.UUID("owner_id", uuid.UUID{}),
		field.UUID("parent_doc_id", uuid.UUID{}).Optional().Nillable(),
		field.JSON("input_refs", []string{}).Optional(),
		field.String("exam_type_hint").Optional(),
		field.String("stage").Default(string(constants.StageCreated)).
			Validate(utils.EnumValidator(constants.AllStages...)),
		field.Int("progress").Default(0).Min(0).Max(100),
		field.Int("images_total").Default(0),
		field.Int("images_processed").Default(0),
		field.String("progress_message").Optional().
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.String("error_message").Optional().Nillable().
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.JSON("result", json.RawMessage{}).Optional(),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Optional().Nillable(),
		field.Time("finished_at").Optional().Nillable(),
	}
}

func (ExamJob) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("parent", ExamDocument.Type).
			Ref("jobs").
			Field("parent_doc_id").
			Unique(),
	}
}

func (ExamJob) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id", "stage", "created_at"),
		index.Fields("parent_doc_id"),
	}
}
