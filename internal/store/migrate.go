package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/cfdroid/ent/schema"
)

// Table names.
const (
	sessionsTable = "sessions"
	messagesTable = "chat_messages"
	eventsTable   = "llm_request_events"
)

// entityDef is the subset of ent.Interface needed to derive a table.
type entityDef interface {
	Fields() []ent.Field
	Indexes() []ent.Index
	Mixin() []ent.Mixin
}

var entities = []struct {
	table string
	def   entityDef
}{
	{sessionsTable, schema.Session{}},
	{messagesTable, schema.ChatMessage{}},
	{eventsTable, schema.LLMRequestEvent{}},
}

// migrate creates or upgrades all tables declared in ent/schema.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables := make([]*sqlschema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := buildTable(e.table, e.def)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}

// buildTable converts ent schema descriptors into a migration table with
// an auto-increment id primary key.
func buildTable(name string, def entityDef) (*sqlschema.Table, error) {
	id := &sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &sqlschema.Table{
		Name:       name,
		Columns:    []*sqlschema.Column{id},
		PrimaryKey: []*sqlschema.Column{id},
	}

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	byName := map[string]*sqlschema.Column{"id": id}
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		c := columnFor(d)
		t.Columns = append(t.Columns, c)
		byName[c.Name] = c
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*sqlschema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			c, ok := byName[fname]
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown column %q", name, fname)
			}
			cols = append(cols, c)
		}
		t.Indexes = append(t.Indexes, &sqlschema.Index{
			Name:    strings.TrimSuffix(name, "s") + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t, nil
}

func columnFor(d *field.Descriptor) *sqlschema.Column {
	c := &sqlschema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Unique:   d.Unique,
		Nullable: d.Optional || d.Nillable,
		Size:     int64(d.Size),
	}
	switch v := d.Default.(type) {
	case string, bool, int, int64, float64:
		c.Default = v
	}
	for _, e := range d.Enums {
		c.Enums = append(c.Enums, e.V)
	}
	return c
}
