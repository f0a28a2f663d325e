// Package schemas provides the tool definition registry and its constraint
// vocabulary. Definitions are built once at startup and never mutated, so the
// registry is safe for concurrent readers.
package schemas

import "encoding/json"

// FieldType enumerates the wire types a tool field may declare.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
	FieldArray   FieldType = "array"
)

// FieldSpec describes a single tool argument and its constraints.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
	Enum        []string // allowed values for string fields
	Min         *int     // inclusive lower bound for integer fields
	Max         *int     // inclusive upper bound for integer fields
	MinItems    int      // minimum length for array fields
}

// Definition describes one tool: its name and ordered field specs.
type Definition struct {
	Name        string
	Description string
	Fields      []FieldSpec
}

// Field returns the spec for the named field.
func (d *Definition) Field(name string) (*FieldSpec, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// Required returns the names of all required fields, in declaration order.
func (d *Definition) Required() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// ============================================================
// Builder
// ============================================================

// Builder provides a fluent interface for building tool definitions.
type Builder struct {
	def *Definition
}

// NewDefinition creates a new definition builder.
func NewDefinition(name, description string) *Builder {
	return &Builder{
		def: &Definition{
			Name:        name,
			Description: description,
		},
	}
}

// String adds a string field.
func (b *Builder) String(name, description string, required bool) *Builder {
	b.def.Fields = append(b.def.Fields, FieldSpec{
		Name:        name,
		Type:        FieldString,
		Description: description,
		Required:    required,
	})
	return b
}

// Enum adds a string field restricted to the given values.
func (b *Builder) Enum(name, description string, values []string, required bool) *Builder {
	b.def.Fields = append(b.def.Fields, FieldSpec{
		Name:        name,
		Type:        FieldString,
		Description: description,
		Required:    required,
		Enum:        values,
	})
	return b
}

// Integer adds an integer field bounded to [min, max].
func (b *Builder) Integer(name, description string, min, max int, required bool) *Builder {
	b.def.Fields = append(b.def.Fields, FieldSpec{
		Name:        name,
		Type:        FieldInteger,
		Description: description,
		Required:    required,
		Min:         &min,
		Max:         &max,
	})
	return b
}

// Array adds an array-of-strings field with a minimum length.
func (b *Builder) Array(name, description string, minItems int, required bool) *Builder {
	b.def.Fields = append(b.def.Fields, FieldSpec{
		Name:        name,
		Type:        FieldArray,
		Description: description,
		Required:    required,
		MinItems:    minItems,
	})
	return b
}

// Build returns the constructed definition.
func (b *Builder) Build() *Definition {
	return b.def
}

// ============================================================
// Registry
// ============================================================

// Registry holds all tool definitions.
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition to the registry.
func (r *Registry) Register(def *Definition) {
	if _, exists := r.defs[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.defs[def.Name] = def
}

// Get retrieves a definition by name.
func (r *Registry) Get(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// List returns all definitions in registration order.
func (r *Registry) List() []*Definition {
	defs := make([]*Definition, 0, len(r.defs))
	for _, name := range r.order {
		defs = append(defs, r.defs[name])
	}
	return defs
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// WireFormat renders all definitions as tool-use schema objects for the
// model request.
func (r *Registry) WireFormat() []map[string]any {
	result := make([]map[string]any, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.defs[name].WireFormat())
	}
	return result
}

// WireFormat renders the definition as a JSON-Schema-like object.
func (d *Definition) WireFormat() map[string]any {
	properties := make(map[string]any, len(d.Fields))
	required := make([]string, 0)

	for _, f := range d.Fields {
		prop := map[string]any{
			"type":        string(f.Type),
			"description": f.Description,
		}
		if len(f.Enum) > 0 {
			prop["enum"] = f.Enum
		}
		if f.Min != nil {
			prop["minimum"] = *f.Min
		}
		if f.Max != nil {
			prop["maximum"] = *f.Max
		}
		if f.Type == FieldArray {
			prop["items"] = map[string]any{"type": "string"}
			if f.MinItems > 0 {
				prop["minItems"] = f.MinItems
			}
		}
		properties[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}

	return map[string]any{
		"name":        d.Name,
		"description": d.Description,
		"input_schema": map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}

// ToJSON returns the registry as JSON for debugging.
func (r *Registry) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r.WireFormat(), "", "  ")
}
