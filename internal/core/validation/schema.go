// Package validation implements the schema-driven update validator that
// guards every field mutation before it reaches persistence.
package validation

// Entity names the schemas known to the registry.
type Entity string

const (
	EntityTicket Entity = "ticket"
	EntityUser   Entity = "user"
)

// Kind is the primitive type a field must decode to. JSON numbers arrive
// as float64, so KindNumber matches float64 exactly.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
)

// schemas is the Field Schema Registry: per entity, the set of mutable
// field names and their primitive kinds. Immutable after init.
var schemas = map[Entity]map[string]Kind{
	EntityTicket: {
		"pkey":        KindString,
		"status":      KindString,
		"type":        KindString,
		"processor":   KindString,
		"amount":      KindNumber,
		"description": KindString,
		"owner":       KindString,
	},
	EntityUser: {
		"pkey":     KindString,
		"role":     KindString,
		"username": KindString,
		"password": KindString,
	},
}

// FieldKind looks up the registered kind for a field of an entity.
func FieldKind(entity Entity, field string) (Kind, bool) {
	kind, ok := schemas[entity][field]
	return kind, ok
}
