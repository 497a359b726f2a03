package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/expenseops/ticketing-system/internal/core/domain"
)

// Update is a single proposed field edit. A batch of updates is an explicit
// instruction list, not a partial record, so each element can be rejected
// individually by property name.
type Update struct {
	Property string `json:"property"`
	Value    any    `json:"value"`
}

// usernameSpecials are the characters a username may never contain.
const usernameSpecials = " `!@#$%^&*()+=[]{};':\"\\|,.<>/?~"

// ruleFunc is a semantic rule for a single field value. The value has
// already passed the registry type check when a rule runs.
type ruleFunc func(value any) error

// rules maps each registered field of each entity to its semantic rule.
// Extending the schema means adding a map entry, not a branch. A field
// present in the registry but absent here is readable yet never updatable:
// a ticket's type is fixed at creation.
var rules = map[Entity]map[string]ruleFunc{
	EntityTicket: {
		"pkey":        uuidRule,
		"processor":   uuidRule,
		"owner":       uuidRule,
		"status":      storedStatusRule,
		"amount":      positiveAmountRule,
		"description": nonEmptyRule,
	},
	EntityUser: {
		"pkey":     uuidRule,
		"role":     roleRule,
		"username": usernameRule,
		"password": nonEmptyRule,
	},
}

// ValidateUpdates checks every element of a proposed update batch against
// the Field Schema Registry and per-field semantic rules. The check is
// short-circuiting: the first failing element rejects the whole batch, so
// callers get all-or-nothing semantics for a single update call.
func ValidateUpdates(entity Entity, updates []Update) error {
	for _, u := range updates {
		kind, ok := FieldKind(entity, u.Property)
		if !ok {
			return fmt.Errorf("%w: unknown property %q", domain.ErrValidation, u.Property)
		}
		if !matchesKind(kind, u.Value) {
			return fmt.Errorf("%w: property %q expects %s", domain.ErrValidation, u.Property, kind)
		}
		rule := rules[entity][u.Property]
		if rule == nil {
			return fmt.Errorf("%w: property %q is not updatable", domain.ErrValidation, u.Property)
		}
		if err := rule(u.Value); err != nil {
			return fmt.Errorf("%w: property %q: %v", domain.ErrValidation, u.Property, err)
		}
	}
	return nil
}

// matchesKind checks the dynamic type of a JSON-decoded value against the
// registered kind. encoding/json decodes numbers to float64 and strings to
// string; anything else is a mismatch.
func matchesKind(kind Kind, value any) bool {
	switch kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindNumber:
		_, ok := value.(float64)
		return ok
	default:
		return false
	}
}

// ValidUUID reports whether s is a well-formed UUID.
func ValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ValidUsername reports whether s is non-empty and free of the fixed set
// of forbidden punctuation and special characters.
func ValidUsername(s string) bool {
	return s != "" && !strings.ContainsAny(s, usernameSpecials)
}

// ValidPassword reports whether s satisfies the password rule.
func ValidPassword(s string) bool {
	return s != ""
}

func uuidRule(value any) error {
	if !ValidUUID(value.(string)) {
		return fmt.Errorf("not a valid UUID")
	}
	return nil
}

// storedStatusRule accepts only statuses a ticket may persist. The "all"
// sentinel is valid in list queries but never as a stored value.
func storedStatusRule(value any) error {
	if !domain.TicketStatus(value.(string)).Stored() {
		return fmt.Errorf("not a valid status")
	}
	return nil
}

func positiveAmountRule(value any) error {
	if value.(float64) <= 0 {
		return fmt.Errorf("must be strictly positive")
	}
	return nil
}

func nonEmptyRule(value any) error {
	if value.(string) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func usernameRule(value any) error {
	if !ValidUsername(value.(string)) {
		return fmt.Errorf("contains forbidden characters or is empty")
	}
	return nil
}

func roleRule(value any) error {
	if !domain.ValidRole(value.(string)) {
		return fmt.Errorf("not a valid role")
	}
	return nil
}
