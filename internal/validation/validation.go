// Package validation evaluates per-operation field schemas against decoded
// JSON payloads and reports every violated field at once.
package validation

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"academic_records/internal/storage"
)

// Rule is the constraint list of one field
type Rule struct {
	// Tags is a validator tag list, e.g. "required,string,unique=students.student_id_number"
	Tags string
	// Sometimes skips the field entirely when it is absent from the payload
	Sometimes bool
}

// Schema maps field names to their rules
type Schema map[string]Rule

// Pick keeps only the payload keys the schema knows about
func (s Schema) Pick(payload map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(s))
	for field := range s {
		if v, ok := payload[field]; ok {
			out[field] = v
		}
	}
	return out
}

// Optional returns a copy of the schema where every field is Sometimes
func (s Schema) Optional() Schema {
	out := make(Schema, len(s))
	for field, rule := range s {
		rule.Sometimes = true
		out[field] = rule
	}
	return out
}

// Fields returns the schema's field names in a stable order
func (s Schema) Fields() []string {
	fields := make([]string, 0, len(s))
	for field := range s {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Violation is one failed constraint
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error carries every violation of one payload
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields groups messages by field name
func (e *Error) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Violations))
	for _, v := range e.Violations {
		out[v.Field] = append(out[v.Field], v.Message)
	}
	return out
}

// Has reports whether field has a violation
func (e *Error) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// NewError builds an Error for a single field, used for conflicts found at write time
func NewError(field, rule string) *Error {
	return &Error{Violations: []Violation{{Field: field, Rule: rule, Message: message(field, rule, "")}}}
}

// Validator runs schemas. Database-backed rules (exists, unique) query db.
type Validator struct {
	validate *validator.Validate
	db       *storage.DB
}

func New(db *storage.DB) *Validator {
	v := &Validator{validate: validator.New(), db: db}
	v.registerRules()
	return v
}

// Validate checks payload against schema. It returns nil, an *Error listing
// every violated field, or a plain error when a database check itself failed.
func (v *Validator) Validate(ctx context.Context, schema Schema, payload map[string]interface{}) error {
	state := &checkState{}
	ctx = context.WithValue(ctx, stateKey{}, state)

	var violations []Violation
	for _, field := range schema.Fields() {
		rule := schema[field]
		value, present := payload[field]
		if rule.Sometimes && !present {
			continue
		}

		tags, confirmed := splitConfirmed(rule.Tags)
		if value == nil {
			// JSON null counts as missing
			if hasTag(tags, "required") {
				violations = append(violations, Violation{Field: field, Rule: "required", Message: message(field, "required", "")})
			}
			continue
		}
		if err := v.validate.VarCtx(ctx, value, tags); err != nil {
			fieldErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				return fmt.Errorf("validate %s: %w", field, err)
			}
			for _, fe := range fieldErrs {
				violations = append(violations, Violation{
					Field:   field,
					Rule:    fe.Tag(),
					Message: message(field, fe.Tag(), fe.Param()),
				})
			}
			continue
		}
		if confirmed && !reflect.DeepEqual(payload[field+"_confirmation"], value) {
			violations = append(violations, Violation{Field: field, Rule: "confirmed", Message: message(field, "confirmed", "")})
		}
	}

	if state.err != nil {
		return fmt.Errorf("validation lookup: %w", state.err)
	}
	if len(violations) > 0 {
		return &Error{Violations: violations}
	}
	return nil
}

// splitConfirmed removes the confirmed pseudo tag, which needs the whole payload
func splitConfirmed(tags string) (string, bool) {
	parts := strings.Split(tags, ",")
	kept := parts[:0]
	confirmed := false
	for _, p := range parts {
		if p == "confirmed" {
			confirmed = true
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ","), confirmed
}

func hasTag(tags, tag string) bool {
	for _, t := range strings.Split(tags, ",") {
		if t == tag {
			return true
		}
	}
	return false
}

func message(field, rule, param string) string {
	name := strings.ReplaceAll(field, "_", " ")
	switch rule {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "string":
		return fmt.Sprintf("The %s must be a string.", name)
	case "integer":
		return fmt.Sprintf("The %s must be an integer.", name)
	case "date":
		return fmt.Sprintf("The %s is not a valid date.", name)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", name)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", name, param)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", name, param)
	case "exists":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "unique":
		return fmt.Sprintf("The %s has already been taken.", name)
	case "confirmed":
		return fmt.Sprintf("The %s confirmation does not match.", name)
	default:
		return fmt.Sprintf("The %s is invalid.", name)
	}
}
