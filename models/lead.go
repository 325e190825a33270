package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Default values applied to newly created leads.
const (
	DefaultLeadStatus = "new"
	DefaultLeadSource = "website"

	// LeadStatusClosed is the status counted by the dashboard's
	// closed-this-month counter.
	LeadStatusClosed = "closed"
)

// Lead is a sales prospect.
//
// IsActive is the soft-delete flag: inactive leads are invisible to every
// read, update and delete operation. ActivityCount is maintained
// incrementally when activities are attached and is never recomputed.
type Lead struct {
	ID               int64     `json:"id" db:"id"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	Email            string    `json:"email" db:"email"`
	Phone            string    `json:"phone" db:"phone"`
	Status           string    `json:"status" db:"status"`
	Source           string    `json:"source" db:"source"`
	BudgetMin        *int64    `json:"budget_min" db:"budget_min"`
	BudgetMax        *int64    `json:"budget_max" db:"budget_max"`
	PropertyInterest *string   `json:"property_interest" db:"property_interest"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
	ActivityCount    int64     `json:"activity_count" db:"activity_count"`
}

// TableName returns the name of the database table
// associated with the Lead model.
func (l Lead) TableName() string {
	return "leads"
}

// LeadCreate is the payload of a single lead in a create request.
//
// The names, email and phone must be present but may be empty. Status and
// Source take their defaults only when the key is absent from the payload.
type LeadCreate struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Status           string  `json:"status"`
	Source           string  `json:"source"`
	BudgetMin        *int64  `json:"budget_min"`
	BudgetMax        *int64  `json:"budget_max"`
	PropertyInterest *string `json:"property_interest"`

	// decoded is set by UnmarshalJSON, invalid lists the keys of the
	// payload that broke a presence rule.
	decoded bool
	invalid []FieldRule
}

// FieldRule names a JSON field and the rule it broke: "required" for an
// absent key, "notnull" for an explicit null.
type FieldRule struct {
	Field string
	Rule  string
}

// leadCreateKeys lists the string keys of a create payload in field order
// and whether each one must be present.
var leadCreateKeys = []struct {
	name     string
	required bool
}{
	{"first_name", true},
	{"last_name", true},
	{"email", true},
	{"phone", true},
	{"status", false},
	{"source", false},
}

func (c *LeadCreate) UnmarshalJSON(data []byte) error {
	type plain LeadCreate

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	decoded := plain{Status: DefaultLeadStatus, Source: DefaultLeadSource}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = LeadCreate(decoded)
	c.decoded = true
	c.invalid = nil

	for _, key := range leadCreateKeys {
		raw, ok := keys[key.name]
		switch {
		case !ok && key.required:
			c.invalid = append(c.invalid, FieldRule{Field: key.name, Rule: "required"})
		case ok && bytes.Equal(bytes.TrimSpace(raw), jsonNull):
			c.invalid = append(c.invalid, FieldRule{Field: key.name, Rule: "notnull"})
		}
	}
	return nil
}

// Invalid returns the presence rules broken by a decoded payload. It is
// empty for leads built in code.
func (c LeadCreate) Invalid() []FieldRule {
	return c.invalid
}

// WithDefaults returns a copy of c with empty Status and Source replaced by
// their defaults. Decoded payloads already carry their defaults and are
// returned unchanged, so an explicit empty string is kept.
func (c LeadCreate) WithDefaults() LeadCreate {
	if c.decoded {
		return c
	}
	if c.Status == "" {
		c.Status = DefaultLeadStatus
	}
	if c.Source == "" {
		c.Source = DefaultLeadSource
	}
	return c
}

// LeadUpdate is a partial lead update. An absent field is left untouched,
// an explicit null clears the column. Null is rejected by validation for
// columns that cannot hold it.
type LeadUpdate struct {
	FirstName        Optional[string] `json:"first_name,omitzero" validate:"notnull"`
	LastName         Optional[string] `json:"last_name,omitzero" validate:"notnull"`
	Email            Optional[string] `json:"email,omitzero" validate:"notnull"`
	Phone            Optional[string] `json:"phone,omitzero" validate:"notnull"`
	Status           Optional[string] `json:"status,omitzero" validate:"notnull"`
	Source           Optional[string] `json:"source,omitzero" validate:"notnull"`
	BudgetMin        Optional[int64]  `json:"budget_min,omitzero"`
	BudgetMax        Optional[int64]  `json:"budget_max,omitzero"`
	PropertyInterest Optional[string] `json:"property_interest,omitzero"`
	IsActive         Optional[bool]   `json:"is_active,omitzero" validate:"notnull"`
}

// Fields returns the column/value pairs present in the update. A null
// field maps to a nil value.
func (u LeadUpdate) Fields() map[string]any {
	fields := make(map[string]any, 10)
	setField(fields, "first_name", u.FirstName)
	setField(fields, "last_name", u.LastName)
	setField(fields, "email", u.Email)
	setField(fields, "phone", u.Phone)
	setField(fields, "status", u.Status)
	setField(fields, "source", u.Source)
	setField(fields, "budget_min", u.BudgetMin)
	setField(fields, "budget_max", u.BudgetMax)
	setField(fields, "property_interest", u.PropertyInterest)
	setField(fields, "is_active", u.IsActive)
	return fields
}

func setField[T any](fields map[string]any, column string, value Optional[T]) {
	if value.Set {
		fields[column] = value.column()
	}
}

// Default pagination values of the lead search.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// LeadFilter holds the search criteria of the lead list endpoint. Nil
// budget bounds and empty strings disable the corresponding filter.
type LeadFilter struct {
	Query     string
	Status    string
	Source    string
	MinBudget *int64
	MaxBudget *int64
	Page      uint64
	Size      uint64
}

// Offset returns the number of rows to skip for the current page.
func (f LeadFilter) Offset() uint64 {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Size
}
