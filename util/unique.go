package util

import (
	"fmt"

	"gorm.io/gorm"
)

// UniqueField describes one pre-write uniqueness check. Query is a SQL
// predicate matching candidate duplicates; compound checks (such as the
// patient government ID pair) pass every column in a single predicate.
type UniqueField struct {
	Name  string // field name reported back to the client
	Label string // noun used in the violation message
	Value string // blank values skip the check entirely
	Query string
	Args  []interface{}
}

// FieldViolation reports the first violated uniqueness constraint.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ViolationError carries a FieldViolation out of a transaction closure so the
// caller can answer with a field-attributed client error instead of a 500.
type ViolationError struct {
	Violation FieldViolation
}

func (e *ViolationError) Error() string { return e.Violation.Message }

// CheckUnique runs each field's existence query against the table of the
// given model, skipping blank values. When excludeID is non-zero the record
// with that ID is ignored, so updates may resubmit their own values.
// The first violation short-circuits; a nil violation with a nil error means
// every field is free. Query failures surface as errors, never violations.
func CheckUnique(db *gorm.DB, entity interface{}, fields []UniqueField, excludeID uint) (*FieldViolation, error) {
	for _, f := range fields {
		if f.Value == "" {
			continue
		}

		query := db.Model(entity).Where(f.Query, f.Args...)
		if excludeID > 0 {
			query = query.Where("id <> ?", excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return nil, fmt.Errorf("uniqueness check for %s failed: %w", f.Name, err)
		}
		if count > 0 {
			return &FieldViolation{
				Field:   f.Name,
				Message: fmt.Sprintf("%s is already registered", f.Label),
			}, nil
		}
	}
	return nil, nil
}
