package models

import "time"

// Transaction is a single budget entry. Description is the sensitive
// field: it exists as plaintext only in memory, and is persisted as the
// DescriptionEncrypted/DescriptionSalt pair produced by the record
// transform.
type Transaction struct {
	ID                   string
	UserID               string
	Date                 time.Time
	Amount               float64
	Category             string
	Type                 string
	Description          string
	DescriptionEncrypted string
	DescriptionSalt      string
	CreatedAt            time.Time
}

// Record returns the transform-facing view of the transaction: a field
// map holding whichever form of the description the struct currently
// carries, plus the pass-through fields.
func (t *Transaction) Record() map[string]any {
	record := map[string]any{
		"amount":   t.Amount,
		"category": t.Category,
		"type":     t.Type,
	}
	if t.Description != "" {
		record["description"] = t.Description
	}
	if t.DescriptionEncrypted != "" || t.DescriptionSalt != "" {
		record["description_encrypted"] = t.DescriptionEncrypted
		record["description_salt"] = t.DescriptionSalt
	}
	return record
}

// ApplyRecord copies the description fields of a transformed record back
// into the struct. A form absent from the record resets to "".
func (t *Transaction) ApplyRecord(record map[string]any) {
	t.Description = stringField(record, "description")
	t.DescriptionEncrypted = stringField(record, "description_encrypted")
	t.DescriptionSalt = stringField(record, "description_salt")
}

func stringField(record map[string]any, key string) string {
	if v, ok := record[key].(string); ok {
		return v
	}
	return ""
}
