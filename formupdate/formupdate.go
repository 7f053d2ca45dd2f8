// Package formupdate applies batched partial form updates to editable records.
// Updates arrive keyed the way HTML forms send them: record id string to a map
// of field name to new value string.
package formupdate

import (
	"sort"
	"strconv"
)

// Record exposes an enumerated set of string-addressable fields. Addressing a
// field outside that set is an error the caller sees unmodified.
type Record interface {
	FieldValue(name string) (string, error)
	SetFieldValue(name, value string) error
}

// Store resolves records by their form id and persists them.
type Store interface {
	FindRecord(id string) (Record, error)
	SaveRecord(r Record) error
}

// Apply walks updates record by record: fields whose new value differs from
// the current one are set, then the record is saved exactly once — even when
// no field changed. A nil or empty updates map performs no store calls at all.
// Lookup, unknown-field and save errors propagate unmodified. Records are
// processed in ascending numeric id order so runs are deterministic.
func Apply(store Store, updates map[string]map[string]string) error {
	if len(updates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(updates))
	for id := range updates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		rec, err := store.FindRecord(id)
		if err != nil {
			return err
		}
		for field, value := range updates[id] {
			current, err := rec.FieldValue(field)
			if err != nil {
				return err
			}
			if current == value {
				continue
			}
			if err := rec.SetFieldValue(field, value); err != nil {
				return err
			}
		}
		if err := store.SaveRecord(rec); err != nil {
			return err
		}
	}
	return nil
}
