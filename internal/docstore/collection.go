package docstore

import "maps"

// Record is a flat field map. Field order is irrelevant.
type Record map[string]string

// Clone returns a copy of the record. Cloning nil returns nil.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

func (r Record) matches(key, value string) bool {
	v, ok := r[key]
	return ok && v == value
}

// Collection is an insertion-ordered sequence of records.
type Collection struct {
	members []Record
}

// Len returns the number of records in the collection.
func (c *Collection) Len() int {
	return len(c.members)
}

// Insert appends a copy of rec. Inserting nil is a no-op.
func (c *Collection) Insert(rec Record) {
	if rec == nil {
		return
	}
	c.members = append(c.members, rec.Clone())
}

// FindOne returns a copy of the first record whose field key equals value.
func (c *Collection) FindOne(key, value string) (Record, bool) {
	for _, m := range c.members {
		if m.matches(key, value) {
			return m.Clone(), true
		}
	}
	return nil, false
}

// FindAll returns copies of every record whose field key equals value.
// Returns false if nothing matched.
func (c *Collection) FindAll(key, value string) ([]Record, bool) {
	var found []Record
	for _, m := range c.members {
		if m.matches(key, value) {
			found = append(found, m.Clone())
		}
	}
	return found, len(found) > 0
}

// All returns copies of every record in insertion order.
// Returns false if the collection is empty.
func (c *Collection) All() ([]Record, bool) {
	if len(c.members) == 0 {
		return nil, false
	}
	all := make([]Record, len(c.members))
	for i, m := range c.members {
		all[i] = m.Clone()
	}
	return all, true
}

// Replace swaps the fields of the first record matching key == value for a
// copy of rec. Returns false (and changes nothing) if no record matched or
// rec is nil.
func (c *Collection) Replace(key, value string, rec Record) bool {
	if rec == nil {
		return false
	}
	for i, m := range c.members {
		if m.matches(key, value) {
			c.members[i] = rec.Clone()
			return true
		}
	}
	return false
}

// ModifyField sets field on the first record matching key == value.
// The field must already exist on that record; new fields are never added.
func (c *Collection) ModifyField(key, value, field, newValue string) bool {
	for _, m := range c.members {
		if !m.matches(key, value) {
			continue
		}
		if _, ok := m[field]; !ok {
			return false
		}
		m[field] = newValue
		return true
	}
	return false
}

// Delete removes every record matching key == value and reports how many
// were removed.
func (c *Collection) Delete(key, value string) int {
	kept := c.members[:0]
	removed := 0
	for _, m := range c.members {
		if m.matches(key, value) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	clear(c.members[len(kept):])
	c.members = kept
	return removed
}
