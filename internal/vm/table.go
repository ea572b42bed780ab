package vm

// Table is an open-addressed, linear-probing hash table keyed by
// interned *ObjString, grounded directly in
// original_source/clox/table.c (findEntry/adjustCapacity/tableGet/
// tableSet/tableDelete) rather than the teacher's own globals_map.go,
// which is a persistent HAMT and cannot express spec.md §4.7's
// tombstone/load-factor/linear-probing invariants.
type Table struct {
	count    int
	entries  []entry
	capacity int
}

type entry struct {
	key   *ObjString
	value Value
	// tombstone marks a deleted slot: key == nil, tombstone == true.
	// (clox reuses the Value union for this with boolVal(true); Go's
	// Value already carries a bool variant, but a dedicated flag here
	// keeps findEntry's empty-vs-tombstone test exact regardless of
	// what a live nil-keyed slot's zero Value would otherwise mean.)
	tombstone bool
}

const tableMaxLoad = 0.75

func NewTable() *Table {
	return &Table{}
}

// findEntry probes from key's hash bucket until it finds the key, or an
// empty slot — remembering the first tombstone seen along the way so an
// insert can reuse it rather than extend the probe chain further
// (original_source/clox/table.c's findEntry).
func findEntry(entries []entry, capacity int, key *ObjString) int {
	index := int(key.Hash) % capacity
	tombstoneIdx := -1

	for {
		e := &entries[index]
		switch {
		case e.key == nil && !e.tombstone:
			if tombstoneIdx != -1 {
				return tombstoneIdx
			}
			return index
		case e.key == nil && e.tombstone:
			if tombstoneIdx == -1 {
				tombstoneIdx = index
			}
		case e.key == key:
			return index
		}
		index = (index + 1) % capacity
	}
}

func (t *Table) adjustCapacity(capacity int) {
	entries := make([]entry, capacity)

	oldCount := t.count
	t.count = 0
	for i := 0; i < t.capacity; i++ {
		old := t.entries[i]
		if old.key == nil {
			continue
		}
		idx := findEntry(entries, capacity, old.key)
		entries[idx].key = old.key
		entries[idx].value = old.value
		t.count++
	}
	_ = oldCount

	t.entries = entries
	t.capacity = capacity
}

// Get returns the value bound to key, if any.
func (t *Table) Get(key *ObjString) (Value, bool) {
	if t.count == 0 {
		return Value{}, false
	}
	idx := findEntry(t.entries, t.capacity, key)
	e := &t.entries[idx]
	if e.key == nil {
		return Value{}, false
	}
	return e.value, true
}

// Set inserts or overwrites key's binding, growing the table first if
// the load factor would exceed 0.75 (count includes tombstones, per
// spec.md §4.7). Returns true if this created a brand-new key.
func (t *Table) Set(key *ObjString, value Value) bool {
	if float64(t.count+1) > float64(t.capacity)*tableMaxLoad {
		capacity := growCapacity(t.capacity)
		t.adjustCapacity(capacity)
	}

	idx := findEntry(t.entries, t.capacity, key)
	e := &t.entries[idx]
	isNewKey := e.key == nil
	if isNewKey && !e.tombstone {
		t.count++
	}

	e.key = key
	e.value = value
	e.tombstone = false
	return isNewKey
}

// Delete overwrites key's slot with a tombstone so later probes that
// skipped over it during insertion still find their target.
func (t *Table) Delete(key *ObjString) bool {
	if t.count == 0 {
		return false
	}
	idx := findEntry(t.entries, t.capacity, key)
	e := &t.entries[idx]
	if e.key == nil {
		return false
	}
	e.key = nil
	e.tombstone = true
	return true
}

// FindInterned looks up a string by (length, hash, bytes) without
// allocating an ObjString first, the specialized comparison spec.md
// §4.7 calls for to support string interning.
func (t *Table) FindInterned(chars string, hash uint32) *ObjString {
	if t.count == 0 {
		return nil
	}
	index := int(hash) % t.capacity
	for {
		e := &t.entries[index]
		switch {
		case e.key == nil && !e.tombstone:
			return nil
		case e.key != nil && e.key.Hash == hash && e.key.Chars == chars:
			return e.key
		}
		index = (index + 1) % t.capacity
	}
}

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}
