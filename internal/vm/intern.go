package vm

// internString returns the canonical *ObjString for s, creating and
// registering one if this is the first time s has been seen. Two equal
// strings always return the same pointer (spec.md §8's interning
// property), which is what lets ValuesEqual compare string Values by
// identity instead of content.
func internString(strings *Table, s string) *ObjString {
	hash := hashString(s)
	if existing := strings.FindInterned(s, hash); existing != nil {
		return existing
	}
	obj := &ObjString{Chars: s, Hash: hash}
	strings.Set(obj, BoolValue(true))
	return obj
}
