package runtime

// Dict is the string-keyed mapping payload, used for language-level
// records and for the foreign export table. Keys are unique. The key
// domain is, by convention, a small fixed set of compiled record field
// names or export names, so entries are kept as an insertion-ordered
// association list and lookups scan linearly.
//
// A Dict takes ownership of one reference to every stored Value and
// releases the entries when the owning cell is freed. Not synchronized.
type Dict struct {
	entries []dictEntry
}

type dictEntry struct {
	key string
	val Value
}

// NewDict creates an empty dict.
func NewDict() *Dict {
	return &Dict{}
}

// Len returns the entry count.
func (d *Dict) Len() int {
	return len(d.entries)
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	for i := range d.entries {
		if d.entries[i].key == key {
			return true
		}
	}
	return false
}

// Get returns the value stored under key. The key must exist: checked
// mode faults when it is absent, unchecked mode returns the undefined
// Value. The result is borrowed; Retain it to keep it.
func (d *Dict) Get(key string) Value {
	for i := range d.entries {
		if d.entries[i].key == key {
			return d.entries[i].val
		}
	}
	if checksEnabled.Load() {
		fail("Dict.Get", "missing key %q", key)
	}
	return Value{}
}

// Ref returns a writable reference to the entry under key, inserting an
// empty entry when absent. The pointer is invalidated by later inserts.
// Writing through the reference transfers ownership of the written value
// to the dict; the previous value, if any, must be released by the writer.
func (d *Dict) Ref(key string) *Value {
	for i := range d.entries {
		if d.entries[i].key == key {
			return &d.entries[i].val
		}
	}
	d.entries = append(d.entries, dictEntry{key: key})
	return &d.entries[len(d.entries)-1].val
}

// Set stores val under key, releasing any previously stored value and
// taking ownership of val.
func (d *Dict) Set(key string, val Value) {
	for i := range d.entries {
		if d.entries[i].key == key {
			d.entries[i].val.Release()
			d.entries[i].val = val
			return
		}
	}
	d.entries = append(d.entries, dictEntry{key: key, val: val})
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.entries))
	for i := range d.entries {
		keys[i] = d.entries[i].key
	}
	return keys
}
