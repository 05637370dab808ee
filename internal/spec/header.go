package spec

import "strings"

// Header is an insertion ordered mapping of header keys to values.
//
// Unlike [net/http.Header], keys are not canonicalised and every key holds a
// single value, the last one set. Overwriting a key keeps its original position.
//
// The zero value is an empty Header ready to use.
type Header struct {
	values map[string]string
	keys   []string
}

// Set sets key to value, overwriting any previous value for exactly that key.
func (h *Header) Set(key, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}

	if _, exists := h.values[key]; !exists {
		h.keys = append(h.keys, key)
	}

	h.values[key] = value
}

// SetFold is like [Header.Set] but matches an existing key case insensitively,
// in which case the value is overwritten in place and the existing key spelling
// is kept.
func (h *Header) SetFold(key, value string) {
	if existing, ok := h.lookup(key); ok {
		h.values[existing] = value
		return
	}

	h.Set(key, value)
}

// Get returns the value for key, matched case insensitively, and whether
// it was present.
func (h Header) Get(key string) (string, bool) {
	existing, ok := h.lookup(key)
	if !ok {
		return "", false
	}

	return h.values[existing], true
}

// Has reports whether a key matching key case insensitively is present.
func (h Header) Has(key string) bool {
	_, ok := h.lookup(key)
	return ok
}

// Len returns the number of distinct keys in the Header.
func (h Header) Len() int {
	return len(h.keys)
}

// All returns the headers as an ordered list of [KeyValue].
func (h Header) All() []KeyValue {
	all := make([]KeyValue, 0, len(h.keys))
	for _, key := range h.keys {
		all = append(all, KeyValue{Key: key, Value: h.values[key]})
	}

	return all
}

// lookup finds the first key that matches key case insensitively.
func (h Header) lookup(key string) (string, bool) {
	if _, ok := h.values[key]; ok {
		return key, true
	}

	for _, existing := range h.keys {
		if strings.EqualFold(existing, key) {
			return existing, true
		}
	}

	return "", false
}
