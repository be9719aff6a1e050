package pprint

import (
	"iter"
	"net/http"
	"slices"
	"strings"
)

// Headers is an ordered list of header fields with case-insensitive names.
// Insertion order is preserved, which net/http's map-based Header cannot do.
type Headers struct {
	fields []headerField
}

type headerField struct {
	name  string
	value string
}

// NewHeaders creates headers from alternating name and value arguments.
// A trailing name without a value gets an empty value.
func NewHeaders(pairs ...string) *Headers {
	h := &Headers{fields: make([]headerField, 0, (len(pairs)+1)/2)}

	for i := 0; i < len(pairs); i += 2 {
		var value string
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}

		h.Set(pairs[i], value)
	}

	return h
}

// HeadersFromHTTP converts a net/http header map.
// Names are sorted since the map has no order; multiple values are joined with ", ".
func HeadersFromHTTP(header http.Header) *Headers {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}

	slices.Sort(names)

	h := &Headers{fields: make([]headerField, 0, len(names))}
	for _, name := range names {
		h.fields = append(h.fields, headerField{name: name, value: strings.Join(header[name], ", ")})
	}

	return h
}

// Len returns the number of header fields.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}

	return len(h.fields)
}

// Get returns the value of the named field or an empty string.
func (h *Headers) Get(name string) string {
	if i := h.index(name); i >= 0 {
		return h.fields[i].value
	}

	return ""
}

// Has reports whether the named field is present.
func (h *Headers) Has(name string) bool {
	return h.index(name) >= 0
}

// Set replaces the value of the named field in place, or appends the field when it is absent.
func (h *Headers) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.fields[i].value = value

		return
	}

	h.fields = append(h.fields, headerField{name: name, value: value})
}

// Del removes the named field.
func (h *Headers) Del(name string) {
	if i := h.index(name); i >= 0 {
		h.fields = slices.Delete(h.fields, i, i+1)
	}
}

// All iterates over the fields in insertion order.
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if h == nil {
			return
		}

		for _, field := range h.fields {
			if !yield(field.name, field.value) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the headers.
func (h *Headers) Clone() *Headers {
	if h == nil {
		return NewHeaders()
	}

	return &Headers{fields: slices.Clone(h.fields)}
}

func (h *Headers) index(name string) int {
	if h == nil {
		return -1
	}

	return slices.IndexFunc(h.fields, func(field headerField) bool {
		return strings.EqualFold(field.name, name)
	})
}
