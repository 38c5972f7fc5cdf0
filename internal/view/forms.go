package view

// FieldErrors maps a form field name to its localized validation message.
type FieldErrors map[string]string

// Has reports whether field failed validation.
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Get returns the message for field, or "".
func (f FieldErrors) Get(field string) string {
	return f[field]
}

// Any reports whether any field failed.
func (f FieldErrors) Any() bool {
	return len(f) > 0
}
