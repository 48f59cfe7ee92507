package domain

// FieldKind distinguishes the three shapes a normalized field can take.
type FieldKind int

const (
	// FieldUnset marks a field whose key exists but whose value is absent,
	// e.g. a single-select the user never touched.
	FieldUnset FieldKind = iota
	FieldText
	FieldList
)

// FieldValue is one normalized form value: a string, an ordered list of
// strings, or unset. An empty list is a real value, distinct from unset.
type FieldValue struct {
	Kind  FieldKind
	Text  string
	Items []string
}

// TextValue builds a text field value.
func TextValue(s string) FieldValue {
	return FieldValue{Kind: FieldText, Text: s}
}

// ListValue builds a list field value. A nil slice becomes an empty list so
// callers can range over Items unconditionally.
func ListValue(items []string) FieldValue {
	if items == nil {
		items = []string{}
	}
	return FieldValue{Kind: FieldList, Items: items}
}

// UnsetValue builds the present-but-empty value.
func UnsetValue() FieldValue {
	return FieldValue{Kind: FieldUnset}
}

// IsSet reports whether the field carries a usable value.
func (v FieldValue) IsSet() bool {
	return v.Kind != FieldUnset
}

// Submission is the flat field-name → value record produced by normalization
// (or taken verbatim from a dialog submission). Keys are semantic field names
// with the UI type prefix already stripped.
type Submission map[string]FieldValue

// Text returns the string rendering of a field: the text itself, a
// comma-joined list, or "" when unset.
func (s Submission) Text(name string) string {
	v, ok := s[name]
	if !ok || !v.IsSet() {
		return ""
	}
	if v.Kind == FieldList {
		out := ""
		for i, item := range v.Items {
			if i > 0 {
				out += ", "
			}
			out += item
		}
		return out
	}
	return v.Text
}

// Has reports whether the field exists and carries a value. List fields count
// as present even when empty.
func (s Submission) Has(name string) bool {
	v, ok := s[name]
	return ok && v.IsSet()
}

// FromFlat converts legacy flat key→value data (dialog submissions) into a
// Submission without further interpretation.
func FromFlat(values map[string]string) Submission {
	sub := make(Submission, len(values))
	for k, v := range values {
		sub[k] = TextValue(v)
	}
	return sub
}
