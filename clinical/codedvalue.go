package clinical

// TextCodingSystem is the synthetic coding system used for free-text values
// that carry no controlled code.
const TextCodingSystem = "TEXT"

// CodedValue is a normalized coded value: one coding system, an optional
// version, and one or more literal code or text values sharing that system.
// Values preserve insertion order.
type CodedValue struct {
	CodingSystem string   `json:"codingSystem"`
	Version      string   `json:"version,omitempty"`
	Values       []string `json:"values"`
}

// Text builds a CodedValue holding a single free-text value under the
// synthetic TEXT coding system.
func Text(value string) CodedValue {
	return CodedValue{
		CodingSystem: TextCodingSystem,
		Values:       []string{value},
	}
}
