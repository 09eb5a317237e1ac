package clinical

// UnknownDate is the sentinel stored when a date is required but could not be
// determined. It is the value returned by epoch conversion for empty or
// unparseable timestamps, and the birthdate recorded for a patient with no
// birth timestamp. Optional entity timestamps never carry the sentinel; they
// are simply nil.
const UnknownDate int64 = -999999999999

// Actor is a reference to a person or organization mentioned anywhere in the
// source document. Only the identifier is carried.
type Actor struct {
	ID string `json:"id"`
}

// Patient holds the demographics extracted for the document's patient.
// Birthdate is epoch seconds, or UnknownDate when the source carries no birth
// timestamp, because downstream age-based logic requires a concrete value.
type Patient struct {
	First     string `json:"first,omitempty"`
	Last      string `json:"last,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Birthdate int64  `json:"birthdate"`
}

// Condition is a problem or social-history finding.
type Condition struct {
	ID          string       `json:"id"`
	Description []CodedValue `json:"description,omitempty"`
	Status      []CodedValue `json:"status,omitempty"`
	Onset       *int64       `json:"onset,omitempty"`
	Resolution  *int64       `json:"resolution,omitempty"`
}

// Encounter is a patient/practitioner interaction. Providers holds the
// practitioner actor IDs verbatim from the source element.
type Encounter struct {
	ID          string       `json:"id"`
	Description []CodedValue `json:"description,omitempty"`
	Providers   []string     `json:"providers,omitempty"`
	Occurred    *int64       `json:"occurred,omitempty"`
	Ended       *int64       `json:"ended,omitempty"`
}

// Result is a laboratory result or vital-sign reading with its component
// tests.
type Result struct {
	ID             string       `json:"id"`
	Description    []CodedValue `json:"description,omitempty"`
	Type           []CodedValue `json:"type,omitempty"`
	CollectionTime *int64       `json:"collectionTime,omitempty"`
	Tests          []Test       `json:"tests,omitempty"`
}

// Test is a single measurement within a Result. CollectionTime falls back to
// the parent Result's collection time when the test has none of its own.
type Test struct {
	ID             string       `json:"id"`
	Description    []CodedValue `json:"description,omitempty"`
	CollectionTime *int64       `json:"collectionTime,omitempty"`
	Value          string       `json:"value,omitempty"`
	Units          string       `json:"units,omitempty"`
}

// Medication is a medication or immunization product.
type Medication struct {
	ID          string       `json:"id"`
	Description []CodedValue `json:"description,omitempty"`
	Type        []CodedValue `json:"type,omitempty"`
	Status      []CodedValue `json:"status,omitempty"`
	Started     *int64       `json:"started,omitempty"`
	Stopped     *int64       `json:"stopped,omitempty"`
}

// Allergy is an alert about an adverse reaction. Description aggregates the
// alert's own description plus every agent product and environmental agent.
type Allergy struct {
	ID          string       `json:"id"`
	Type        []CodedValue `json:"type,omitempty"`
	Description []CodedValue `json:"description,omitempty"`
	Onset       *int64       `json:"onset,omitempty"`
}

// Procedure is an intervention performed on the patient.
type Procedure struct {
	ID          string       `json:"id"`
	Type        []CodedValue `json:"type,omitempty"`
	Description []CodedValue `json:"description,omitempty"`
	Providers   []string     `json:"providers,omitempty"`
	Occurred    *int64       `json:"occurred,omitempty"`
	Ended       *int64       `json:"ended,omitempty"`
}

// OrderItem is one requested item under an Order: a product built with the
// medication rules, or a service built with the encounter rules. Exactly one
// field is set.
type OrderItem struct {
	Medication *Medication `json:"medication,omitempty"`
	Encounter  *Encounter  `json:"encounter,omitempty"`
}

// Goal is a care goal attached to an order.
type Goal struct {
	ID          string       `json:"id"`
	Description []CodedValue `json:"description,omitempty"`
	Type        []CodedValue `json:"type,omitempty"`
	GoalDate    *int64       `json:"goalDate,omitempty"`
}

// Order is one order request from a plan of care. Type and Description start
// from the parent plan's values and are appended to by the request's own.
type Order struct {
	ID          string       `json:"id"`
	Type        []CodedValue `json:"type,omitempty"`
	Description []CodedValue `json:"description,omitempty"`
	OrderDate   *int64       `json:"orderDate,omitempty"`
	Items       []OrderItem  `json:"items,omitempty"`
	Goals       []Goal       `json:"goals,omitempty"`
}

// Record is the flat clinical record assembled from one source document.
// Entities are value objects owned exclusively by their Record and never
// mutated after assembly.
type Record struct {
	Patient     *Patient     `json:"patient,omitempty"`
	Actors      []Actor      `json:"actors,omitempty"`
	Conditions  []Condition  `json:"conditions,omitempty"`
	Encounters  []Encounter  `json:"encounters,omitempty"`
	Procedures  []Procedure  `json:"procedures,omitempty"`
	Results     []Result     `json:"results,omitempty"`
	Medications []Medication `json:"medications,omitempty"`
	Allergies   []Allergy    `json:"allergies,omitempty"`
	Orders      []Order      `json:"orders,omitempty"`
}
