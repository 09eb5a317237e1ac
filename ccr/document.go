// Package ccr defines the in-memory model of an ASTM Continuity of Care
// Record as consumed by the extraction engine.
//
// The model is a plain tree of value types: per-category ordered element
// lists, each element carrying zero or more dated events, an optional coded
// description, and category-specific sub-collections. JSON tags are provided
// so callers can unmarshal documents directly; parsing any other wire format
// is the caller's concern.
package ccr

// Code is one controlled code within a coded description: a coding system
// name, an optional system version, and the literal code value.
type Code struct {
	System  string `json:"codingSystem"`
	Version string `json:"version,omitempty"`
	Value   string `json:"value"`
}

// CodedDescription is a source concept expressed as free text, zero or more
// controlled codes, or both.
type CodedDescription struct {
	Text  string `json:"text,omitempty"`
	Codes []Code `json:"code,omitempty"`
}

// DateTime is a source timestamp with an optional semantic type describing
// the role the timestamp plays (onset, resolution, collection, ...).
// ExactDateTime is a full or partial ISO-8601 string; empty means the event
// carries no usable timestamp.
type DateTime struct {
	Type          *CodedDescription `json:"type,omitempty"`
	ExactDateTime string            `json:"exactDateTime,omitempty"`
}

// CodedDataObject carries the fields shared by every body element: a document
// object identifier, the element's dated events in document order, and the
// optional description, status and type concepts.
type CodedDataObject struct {
	ID          string            `json:"ccrDataObjectId"`
	DateTimes   []DateTime        `json:"dateTime,omitempty"`
	Description *CodedDescription `json:"description,omitempty"`
	Status      *CodedDescription `json:"status,omitempty"`
	Type        *CodedDescription `json:"type,omitempty"`
}

// ActorReference points at an entry in the document's actor directory.
type ActorReference struct {
	ActorID string `json:"actorId"`
}

// PersonName is a single structured name. Only the first given and family
// parts are consumed by the extractor.
type PersonName struct {
	Given  []string `json:"given,omitempty"`
	Family []string `json:"family,omitempty"`
}

// Name groups the name variants an actor may carry. CurrentName is preferred
// over BirthName when both are present.
type Name struct {
	CurrentName *PersonName `json:"currentName,omitempty"`
	BirthName   *PersonName `json:"birthName,omitempty"`
}

// Person holds the person-specific attributes of an actor.
type Person struct {
	Name        *Name             `json:"name,omitempty"`
	DateOfBirth *DateTime         `json:"dateOfBirth,omitempty"`
	Gender      *CodedDescription `json:"gender,omitempty"`
}

// Actor is an entry in the document's actor directory.
type Actor struct {
	ActorObjectID string  `json:"actorObjectId"`
	Person        *Person `json:"person,omitempty"`
}

// Problem is an entry in the problems section.
type Problem struct {
	CodedDataObject
}

// SocialHistoryElement is an entry in the social history section. It is
// extracted with the same rules as a Problem.
type SocialHistoryElement struct {
	CodedDataObject
}

// Encounter is an entry in the encounters section, or a service under an
// order request.
type Encounter struct {
	CodedDataObject
	Practitioners []ActorReference `json:"practitioners,omitempty"`
}

// TestResult is the measured value of a test.
type TestResult struct {
	Value string `json:"value,omitempty"`
	Units string `json:"units,omitempty"`
}

// Test is a single measurement nested under a Result.
type Test struct {
	CodedDataObject
	TestResult *TestResult `json:"testResult,omitempty"`
}

// Result is an entry in the results or vital-signs section.
type Result struct {
	CodedDataObject
	Tests []Test `json:"test,omitempty"`
}

// Product is one named product within a structured product element.
type Product struct {
	ProductName *CodedDescription `json:"productName,omitempty"`
	BrandName   *CodedDescription `json:"brandName,omitempty"`
}

// StructuredProduct is a medication, immunization, or ordered product. One
// element may describe several products.
type StructuredProduct struct {
	CodedDataObject
	Products []Product `json:"product,omitempty"`
}

// Agent is a substance or product an alert refers to.
type Agent struct {
	Products            []StructuredProduct `json:"products,omitempty"`
	EnvironmentalAgents []CodedDataObject   `json:"environmentalAgents,omitempty"`
}

// Alert is an entry in the alerts section (allergies and adverse reactions).
type Alert struct {
	CodedDataObject
	Agents []Agent `json:"agent,omitempty"`
}

// Procedure is an entry in the procedures section.
type Procedure struct {
	CodedDataObject
	Practitioners []ActorReference `json:"practitioners,omitempty"`
}

// Goal is a care goal nested under an order request.
type Goal struct {
	CodedDataObject
}

// OrderRequest is one requested activity under a Plan.
type OrderRequest struct {
	CodedDataObject
	Products      []StructuredProduct `json:"products,omitempty"`
	Medications   []StructuredProduct `json:"medications,omitempty"`
	Immunizations []StructuredProduct `json:"immunizations,omitempty"`
	Services      []Encounter         `json:"services,omitempty"`
	Encounters    []Encounter         `json:"encounters,omitempty"`
	Goals         []Goal              `json:"goals,omitempty"`
}

// Plan is an entry in the plan-of-care section.
type Plan struct {
	CodedDataObject
	OrderRequests []OrderRequest `json:"orderRequest,omitempty"`
}

// Body holds the categorized clinical content of the document.
type Body struct {
	Problems      []Problem              `json:"problems,omitempty"`
	SocialHistory []SocialHistoryElement `json:"socialHistory,omitempty"`
	Encounters    []Encounter            `json:"encounters,omitempty"`
	Results       []Result               `json:"results,omitempty"`
	VitalSigns    []Result               `json:"vitalSigns,omitempty"`
	Medications   []StructuredProduct    `json:"medications,omitempty"`
	Immunizations []StructuredProduct    `json:"immunizations,omitempty"`
	Alerts        []Alert                `json:"alerts,omitempty"`
	Procedures    []Procedure            `json:"procedures,omitempty"`
	PlanOfCare    []Plan                 `json:"planOfCare,omitempty"`
}

// ContinuityOfCareRecord is the root of a source document.
type ContinuityOfCareRecord struct {
	ID      string           `json:"ccrDocumentObjectId,omitempty"`
	Patient []ActorReference `json:"patient,omitempty"`
	Body    Body             `json:"body"`
	Actors  []Actor          `json:"actors,omitempty"`
}

// ActorByID returns the actor whose object ID equals id, or nil when the
// directory has no such entry.
func (d *ContinuityOfCareRecord) ActorByID(id string) *Actor {
	for i := range d.Actors {
		if d.Actors[i].ActorObjectID == id {
			return &d.Actors[i]
		}
	}
	return nil
}
