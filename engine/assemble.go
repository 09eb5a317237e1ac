package engine

import (
	"fmt"

	"go.uber.org/zap"

	cx "github.com/gofhir/ccrextract"
	"github.com/gofhir/ccrextract/ccr"
	"github.com/gofhir/ccrextract/clinical"
	"github.com/gofhir/ccrextract/concept"
	"github.com/gofhir/ccrextract/vocabulary"
)

// termSet returns a required term set. Construction validated the vocabulary,
// so a required role is always present.
func (e *Extractor) termSet(role string) *vocabulary.TermSet {
	ts, _ := e.vocab.TermSet(role)
	return ts
}

// resolveEpoch resolves the named date role over the element's events and
// converts the winner to epoch seconds. It returns nil when no timestamp
// plays the role or the winning timestamp cannot be parsed; either outcome is
// recorded as a low-severity diagnostic, never an error.
func (e *Extractor) resolveEpoch(res *cx.Result, role string, events []ccr.DateTime, category, id string) *int64 {
	raw, ok := e.resolver.Resolve(e.termSet(role), events)
	if !ok {
		e.metrics.RecordDateNotFound()
		if e.options.CollectDiagnostics {
			res.AddInfo(cx.IssueTypeDateNotFound, fmt.Sprintf("no %s date found", role), category, id)
		}
		e.log.Debug("no date found for role",
			zap.String("role", role), zap.String("category", category), zap.String("id", id))
		return nil
	}
	sec := e.ConvertExactDateTimeToEpochSeconds(raw)
	if sec == clinical.UnknownDate {
		// Counts as not-found: DatesResolved and DatesNotFound partition
		// the resolution attempts.
		e.metrics.RecordDateNotFound()
		if e.options.CollectDiagnostics {
			res.AddInfo(cx.IssueTypeDateInvalid, fmt.Sprintf("unparseable %s timestamp %q", role, raw), category, id)
		}
		e.log.Debug("unparseable timestamp",
			zap.String("role", role), zap.String("value", raw), zap.String("id", id))
		return nil
	}
	e.metrics.RecordDateResolved()
	return &sec
}

// assemblePatient extracts the patient's demographics from the actor the
// document's patient reference points at.
func (e *Extractor) assemblePatient(doc *ccr.ContinuityOfCareRecord, res *cx.Result) *clinical.Patient {
	p := &clinical.Patient{Birthdate: clinical.UnknownDate}

	if len(doc.Patient) == 0 {
		if e.options.CollectDiagnostics {
			res.AddWarning(cx.IssueTypeStructure, "document has no patient reference", "patient", "")
		}
		return p
	}
	actor := doc.ActorByID(doc.Patient[0].ActorID)
	if actor == nil {
		if e.options.CollectDiagnostics {
			res.AddWarning(cx.IssueTypeActorNotFound,
				fmt.Sprintf("patient actor %q not found", doc.Patient[0].ActorID), "patient", doc.Patient[0].ActorID)
		}
		e.log.Debug("patient actor not found", zap.String("actorId", doc.Patient[0].ActorID))
		return p
	}
	person := actor.Person
	if person == nil {
		return p
	}

	if person.DateOfBirth != nil && person.DateOfBirth.ExactDateTime != "" {
		p.Birthdate = e.ConvertExactDateTimeToEpochSeconds(person.DateOfBirth.ExactDateTime)
	}

	// Current name preferred, birth name as fallback. Only the first given
	// and family names are used.
	if person.Name != nil {
		name := person.Name.CurrentName
		if name == nil {
			name = person.Name.BirthName
		}
		if name != nil {
			if len(name.Family) > 0 {
				p.Last = name.Family[0]
			}
			if len(name.Given) > 0 {
				p.First = name.Given[0]
			}
		}
	}

	if person.Gender != nil {
		switch {
		case e.matcher.Matches(e.termSet(vocabulary.RoleGenderMale), person.Gender):
			p.Gender = "M"
		case e.matcher.Matches(e.termSet(vocabulary.RoleGenderFemale), person.Gender):
			p.Gender = "F"
		}
	}

	return p
}

// assembleActors lists every actor identifier in the document's directory.
func (e *Extractor) assembleActors(doc *ccr.ContinuityOfCareRecord) []clinical.Actor {
	if len(doc.Actors) == 0 {
		return nil
	}
	actors := make([]clinical.Actor, 0, len(doc.Actors))
	for i := range doc.Actors {
		actors = append(actors, clinical.Actor{ID: doc.Actors[i].ActorObjectID})
	}
	return actors
}

// assembleConditions merges the problems and social history sections into
// one condition list; both sections follow the same rules.
func (e *Extractor) assembleConditions(doc *ccr.ContinuityOfCareRecord, res *cx.Result) []clinical.Condition {
	var conditions []clinical.Condition
	for i := range doc.Body.Problems {
		conditions = append(conditions, e.buildCondition(&doc.Body.Problems[i].CodedDataObject, "problem", res))
	}
	for i := range doc.Body.SocialHistory {
		conditions = append(conditions, e.buildCondition(&doc.Body.SocialHistory[i].CodedDataObject, "social-history", res))
	}
	return conditions
}

func (e *Extractor) buildCondition(src *ccr.CodedDataObject, category string, res *cx.Result) clinical.Condition {
	return clinical.Condition{
		ID:          src.ID,
		Description: concept.Convert(src.Description),
		Status:      concept.Convert(src.Status),
		Onset:       e.resolveEpoch(res, vocabulary.RoleOnset, src.DateTimes, category, src.ID),
		Resolution:  e.resolveEpoch(res, vocabulary.RoleResolved, src.DateTimes, category, src.ID),
	}
}

func (e *Extractor) assembleEncounters(doc *ccr.ContinuityOfCareRecord, res *cx.Result) []clinical.Encounter {
	var encounters []clinical.Encounter
	for i := range doc.Body.Encounters {
		encounters = append(encounters, e.buildEncounter(&doc.Body.Encounters[i], "encounter", res))
	}
	return encounters
}

// buildEncounter is shared by the encounters section and the service and
// encounter items under order requests.
func (e *Extractor) buildEncounter(src *ccr.Encounter, category string, res *cx.Result) clinical.Encounter {
	enc := clinical.Encounter{
		ID:          src.ID,
		Description: concept.Convert(src.Description),
		Occurred:    e.resolveEpoch(res, vocabulary.RoleOccurred, src.DateTimes, category, src.ID),
		Ended:       e.resolveEpoch(res, vocabulary.RoleEnded, src.DateTimes, category, src.ID),
	}
	for _, pr := range src.Practitioners {
		enc.Providers = append(enc.Providers, pr.ActorID)
	}
	return enc
}

func (e *Extractor) assembleProcedures(doc *ccr.ContinuityOfCareRecord, res *cx.Result) []clinical.Procedure {
	var procedures []clinical.Procedure
	for i := range doc.Body.Procedures {
		src := &doc.Body.Procedures[i]
		proc := clinical.Procedure{
			ID:          src.ID,
			Type:        concept.Convert(src.Type),
			Description: concept.Convert(src.Description),
			Occurred:    e.resolveEpoch(res, vocabulary.RoleOccurred, src.DateTimes, "procedure", src.ID),
			Ended:       e.resolveEpoch(res, vocabulary.RoleEnded, src.DateTimes, "procedure", src.ID),
		}
		for _, pr := range src.Practitioners {
			proc.Providers = append(proc.Providers, pr.ActorID)
		}
		procedures = append(procedures, proc)
	}
	return procedures
}

// assembleResults merges the results and vital-signs sections; both hold the
// same element shape.
func (e *Extractor) assembleResults(doc *ccr.ContinuityOfCareRecord, res *cx.Result) []clinical.Result {
	var results []clinical.Result
	for i := range doc.Body.Results {
		results = append(results, e.buildResult(&doc.Body.Results[i], "result", res))
	}
	for i := range doc.Body.VitalSigns {
		results = append(results, e.buildResult(&doc.Body.VitalSigns[i], "vital-sign", res))
	}
	return results
}

func (e *Extractor) buildResult(src *ccr.Result, category string, res *cx.Result) clinical.Result {
	r := clinical.Result{
		ID:          src.ID,
		Description: concept.Convert(src.Description),
		Type:        concept.Convert(src.Type),
	}
	r.CollectionTime = e.resolveEpoch(res, vocabulary.RoleCollected, src.DateTimes, category, src.ID)
	r.Tests = e.buildTests(src, r.CollectionTime, res)
	return r
}

// buildTests extracts a result's component tests. A test with no collection
// time of its own inherits the parent result's.
func (e *Extractor) buildTests(src *ccr.Result, parentCollected *int64, res *cx.Result) []clinical.Test {
	var tests []clinical.Test
	for i := range src.Tests {
		tt := &src.Tests[i]
		t := clinical.Test{
			ID:          tt.ID,
			Description: concept.Convert(tt.Description),
		}
		t.CollectionTime = e.resolveEpoch(res, vocabulary.RoleCollected, tt.DateTimes, "test", tt.ID)
		if t.CollectionTime == nil && parentCollected != nil {
			inherited := *parentCollected
			t.CollectionTime = &inherited
		}
		if tt.TestResult != nil && tt.TestResult.Value != "" {
			t.Value = tt.TestResult.Value
			t.Units = tt.TestResult.Units
		}
		tests = append(tests, t)
	}
	return tests
}

// assembleMedications merges the medications and immunizations sections;
// both hold structured products and follow the same rules.
func (e *Extractor) assembleMedications(doc *ccr.ContinuityOfCareRecord, res *cx.Result) []clinical.Medication {
	var medications []clinical.Medication
	for i := range doc.Body.Medications {
		medications = append(medications, e.buildMedication(&doc.Body.Medications[i], "medication", res))
	}
	for i := range doc.Body.Immunizations {
		medications = append(medications, e.buildMedication(&doc.Body.Immunizations[i], "immunization", res))
	}
	return medications
}

// buildMedication extracts one structured product. The description is the
// product element's own description plus every product name and brand name,
// in document order.
func (e *Extractor) buildMedication(src *ccr.StructuredProduct, category string, res *cx.Result) clinical.Medication {
	m := clinical.Medication{
		ID:     src.ID,
		Type:   concept.Convert(src.Type),
		Status: concept.Convert(src.Status),
	}
	m.Description = append(m.Description, concept.Convert(src.Description)...)
	for i := range src.Products {
		m.Description = append(m.Description, concept.Convert(src.Products[i].ProductName)...)
		m.Description = append(m.Description, concept.Convert(src.Products[i].BrandName)...)
	}
	m.Started = e.resolveEpoch(res, vocabulary.RoleOnset, src.DateTimes, category, src.ID)
	m.Stopped = e.resolveEpoch(res, vocabulary.RoleEnded, src.DateTimes, category, src.ID)
	return m
}

// assembleAllergies extracts the alerts section. An allergy's description
// aggregates the alert description, each agent product's description and
// nested product names and brands, and each environmental agent description.
func (e *Extractor) assembleAllergies(doc *ccr.ContinuityOfCareRecord, res *cx.Result) []clinical.Allergy {
	var allergies []clinical.Allergy
	for i := range doc.Body.Alerts {
		src := &doc.Body.Alerts[i]
		a := clinical.Allergy{
			ID:   src.ID,
			Type: concept.Convert(src.Type),
		}
		a.Description = append(a.Description, concept.Convert(src.Description)...)
		for j := range src.Agents {
			agent := &src.Agents[j]
			for k := range agent.Products {
				product := &agent.Products[k]
				a.Description = append(a.Description, concept.Convert(product.Description)...)
				for l := range product.Products {
					a.Description = append(a.Description, concept.Convert(product.Products[l].ProductName)...)
					a.Description = append(a.Description, concept.Convert(product.Products[l].BrandName)...)
				}
			}
			for k := range agent.EnvironmentalAgents {
				a.Description = append(a.Description, concept.Convert(agent.EnvironmentalAgents[k].Description)...)
			}
		}
		a.Onset = e.resolveEpoch(res, vocabulary.RoleOnset, src.DateTimes, "alert", src.ID)
		allergies = append(allergies, a)
	}
	return allergies
}

// assembleOrders walks the plan-of-care section. Each order request becomes
// one Order carrying the parent plan's object ID; plan-level type,
// description, and ordered date are computed once per plan and pushed down.
func (e *Extractor) assembleOrders(doc *ccr.ContinuityOfCareRecord, res *cx.Result) []clinical.Order {
	var orders []clinical.Order
	for i := range doc.Body.PlanOfCare {
		plan := &doc.Body.PlanOfCare[i]

		// The plan's own ordered date is only a fallback; a miss here is
		// not worth a diagnostic.
		planRaw, planOK := e.resolver.Resolve(e.termSet(vocabulary.RoleOrdered), plan.DateTimes)
		planType := concept.Convert(plan.Type)
		planDescription := concept.Convert(plan.Description)

		for j := range plan.OrderRequests {
			req := &plan.OrderRequests[j]
			o := clinical.Order{ID: plan.ID}

			// The request's own ordered date wins; the plan's date applies
			// only when the request's lookup finds nothing.
			if raw, ok := e.resolver.Resolve(e.termSet(vocabulary.RoleOrdered), req.DateTimes); ok {
				o.OrderDate = e.epochOrDiagnose(res, raw, "order", req.ID)
			} else if planOK {
				o.OrderDate = e.epochOrDiagnose(res, planRaw, "order", req.ID)
			} else {
				e.metrics.RecordDateNotFound()
				if e.options.CollectDiagnostics {
					res.AddInfo(cx.IssueTypeDateNotFound, "no ordered date found", "order", req.ID)
				}
				e.log.Debug("no ordered date found", zap.String("id", req.ID))
			}

			o.Type = append(o.Type, planType...)
			o.Description = append(o.Description, planDescription...)
			o.Description = append(o.Description, concept.Convert(req.Description)...)

			for k := range req.Products {
				med := e.buildMedication(&req.Products[k], "order-product", res)
				o.Items = append(o.Items, clinical.OrderItem{Medication: &med})
			}
			for k := range req.Medications {
				med := e.buildMedication(&req.Medications[k], "order-medication", res)
				o.Items = append(o.Items, clinical.OrderItem{Medication: &med})
			}
			for k := range req.Immunizations {
				med := e.buildMedication(&req.Immunizations[k], "order-immunization", res)
				o.Items = append(o.Items, clinical.OrderItem{Medication: &med})
			}
			for k := range req.Services {
				enc := e.buildEncounter(&req.Services[k], "order-service", res)
				o.Items = append(o.Items, clinical.OrderItem{Encounter: &enc})
			}
			for k := range req.Encounters {
				enc := e.buildEncounter(&req.Encounters[k], "order-encounter", res)
				o.Items = append(o.Items, clinical.OrderItem{Encounter: &enc})
			}

			for k := range req.Goals {
				goal := &req.Goals[k]
				o.Goals = append(o.Goals, clinical.Goal{
					ID:          goal.ID,
					Description: concept.Convert(goal.Description),
					Type:        concept.Convert(goal.Type),
					GoalDate:    e.resolveEpoch(res, vocabulary.RoleOnset, goal.DateTimes, "goal", goal.ID),
				})
			}

			orders = append(orders, o)
		}
	}
	return orders
}

// epochOrDiagnose converts a resolved timestamp, recording a diagnostic and
// returning nil when it cannot be parsed.
func (e *Extractor) epochOrDiagnose(res *cx.Result, raw, category, id string) *int64 {
	sec := e.ConvertExactDateTimeToEpochSeconds(raw)
	if sec == clinical.UnknownDate {
		e.metrics.RecordDateNotFound()
		if e.options.CollectDiagnostics {
			res.AddInfo(cx.IssueTypeDateInvalid, fmt.Sprintf("unparseable timestamp %q", raw), category, id)
		}
		return nil
	}
	e.metrics.RecordDateResolved()
	return &sec
}
