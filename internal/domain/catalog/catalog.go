// Package catalog holds the static registry of known service unit templates.
// The registry is pure data, built once at package init, and is never
// mutated afterwards.
package catalog

// Family distinguishes the two template families.
type Family string

const (
	FamilyOutpatient Family = "outpatient"
	FamilyInpatient  Family = "inpatient"
)

// Unit type labels used on generated rows.
const (
	TypeOutpatient = "Outpatient Service Unit"
	TypeInpatient  = "Inpatient Service Unit"
)

// UnitTemplate carries the canonical attributes of a unit type key.
type UnitTemplate struct {
	IsGroup       bool
	UnitType      string
	Capacity      int
	ServicePoints string
	IsMCH         bool
}

func outpatient(servicePoints string) UnitTemplate {
	return UnitTemplate{UnitType: TypeOutpatient, ServicePoints: servicePoints}
}

func outpatientMCH(servicePoints string) UnitTemplate {
	t := outpatient(servicePoints)
	t.IsMCH = true
	return t
}

func inpatient() UnitTemplate {
	return UnitTemplate{IsGroup: true, UnitType: TypeInpatient}
}

// Key order matters: the expander walks these slices so that generated rows
// come out in a stable order regardless of how the input maps iterate.
var outpatientKeys = []string{
	"opd",
	"dental",
	"medical_outpatient",
	"surgical_outpatient",
	"paediatric_outpatient",
	"eye_clinic",
	"ent_clinic",
	"physiotherapy",
	"social_work",
	"psychiatric_clinic",
	"occupational_therapy",
	"orthopaedic_clinic",
	"tb",
	"ccc",
	"nutrition",
	"mch",
	"injection",
	"maternity",
	"hts",
	"observation_room",
	"procedure_room",
	"cervical_screening_room",
	"youth_adolescent_room",
}

var outpatientTemplates = map[string]UnitTemplate{
	"opd":                     outpatient("Triage - 1, Consultation Room - 2"),
	"dental":                  outpatient("Triage - 1, Dental Room - 2"),
	"medical_outpatient":      outpatient("Triage - 1, Medical Outpatient Room - 2"),
	"surgical_outpatient":     outpatient("Triage - 1, Surgical Outpatient Room - 2"),
	"paediatric_outpatient":   outpatient("Triage - 1, Paediatric Outpatient Room - 2"),
	"eye_clinic":              outpatient("Triage - 1, Eye Clinic Room - 2"),
	"ent_clinic":              outpatient("Triage - 1, ENT Clinic Room - 2"),
	"physiotherapy":           outpatient("Triage - 1, Physiotherapy Room - 2"),
	"social_work":             outpatient("Triage - 1, Social Work Room - 2"),
	"psychiatric_clinic":      outpatient("Triage - 1, Psychiatric Clinic Room - 2"),
	"occupational_therapy":    outpatient("Triage - 1, Occupation Therapy Room - 2"),
	"orthopaedic_clinic":      outpatient("Triage - 1, Orthopaedic Clinic Room - 2"),
	"tb":                      outpatient("Triage - 1, T.B Room - 2"),
	"ccc":                     outpatient("Triage - 1, CCC Room - 2"),
	"nutrition":               outpatient("Triage - 1, Nutrition Room - 2"),
	"mch":                     outpatientMCH("Triage - 1, ANC - 2, PNC- 2, CWC - 2, FP - 2"),
	"injection":               outpatient("Triage - 1, Injection Room - 2"),
	"maternity":               outpatient("Triage - 1, Nursing Station - 2"),
	"hts":                     outpatient("Triage - 1, HTS Room- 2"),
	"observation_room":        outpatient("Triage - 1, Observation Room- 2"),
	"procedure_room":          outpatient("Triage - 1, Procedure Room- 2"),
	"cervical_screening_room": outpatient("Triage - 1, Cervical Screening Room- 2"),
	"youth_adolescent_room":   outpatient("Triage - 1, Youth Adolescent Room - 2"),
}

var inpatientKeys = []string{
	"gynae_ward",
	"paediatric_ward",
	"female_ward",
	"male_ward",
	"general_ward",
}

var inpatientTemplates = map[string]UnitTemplate{
	"gynae_ward":      inpatient(),
	"paediatric_ward": inpatient(),
	"female_ward":     inpatient(),
	"male_ward":       inpatient(),
	"general_ward":    inpatient(),
}

// MaternityKey is the nested inpatient sub-tree key. It is handled apart from
// the flat inpatient wards because its children parent to the synthesized
// maternity node.
const MaternityKey = "maternity"

var maternityTemplate = inpatient()

var maternityChildKeys = []string{
	"nbu_ward",
	"labour_ward",
	"post_natal_ward",
	"antenatal_ward",
}

var maternityChildTemplates = map[string]UnitTemplate{
	"nbu_ward":        inpatient(),
	"labour_ward":     inpatient(),
	"post_natal_ward": inpatient(),
	"antenatal_ward":  inpatient(),
}

// Lookup returns the template for a unit key within a family. The second
// return is false for unknown keys; callers skip those silently.
func Lookup(key string, family Family) (UnitTemplate, bool) {
	switch family {
	case FamilyOutpatient:
		t, ok := outpatientTemplates[key]
		return t, ok
	case FamilyInpatient:
		if key == MaternityKey {
			return maternityTemplate, true
		}
		t, ok := inpatientTemplates[key]
		return t, ok
	}
	return UnitTemplate{}, false
}

// LookupMaternityChild returns the template for a maternity child ward key.
func LookupMaternityChild(key string) (UnitTemplate, bool) {
	t, ok := maternityChildTemplates[key]
	return t, ok
}

// OutpatientKeys returns the outpatient unit keys in canonical order.
func OutpatientKeys() []string {
	return append([]string(nil), outpatientKeys...)
}

// InpatientKeys returns the flat inpatient ward keys in canonical order.
func InpatientKeys() []string {
	return append([]string(nil), inpatientKeys...)
}

// MaternityChildKeys returns the maternity child ward keys in canonical order.
func MaternityChildKeys() []string {
	return append([]string(nil), maternityChildKeys...)
}
