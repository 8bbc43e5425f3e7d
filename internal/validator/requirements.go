// Package validator implements rule-based constraint validation,
// two-stage anomaly detection, a red-flag textual scanner, and coverage
// rollups over the facility table.
package validator

// Requirement is the static per-procedure-class constraint entry: the
// equipment and capability lexemes a facility offering this procedure class
// is expected to carry, and the minimum bed count.
type Requirement struct {
	ProcedureClass      string
	RequiredEquipment   []string
	RequiredCapability  []string
	MinBeds             int
}

// specialtyProcedureClasses maps a specialty to the procedure classes it
// is expected to support, which in turn drive the Requirements lookup.
var specialtyProcedureClasses = map[string][]string{
	"cardiology":    {"cardiac_surgery", "cardiac_catheterization"},
	"oncology":      {"chemotherapy", "radiotherapy"},
	"maternity":     {"cesarean_section"},
	"orthopedics":   {"joint_replacement"},
	"neurology":     {"neurosurgery"},
	"neurosurgery":  {"neurosurgery"},
	"nephrology":    {"dialysis"},
	"emergency":     {"trauma_surgery"},
}

// requirementsTable is the static procedure-class -> requirement mapping.
var requirementsTable = map[string]Requirement{
	"cardiac_surgery": {
		ProcedureClass:     "cardiac_surgery",
		RequiredEquipment:  []string{"ecg", "defibrillator", "heart-lung machine"},
		RequiredCapability: []string{"icu", "cardiac surgery"},
		MinBeds:            50,
	},
	"cardiac_catheterization": {
		ProcedureClass:     "cardiac_catheterization",
		RequiredEquipment:  []string{"cath lab", "fluoroscopy"},
		RequiredCapability: []string{"cardiology"},
		MinBeds:            20,
	},
	"chemotherapy": {
		ProcedureClass:     "chemotherapy",
		RequiredEquipment:  []string{"infusion pump", "biosafety cabinet"},
		RequiredCapability: []string{"oncology ward"},
		MinBeds:            20,
	},
	"radiotherapy": {
		ProcedureClass:     "radiotherapy",
		RequiredEquipment:  []string{"linear accelerator"},
		RequiredCapability: []string{"radiation oncology"},
		MinBeds:            30,
	},
	"cesarean_section": {
		ProcedureClass:     "cesarean_section",
		RequiredEquipment:  []string{"operating theatre", "fetal monitor"},
		RequiredCapability: []string{"obstetric surgery", "blood bank"},
		MinBeds:            15,
	},
	"joint_replacement": {
		ProcedureClass:     "joint_replacement",
		RequiredEquipment:  []string{"orthopedic implants", "c-arm"},
		RequiredCapability: []string{"orthopedic surgery"},
		MinBeds:            25,
	},
	"neurosurgery": {
		ProcedureClass:     "neurosurgery",
		RequiredEquipment:  []string{"operating microscope", "ct scanner"},
		RequiredCapability: []string{"icu", "neurosurgery"},
		MinBeds:            40,
	},
	"dialysis": {
		ProcedureClass:     "dialysis",
		RequiredEquipment:  []string{"dialysis machine", "water treatment system"},
		RequiredCapability: []string{"nephrology"},
		MinBeds:            10,
	},
	"trauma_surgery": {
		ProcedureClass:     "trauma_surgery",
		RequiredEquipment:  []string{"trauma bay", "blood bank"},
		RequiredCapability: []string{"emergency surgery", "icu"},
		MinBeds:            30,
	},
}

// ProcedureClassesFor returns the procedure classes associated with a
// specialty, or nil if the specialty carries no constraint entries.
func ProcedureClassesFor(specialty string) []string {
	return specialtyProcedureClasses[specialty]
}

// RequirementFor looks up the static requirement entry for a procedure
// class.
func RequirementFor(procedureClass string) (Requirement, bool) {
	r, ok := requirementsTable[procedureClass]
	return r, ok
}
