package models

// Department is one of the fixed organizational units. Freeform
// department names are not allowed anywhere in the system.
type Department string

const (
	DeptIT             Department = "IT"
	DeptAccounts       Department = "Accounts"
	DeptMaterial       Department = "Material"
	DeptHR             Department = "HR"
	DeptProduction     Department = "Production"
	DeptRefineryEngg   Department = "Refinery Engg"
	DeptCGPPEngg       Department = "CGPP engg"
	DeptCivil          Department = "Civil"
	DeptMechanicalEngg Department = "Mechanical Engg"
	DeptElectricalEngg Department = "Electrical Engg"
	DeptInstrument     Department = "Instrument"
	DeptTechnical      Department = "Technical"
	DeptWCM            Department = "WCM"
	DeptSafety         Department = "Safety"
)

// Departments lists every department in declared order. Stats are
// always reported in this order.
var Departments = []Department{
	DeptIT,
	DeptAccounts,
	DeptMaterial,
	DeptHR,
	DeptProduction,
	DeptRefineryEngg,
	DeptCGPPEngg,
	DeptCivil,
	DeptMechanicalEngg,
	DeptElectricalEngg,
	DeptInstrument,
	DeptTechnical,
	DeptWCM,
	DeptSafety,
}

func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}
