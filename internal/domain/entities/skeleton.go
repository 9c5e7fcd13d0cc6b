package entities

// Skeleton column names, in the fixed order of the import template the
// classifier consumes. The four "(Service Points)" sub-columns stay empty in
// the skeleton and are filled during the later enrichment pass.
const (
	ColumnID                 = "ID"
	ColumnServiceUnit        = "Service Unit"
	ColumnCompany            = "Company"
	ColumnIsGroup            = "Is Group"
	ColumnServiceUnitType    = "Service Unit Type"
	ColumnIsMCH              = "Is MCH"
	ColumnWarehouse          = "Warehouse"
	ColumnParentServiceUnit  = "Parent Service Unit"
	ColumnCapacity           = "Service Unit Capacity"
	ColumnServicePoints      = "Service Points"
	ColumnBeds               = "Beds"
	ColumnAllowAppointments  = "Allow Appointments"
	ColumnInpatientOccupancy = "Inpatient Occupancy"

	ColumnSPID           = "ID (Service Points)"
	ColumnSPPointName    = "Point Name (Service Points)"
	ColumnSPPointType    = "Point Type (Service Points)"
	ColumnSPServiceStage = "Service Stage (Service Points)"
	ColumnSPServiceType  = "Service Type (Service Points)"
)

// SkeletonRow is one line of the flat import template produced by the
// expander. All fields are cell text: numeric cells are pre-rendered and
// blank cells stay blank rather than zero.
type SkeletonRow struct {
	ServiceUnit       string
	Company           string
	IsGroup           string
	ServiceUnitType   string
	IsMCH             string
	Warehouse         string
	ParentServiceUnit string
	Capacity          string
	ServicePoints     string
	Beds              string
}

// Row renders the skeleton row with the fixed template column order.
func (s SkeletonRow) Row() *Row {
	return NewRow().
		Set(ColumnServiceUnit, s.ServiceUnit).
		Set(ColumnCompany, s.Company).
		Set(ColumnIsGroup, s.IsGroup).
		Set(ColumnServiceUnitType, s.ServiceUnitType).
		Set(ColumnIsMCH, s.IsMCH).
		Set(ColumnWarehouse, s.Warehouse).
		Set(ColumnParentServiceUnit, s.ParentServiceUnit).
		Set(ColumnCapacity, s.Capacity).
		Set(ColumnServicePoints, s.ServicePoints).
		Set(ColumnBeds, s.Beds).
		Set(ColumnSPID, "").
		Set(ColumnSPPointName, "").
		Set(ColumnSPPointType, "").
		Set(ColumnSPServiceStage, "")
}
