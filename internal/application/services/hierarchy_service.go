package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/catalog"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

// FileCategory tags one output row set with the file it belongs to.
type FileCategory string

const (
	FileParentServiceUnits FileCategory = "parent_service_units"
	FileOutpatientUnits    FileCategory = "outpatient_service_units"
	FileOutpatientParents  FileCategory = "outpatient_parents"
	FileInpatientUnits     FileCategory = "inpatient_service_units"
	FileMaternityParents   FileCategory = "maternity_parents"
	FileMaternityWards     FileCategory = "maternity_service_units"
)

// FileCategories lists every category the builder can produce, in the order
// files are written.
var FileCategories = []FileCategory{
	FileParentServiceUnits,
	FileOutpatientUnits,
	FileOutpatientParents,
	FileInpatientUnits,
	FileMaternityParents,
	FileMaternityWards,
}

var billingColumns = []string{
	"Initial Visit Billing Item",
	"Revisit Billing Item",
	"Under 5 Initial Visit Billing Item",
	"Under 5 Revisit Billing Item",
}

const defaultBillingItem = "General Consultation fee"

// mchServiceTypes are matched against the upper-cased prefix of a service
// point name; first match wins.
var mchServiceTypes = []string{"ANC", "PNC", "CWC", "FP"}

// HierarchyService rebuilds the classified category arrays into the final,
// fully parented ERP row sets.
type HierarchyService struct{}

// NewHierarchyService creates a new hierarchy builder.
func NewHierarchyService() *HierarchyService {
	return &HierarchyService{}
}

// parentRowOptions control parent/group row construction.
type parentRowOptions struct {
	isParent          bool
	inpatient         bool
	allowAppointments bool
}

// BuildAll produces the per-file row sets for one run. The bed counter is
// shared across every category so bed numbering stays monotonic per company
// for the whole run. Empty categories contribute no output. Categories that
// have parents but no matching leaves fall back to their orphan-parent file
// so the parents are not silently dropped.
func (s *HierarchyService) BuildAll(classified *entities.ClassifiedUnits, counter *entities.BedCounter) map[FileCategory][]*entities.Row {
	result := map[FileCategory][]*entities.Row{}

	if rows := s.parentRows(classified.ParentServiceUnits, parentRowOptions{isParent: true}); len(rows) > 0 {
		result[FileParentServiceUnits] = rows
	}

	outpatient := s.leafRows(classified.OutpatientUnits, false, true, counter)
	if len(outpatient) > 0 {
		outpatient = append(outpatient, s.parentRows(classified.InpatientParent, parentRowOptions{isParent: true, inpatient: true})...)
		outpatient = append(outpatient, s.parentRows(classified.MaternityWardParent, parentRowOptions{isParent: true, inpatient: true})...)
		result[FileOutpatientUnits] = outpatient
	} else {
		// No outpatient leaves: their parents still need a home.
		var orphans []*entities.Row
		orphans = append(orphans, s.parentRows(classified.InpatientParent, parentRowOptions{isParent: true, inpatient: true, allowAppointments: true})...)
		orphans = append(orphans, s.parentRows(classified.MaternityWardParent, parentRowOptions{isParent: true, inpatient: true, allowAppointments: true})...)
		if len(orphans) > 0 {
			result[FileOutpatientParents] = orphans
		}
	}

	inpatient := s.leafRows(classified.InpatientUnits, true, false, counter)
	if len(inpatient) > 0 {
		inpatient = append(inpatient, s.parentRows(classified.MaternityParent, parentRowOptions{isParent: true, inpatient: true, allowAppointments: true})...)
		result[FileInpatientUnits] = inpatient
	} else if rows := s.parentRows(classified.MaternityParent, parentRowOptions{isParent: true, inpatient: true, allowAppointments: true}); len(rows) > 0 {
		result[FileMaternityParents] = rows
	}

	if maternity := s.leafRows(classified.MaternityWards, true, false, counter); len(maternity) > 0 {
		result[FileMaternityWards] = maternity
	}

	return result
}

// parentRows builds group rows for one parent category. For isParent inputs
// the emitted name is truncated to the text before the first " - " while the
// parent keeps the full synthesized name.
func (s *HierarchyService) parentRows(units []entities.ParentUnit, opts parentRowOptions) []*entities.Row {
	rows := make([]*entities.Row, 0, len(units))
	for _, unit := range units {
		serviceUnit := unit.ServiceUnit
		if opts.isParent {
			serviceUnit = strings.SplitN(serviceUnit, " - ", 2)[0]
		}

		unitType := unit.Type + " Service Unit"
		if unit.Type == "Maternity Ward" {
			unitType = catalog.TypeInpatient
		}

		rows = append(rows, entities.NewRow().
			Set(entities.ColumnID, "").
			Set(entities.ColumnServiceUnit, serviceUnit).
			Set(entities.ColumnCompany, unit.Company).
			Set(entities.ColumnIsGroup, "1").
			Set(entities.ColumnServiceUnitType, unitType).
			Set(entities.ColumnAllowAppointments, boolCell(opts.allowAppointments)).
			Set(entities.ColumnIsMCH, "0").
			Set(entities.ColumnWarehouse, "").
			Set(entities.ColumnParentServiceUnit, unit.ParentServiceUnit).
			Set(entities.ColumnCapacity, "0").
			Set(entities.ColumnInpatientOccupancy, boolCell(opts.inpatient)).
			Set(entities.ColumnSPID, "").
			Set(entities.ColumnSPPointName, "").
			Set(entities.ColumnSPPointType, "").
			Set(entities.ColumnSPServiceStage, ""))
	}
	return rows
}

// leafRows builds the final rows for one leaf category, sharing the run's
// bed counter. A record that fails validation is logged and skipped; it
// never aborts the category. When filterGroups is set, group rows are
// dropped from the result (continuation and bed rows are kept).
func (s *HierarchyService) leafRows(units []entities.ClassifiedUnit, filterGroups, allowAppointments bool, counter *entities.BedCounter) []*entities.Row {
	if len(units) == 0 {
		return nil
	}

	var result []*entities.Row
	for i := range units {
		unit := &units[i]
		if err := unit.Validate(); err != nil {
			log.Warn().Err(err).Str("service_unit", unit.ServiceUnit).Msg("skipping unit row")
			continue
		}
		result = append(result, s.unitRows(unit, allowAppointments, counter)...)
	}

	if !filterGroups {
		return result
	}
	filtered := result[:0]
	for _, row := range result {
		if row.Get(entities.ColumnIsGroup) == "1" {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// unitRows emits the unit's own row(s) — one per service point when the unit
// has several — followed by its generated bed rows.
func (s *HierarchyService) unitRows(unit *entities.ClassifiedUnit, allowAppointments bool, counter *entities.BedCounter) []*entities.Row {
	base := s.baseRow(unit, allowAppointments)

	var rows []*entities.Row
	if len(unit.ServicePoints) > 0 {
		for i, point := range unit.ServicePoints {
			row := base
			if i > 0 {
				row = base.Blanked()
			}
			s.setServicePoint(row, point, unit.IsMCH)
			rows = append(rows, row)
		}
	} else {
		s.setServicePoint(base, entities.ServicePoint{
			ID:           unit.SPID,
			PointName:    unit.SPPointName,
			PointType:    unit.SPPointType,
			ServiceStage: unit.SPServiceStage,
		}, unit.IsMCH)
		rows = append(rows, base)
	}

	rows = append(rows, s.bedRows(unit, counter)...)
	return rows
}

func (s *HierarchyService) baseRow(unit *entities.ClassifiedUnit, allowAppointments bool) *entities.Row {
	isInpatient := strings.Contains(strings.ToLower(unit.ServiceUnitType), "inpatient")
	billingValue := defaultBillingItem
	if isInpatient {
		billingValue = ""
	}

	capacity := "10000"
	if unit.ServiceUnitType == catalog.TypeInpatient {
		capacity = "0"
	}

	row := entities.NewRow().
		Set(entities.ColumnID, "").
		Set(entities.ColumnServiceUnit, unit.ServiceUnit).
		Set(entities.ColumnCompany, unit.Company).
		Set(entities.ColumnIsGroup, boolCell(unit.IsGroup)).
		Set(entities.ColumnServiceUnitType, unit.ServiceUnitType)
	for _, column := range billingColumns {
		row.Set(column, billingValue)
	}
	return row.
		Set(entities.ColumnAllowAppointments, boolCell(allowAppointments)).
		Set(entities.ColumnIsMCH, boolCell(unit.IsMCH)).
		Set(entities.ColumnWarehouse, unit.Warehouse).
		Set(entities.ColumnParentServiceUnit, unit.ParentServiceUnit).
		Set(entities.ColumnCapacity, capacity).
		Set(entities.ColumnInpatientOccupancy, "0")
}

// bedRows emits one row per declared bed, numbered from the company's shared
// counter; a unit with zero beds emits nothing and leaves the counter as-is.
func (s *HierarchyService) bedRows(unit *entities.ClassifiedUnit, counter *entities.BedCounter) []*entities.Row {
	if unit.Beds <= 0 {
		return nil
	}

	ext := ""
	if strings.Contains(unit.Warehouse, " - ") {
		ext = entities.WarehouseExtension(unit.Warehouse)
	}
	parent := fmt.Sprintf("%s - %s", unit.ServiceUnit, ext)

	rows := make([]*entities.Row, 0, unit.Beds)
	for i := 0; i < unit.Beds; i++ {
		row := entities.NewRow().
			Set(entities.ColumnID, "").
			Set(entities.ColumnServiceUnit, fmt.Sprintf("Beds-%04d", counter.Next(unit.Company))).
			Set(entities.ColumnCompany, unit.Company).
			Set(entities.ColumnIsGroup, "0").
			Set(entities.ColumnServiceUnitType, catalog.TypeInpatient)
		for _, column := range billingColumns {
			row.Set(column, "")
		}
		row.
			Set(entities.ColumnAllowAppointments, "0").
			Set(entities.ColumnIsMCH, "0").
			Set(entities.ColumnWarehouse, unit.Warehouse).
			Set(entities.ColumnParentServiceUnit, parent).
			Set(entities.ColumnCapacity, "0").
			Set(entities.ColumnInpatientOccupancy, "1")
		s.setServicePoint(row, entities.ServicePoint{}, false)
		rows = append(rows, row)
	}
	return rows
}

func (s *HierarchyService) setServicePoint(row *entities.Row, point entities.ServicePoint, isMCH bool) {
	row.
		Set(entities.ColumnSPID, point.ID).
		Set(entities.ColumnSPPointName, point.PointName).
		Set(entities.ColumnSPPointType, point.PointType).
		Set(entities.ColumnSPServiceStage, point.ServiceStage).
		Set(entities.ColumnSPServiceType, servicePointType(point.PointName, isMCH))
}

// servicePointType derives the MCH service tag from a point name. Non-MCH
// units always yield an empty tag.
func servicePointType(pointName string, isMCH bool) string {
	if !isMCH || pointName == "" {
		return ""
	}
	upper := strings.ToUpper(strings.TrimSpace(pointName))
	for _, serviceType := range mchServiceTypes {
		if strings.HasPrefix(upper, serviceType) {
			return serviceType
		}
	}
	return ""
}
