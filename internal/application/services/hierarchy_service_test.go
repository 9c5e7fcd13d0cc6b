package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/application/services"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

func TestHierarchyService_ParentRows(t *testing.T) {
	svc := services.NewHierarchyService()

	classified := &entities.ClassifiedUnits{
		ParentServiceUnits: []entities.ParentUnit{
			{
				ServiceUnit:       "Outpatient Service Unit - AH",
				Company:           "ACME Hospital",
				ParentServiceUnit: "All Healthcare Service Units - AH",
				Type:              "Outpatient",
			},
			{
				ServiceUnit:       "Maternity - AH",
				Company:           "ACME Hospital",
				ParentServiceUnit: "Inpatient Service Unit - AH",
				Type:              "Maternity Ward",
			},
		},
	}

	result := svc.BuildAll(classified, entities.NewBedCounter(1))
	rows := result[services.FileParentServiceUnits]
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Outpatient Service Unit", first.Get(entities.ColumnServiceUnit))
	assert.Equal(t, "Outpatient Service Unit", first.Get(entities.ColumnServiceUnitType))
	assert.Equal(t, "1", first.Get(entities.ColumnIsGroup))
	assert.Equal(t, "0", first.Get(entities.ColumnAllowAppointments))
	assert.Equal(t, "0", first.Get(entities.ColumnInpatientOccupancy))
	assert.Equal(t, "All Healthcare Service Units - AH", first.Get(entities.ColumnParentServiceUnit))
	assert.Equal(t, "0", first.Get(entities.ColumnCapacity))

	second := rows[1]
	assert.Equal(t, "Maternity", second.Get(entities.ColumnServiceUnit))
	assert.Equal(t, "Inpatient Service Unit", second.Get(entities.ColumnServiceUnitType))
}

func TestHierarchyService_OutpatientLeafRows(t *testing.T) {
	svc := services.NewHierarchyService()

	classified := &entities.ClassifiedUnits{
		OutpatientUnits: []entities.ClassifiedUnit{{
			ServiceUnit:       "Mch",
			Company:           "ACME Hospital",
			ServiceUnitType:   "Outpatient Service Unit",
			IsMCH:             true,
			Warehouse:         "ACME Hospital - AH",
			ParentServiceUnit: "Outpatient Service Unit - AH",
			ServicePoints: []entities.ServicePoint{
				{PointName: "Triage", ServiceStage: "1"},
				{PointName: "ANC", ServiceStage: "2"},
				{PointName: "PNC", ServiceStage: "2"},
			},
		}},
	}

	result := svc.BuildAll(classified, entities.NewBedCounter(1))
	rows := result[services.FileOutpatientUnits]
	require.Len(t, rows, 3)

	base := rows[0]
	assert.Equal(t, "Mch", base.Get(entities.ColumnServiceUnit))
	assert.Equal(t, "General Consultation fee", base.Get("Initial Visit Billing Item"))
	assert.Equal(t, "General Consultation fee", base.Get("Under 5 Revisit Billing Item"))
	assert.Equal(t, "10000", base.Get(entities.ColumnCapacity))
	assert.Equal(t, "1", base.Get(entities.ColumnAllowAppointments))
	assert.Equal(t, "1", base.Get(entities.ColumnIsMCH))
	assert.Equal(t, "Triage", base.Get(entities.ColumnSPPointName))
	assert.Equal(t, "", base.Get(entities.ColumnSPServiceType))

	// Continuation rows blank the unit columns but carry the next point.
	second := rows[1]
	assert.Equal(t, "", second.Get(entities.ColumnServiceUnit))
	assert.Equal(t, "", second.Get(entities.ColumnCompany))
	assert.Equal(t, "ANC", second.Get(entities.ColumnSPPointName))
	assert.Equal(t, "ANC", second.Get(entities.ColumnSPServiceType))

	assert.Equal(t, "PNC", rows[2].Get(entities.ColumnSPServiceType))
}

func TestHierarchyService_InpatientBedRows(t *testing.T) {
	svc := services.NewHierarchyService()

	classified := &entities.ClassifiedUnits{
		InpatientUnits: []entities.ClassifiedUnit{{
			ServiceUnit:       "Female Ward",
			Company:           "ACME Hospital",
			IsGroup:           true,
			ServiceUnitType:   "Inpatient Service Unit",
			Warehouse:         "ACME Hospital - AH",
			ParentServiceUnit: "Inpatient Service Unit - AH",
			Beds:              2,
		}},
	}

	result := svc.BuildAll(classified, entities.NewBedCounter(31))
	rows := result[services.FileInpatientUnits]

	// The ward itself is a group row and is filtered out; its beds remain.
	require.Len(t, rows, 2)
	assert.Equal(t, "Beds-0031", rows[0].Get(entities.ColumnServiceUnit))
	assert.Equal(t, "Beds-0032", rows[1].Get(entities.ColumnServiceUnit))

	bed := rows[0]
	assert.Equal(t, "Female Ward - AH", bed.Get(entities.ColumnParentServiceUnit))
	assert.Equal(t, "Inpatient Service Unit", bed.Get(entities.ColumnServiceUnitType))
	assert.Equal(t, "1", bed.Get(entities.ColumnInpatientOccupancy))
	assert.Equal(t, "0", bed.Get(entities.ColumnCapacity))
	assert.Equal(t, "", bed.Get("Initial Visit Billing Item"))
}

func TestHierarchyService_InpatientBillingAndCapacity(t *testing.T) {
	svc := services.NewHierarchyService()

	classified := &entities.ClassifiedUnits{
		MaternityWards: []entities.ClassifiedUnit{{
			ServiceUnit:       "Labour Ward",
			Company:           "ACME Hospital",
			ServiceUnitType:   "Inpatient Service Unit",
			Warehouse:         "ACME Hospital - AH",
			ParentServiceUnit: "Maternity - AH",
		}},
	}

	result := svc.BuildAll(classified, entities.NewBedCounter(1))
	rows := result[services.FileMaternityWards]
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("Initial Visit Billing Item"))
	assert.Equal(t, "0", rows[0].Get(entities.ColumnCapacity))
	assert.Equal(t, "0", rows[0].Get(entities.ColumnAllowAppointments))
}

func TestHierarchyService_OrphanParentsWithoutOutpatientLeaves(t *testing.T) {
	svc := services.NewHierarchyService()

	classified := &entities.ClassifiedUnits{
		InpatientParent: []entities.ParentUnit{{
			ServiceUnit:       "Inpatient Service Unit - AH",
			Company:           "ACME Hospital",
			ParentServiceUnit: "All Healthcare Service Units - AH",
			Type:              "Inpatient",
		}},
	}

	result := svc.BuildAll(classified, entities.NewBedCounter(1))

	require.NotContains(t, result, services.FileOutpatientUnits)
	rows := result[services.FileOutpatientParents]
	require.Len(t, rows, 1)
	assert.Equal(t, "Inpatient Service Unit", rows[0].Get(entities.ColumnServiceUnit))
	assert.Equal(t, "1", rows[0].Get(entities.ColumnAllowAppointments))
	assert.Equal(t, "1", rows[0].Get(entities.ColumnInpatientOccupancy))
}

func TestHierarchyService_MaternityParentPlacement(t *testing.T) {
	svc := services.NewHierarchyService()

	maternityParent := []entities.ParentUnit{{
		ServiceUnit:       "Maternity - AH",
		Company:           "ACME Hospital",
		ParentServiceUnit: "Inpatient Service Unit - AH",
		Type:              "Inpatient",
	}}

	// With inpatient leaves the maternity parents ride along in their file.
	withLeaves := &entities.ClassifiedUnits{
		InpatientUnits: []entities.ClassifiedUnit{{
			ServiceUnit:       "Male Ward",
			Company:           "ACME Hospital",
			IsGroup:           true,
			ServiceUnitType:   "Inpatient Service Unit",
			Warehouse:         "ACME Hospital - AH",
			ParentServiceUnit: "Inpatient Service Unit - AH",
			Beds:              1,
		}},
		MaternityParent: maternityParent,
	}
	result := svc.BuildAll(withLeaves, entities.NewBedCounter(1))
	require.NotContains(t, result, services.FileMaternityParents)
	require.Len(t, result[services.FileInpatientUnits], 2)

	// Without leaves they get their own file.
	orphaned := &entities.ClassifiedUnits{MaternityParent: maternityParent}
	result = svc.BuildAll(orphaned, entities.NewBedCounter(1))
	require.Len(t, result[services.FileMaternityParents], 1)
	assert.Equal(t, "Maternity", result[services.FileMaternityParents][0].Get(entities.ColumnServiceUnit))
}

func TestHierarchyService_BedNumberingSpansCategories(t *testing.T) {
	svc := services.NewHierarchyService()

	classified := &entities.ClassifiedUnits{
		InpatientUnits: []entities.ClassifiedUnit{{
			ServiceUnit:       "Male Ward",
			Company:           "ACME Hospital",
			IsGroup:           true,
			ServiceUnitType:   "Inpatient Service Unit",
			Warehouse:         "ACME Hospital - AH",
			ParentServiceUnit: "Inpatient Service Unit - AH",
			Beds:              2,
		}},
		MaternityWards: []entities.ClassifiedUnit{{
			ServiceUnit:       "Labour Ward",
			Company:           "ACME Hospital",
			ServiceUnitType:   "Inpatient Service Unit",
			Warehouse:         "ACME Hospital - AH",
			ParentServiceUnit: "Maternity - AH",
			Beds:              1,
		}},
	}

	result := svc.BuildAll(classified, entities.NewBedCounter(1))

	inpatient := result[services.FileInpatientUnits]
	require.Len(t, inpatient, 2)
	assert.Equal(t, "Beds-0001", inpatient[0].Get(entities.ColumnServiceUnit))
	assert.Equal(t, "Beds-0002", inpatient[1].Get(entities.ColumnServiceUnit))

	maternity := result[services.FileMaternityWards]
	require.Len(t, maternity, 2)
	assert.Equal(t, "Beds-0003", maternity[1].Get(entities.ColumnServiceUnit))
}

func TestHierarchyService_SkipsInvalidUnits(t *testing.T) {
	svc := services.NewHierarchyService()

	classified := &entities.ClassifiedUnits{
		OutpatientUnits: []entities.ClassifiedUnit{
			{ServiceUnit: "", Company: "ACME Hospital"},
			{
				ServiceUnit:       "Opd",
				Company:           "ACME Hospital",
				ServiceUnitType:   "Outpatient Service Unit",
				Warehouse:         "ACME Hospital - AH",
				ParentServiceUnit: "Outpatient Service Unit - AH",
			},
		},
	}

	result := svc.BuildAll(classified, entities.NewBedCounter(1))
	rows := result[services.FileOutpatientUnits]
	require.Len(t, rows, 1)
	assert.Equal(t, "Opd", rows[0].Get(entities.ColumnServiceUnit))
}
