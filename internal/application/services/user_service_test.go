package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/application/services"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

func nurse() entities.UserRecord {
	return entities.UserRecord{
		FirstName:    "Jane Doe",
		Email:        "jane@example.com",
		PhoneNumber:  "0712345678",
		NationalID:   "22657583",
		HWRID:        "HWR-1",
		ServiceUnits: []string{"Opd - AH", "Mch - AH"},
		Warehouses:   []string{"Main Facility - AH", "Backup Store - AH"},
		Company:      "ACME Hospital",
		Role:         "Nurse",
	}
}

func TestUserService_UserRows(t *testing.T) {
	svc := services.NewUserService()

	result := svc.BuildAll([]entities.UserRecord{nurse()})
	rows := result[services.ActionCreateUser]
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "jane@example.com", row.Get("Email"))
	assert.Equal(t, "jane@example.com", row.Get("Username"))
	assert.Equal(t, "Jane Doe", row.Get("First Name"))
	assert.Equal(t, "0712345678", row.Get("Mobile No"))
	assert.Equal(t, "Acme@2025!", row.Get("Set New Password"))
	assert.Equal(t, "Nurse", row.Get("Role Profile"))
}

func TestUserService_DefaultPasswordFallsBack(t *testing.T) {
	svc := services.NewUserService()

	user := nurse()
	user.Company = ""
	result := svc.BuildAll([]entities.UserRecord{user})
	rows := result[services.ActionCreateUser]
	require.Len(t, rows, 1)
	assert.Equal(t, "Default@2025!", rows[0].Get("Set New Password"))
}

func TestUserService_EmployeeRows(t *testing.T) {
	svc := services.NewUserService()

	result := svc.BuildAll([]entities.UserRecord{nurse()})
	rows := result[services.ActionCreateEmployee]
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Jane Doe", row.Get("First Name"))
	assert.Equal(t, "Unknown", row.Get("Gender"))
	assert.Equal(t, "1998-01-01", row.Get("Date of Birth"))
	assert.Equal(t, "2023-01-01", row.Get("Date of Joining"))
	assert.Equal(t, "Active", row.Get("Status"))
	assert.Equal(t, "jane@example.com", row.Get("User ID"))
}

func TestUserService_PractitionerContinuationRows(t *testing.T) {
	svc := services.NewUserService()

	result := svc.BuildAll([]entities.UserRecord{nurse()})
	rows := result[services.ActionCreatePractitioner]
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "22657583", first.Get("ID"))
	assert.Equal(t, "22657583", first.Get("National ID"))
	assert.Equal(t, "HWR-1", first.Get("HWR Id"))
	assert.Equal(t, "Opd - AH", first.Get("Service Unit (User Service Unit)"))

	second := rows[1]
	assert.Equal(t, "", second.Get("ID"))
	assert.Equal(t, "", second.Get("First Name"))
	assert.Equal(t, "Mch - AH", second.Get("Service Unit (User Service Unit)"))
	assert.NotContains(t, second.Columns(), "HWR Id")
}

func TestUserService_PermissionRows(t *testing.T) {
	svc := services.NewUserService()

	result := svc.BuildAll([]entities.UserRecord{nurse()})
	rows := result[services.ActionCreateUserPermission]
	require.Len(t, rows, 3)

	assert.Equal(t, "Company", rows[0].Get("Allow"))
	assert.Equal(t, "ACME Hospital", rows[0].Get("For Value"))
	assert.Equal(t, "1", rows[0].Get("Is Default"))

	assert.Equal(t, "Warehouse", rows[1].Get("Allow"))
	assert.Equal(t, "Main Facility - AH", rows[1].Get("For Value"))
	assert.Equal(t, "1", rows[1].Get("Is Default"))

	assert.Equal(t, "Backup Store - AH", rows[2].Get("For Value"))
	assert.Equal(t, "0", rows[2].Get("Is Default"))
}

func TestUserService_WarehouseRowsFirstWarehouseOnly(t *testing.T) {
	svc := services.NewUserService()

	result := svc.BuildAll([]entities.UserRecord{nurse()})
	rows := result[services.ActionCreateUserWarehouse]
	require.Len(t, rows, 1)
	assert.Equal(t, "Main Facility - AH", rows[0].Get("Warehouse"))
	assert.Equal(t, "ACME Hospital", rows[0].Get("Company"))
}

func TestUserService_SpecializedRolesGateRecordTypes(t *testing.T) {
	svc := services.NewUserService()

	pharmacist := nurse()
	pharmacist.FirstName = "John Doe"
	pharmacist.Email = "john@example.com"
	pharmacist.Role = "Pharmacist"

	result := svc.BuildAll([]entities.UserRecord{nurse(), pharmacist})

	// Both get user accounts and permissions.
	assert.Len(t, result[services.ActionCreateUser], 2)

	// Only the pharmacist gets employee and warehouse records.
	employees := result[services.ActionCreateEmployee]
	require.Len(t, employees, 1)
	assert.Equal(t, "john@example.com", employees[0].Get("User ID"))

	warehouses := result[services.ActionCreateUserWarehouse]
	require.Len(t, warehouses, 1)
	assert.Equal(t, "john@example.com", warehouses[0].Get("User"))

	// Only the nurse gets practitioner records, one per service unit.
	practitioners := result[services.ActionCreatePractitioner]
	require.Len(t, practitioners, 2)
	assert.Equal(t, "jane@example.com", practitioners[0].Get("User"))
}

func TestUserService_SpecializationIsPerCompany(t *testing.T) {
	svc := services.NewUserService()

	pharmacist := nurse()
	pharmacist.Email = "john@example.com"
	pharmacist.Role = "Pharmacist"
	pharmacist.Company = "Other Clinic"
	pharmacist.Warehouses = []string{"Main Store - OC"}

	result := svc.BuildAll([]entities.UserRecord{nurse(), pharmacist})

	// The nurse's company has no specialist, so the nurse keeps every record
	// type alongside the other company's pharmacist.
	assert.Len(t, result[services.ActionCreateEmployee], 2)
	assert.Len(t, result[services.ActionCreateUserWarehouse], 2)
	require.Len(t, result[services.ActionCreatePractitioner], 2)
	assert.Equal(t, "jane@example.com", result[services.ActionCreatePractitioner][0].Get("User"))
}

func TestUserService_EmptyActionsAbsent(t *testing.T) {
	svc := services.NewUserService()

	user := nurse()
	user.ServiceUnits = nil
	user.Warehouses = nil
	user.Company = ""

	result := svc.BuildAll([]entities.UserRecord{user})
	assert.Contains(t, result, services.ActionCreateUser)
	assert.NotContains(t, result, services.ActionCreatePractitioner)
	assert.NotContains(t, result, services.ActionCreateUserPermission)
	assert.NotContains(t, result, services.ActionCreateUserWarehouse)
}
