package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

// UserAction names one of the linked record types generated per user batch.
type UserAction string

const (
	ActionCreateUser           UserAction = "create_user"
	ActionCreateEmployee       UserAction = "create_employee"
	ActionCreatePractitioner   UserAction = "create_healthcare_practitioner"
	ActionCreateUserPermission UserAction = "create_user_permission"
	ActionCreateUserWarehouse  UserAction = "create_user_warehouse"
)

// UserActions lists every record type in generation order.
var UserActions = []UserAction{
	ActionCreateUser,
	ActionCreateEmployee,
	ActionCreatePractitioner,
	ActionCreateUserPermission,
	ActionCreateUserWarehouse,
}

// specializedRoles gate which record types a user receives: when a company
// employs any of these roles, only they get employee and warehouse records
// while everyone else gets practitioner records instead.
var specializedRoles = map[string]bool{
	"Lab Technician": true,
	"Pharmacist":     true,
}

// UserService turns validated personnel records into the linked
// account/permission/practitioner row sets.
type UserService struct{}

// NewUserService creates a new user record generator.
func NewUserService() *UserService {
	return &UserService{}
}

// BuildAll generates the row set for every record type. Record types with no
// rows are absent from the result. A user that fails one record type is
// logged and skipped for that type only.
func (s *UserService) BuildAll(users []entities.UserRecord) map[UserAction][]*entities.Row {
	specialized := s.companySpecialization(users)

	result := map[UserAction][]*entities.Row{}
	for _, action := range UserActions {
		var rows []*entities.Row
		for i := range users {
			user := &users[i]
			built, err := s.buildAction(action, user, specialized[user.Company])
			if err != nil {
				log.Warn().Err(err).Str("action", string(action)).Str("email", user.Email).Msg("skipping user record")
				continue
			}
			rows = append(rows, built...)
		}
		if len(rows) > 0 {
			result[action] = rows
		}
	}
	return result
}

// companySpecialization reports, per company, whether any of its users holds
// a specialized role.
func (s *UserService) companySpecialization(users []entities.UserRecord) map[string]bool {
	specialized := map[string]bool{}
	for i := range users {
		company := users[i].Company
		if company == "" {
			continue
		}
		if specializedRoles[users[i].Role] {
			specialized[company] = true
		} else if _, ok := specialized[company]; !ok {
			specialized[company] = false
		}
	}
	return specialized
}

func (s *UserService) buildAction(action UserAction, user *entities.UserRecord, hasSpecialized bool) ([]*entities.Row, error) {
	switch action {
	case ActionCreateUser:
		return s.userRows(user), nil
	case ActionCreateEmployee:
		if hasSpecialized && !specializedRoles[user.Role] {
			return nil, nil
		}
		return s.employeeRows(user), nil
	case ActionCreatePractitioner:
		if hasSpecialized && specializedRoles[user.Role] {
			return nil, nil
		}
		return s.practitionerRows(user), nil
	case ActionCreateUserPermission:
		return s.permissionRows(user), nil
	case ActionCreateUserWarehouse:
		if hasSpecialized && !specializedRoles[user.Role] {
			return nil, nil
		}
		return s.warehouseRows(user), nil
	}
	return nil, fmt.Errorf("unknown user action %q", action)
}

// defaultPassword derives the initial password from the first word of the
// company name.
func defaultPassword(company string) string {
	word := "Default"
	if company != "" {
		word = strings.SplitN(company, " ", 2)[0]
	}
	if word == "" {
		word = "Default"
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:]) + "@2025!"
}

func (s *UserService) userRows(user *entities.UserRecord) []*entities.Row {
	return []*entities.Row{entities.NewRow().
		Set("ID", "").
		Set("Email", user.Email).
		Set("First Name", user.FirstName).
		Set("Mobile No", user.PhoneNumber).
		Set("Set New Password", defaultPassword(user.Company)).
		Set("Username", user.Email).
		Set("Role Profile", user.Role)}
}

func (s *UserService) employeeRows(user *entities.UserRecord) []*entities.Row {
	gender := user.Gender
	if gender == "" {
		gender = "Unknown"
	}
	return []*entities.Row{entities.NewRow().
		Set("ID", "").
		Set("Series", "").
		Set("First Name", user.FirstName).
		Set("Gender", gender).
		Set("Date of Birth", "1998-01-01").
		Set("Date of Joining", "2023-01-01").
		Set("Status", "Active").
		Set("Company", user.Company).
		Set("User ID", user.Email)}
}

// practitionerRows emits one row per assigned service unit; only the first
// row carries the practitioner's details, the rest are continuation rows.
func (s *UserService) practitionerRows(user *entities.UserRecord) []*entities.Row {
	status := user.Status
	if status == "" {
		status = "Active"
	}

	var rows []*entities.Row
	for _, unit := range user.ServiceUnits {
		if len(rows) == 0 {
			rows = append(rows, entities.NewRow().
				Set("ID", user.NationalID).
				Set("First Name", user.FirstName).
				Set("Status", status).
				Set("National ID", user.NationalID).
				Set("HWR Id", user.HWRID).
				Set("User", user.Email).
				Set("Service Unit (User Service Unit)", unit).
				Set("Medical Department", user.Department))
			continue
		}
		rows = append(rows, entities.NewRow().
			Set("ID", "").
			Set("First Name", "").
			Set("Status", "").
			Set("National ID", "").
			Set("User", "").
			Set("Service Unit (User Service Unit)", unit).
			Set("Medical Department", ""))
	}
	return rows
}

// permissionRows emits one row per granted permission: the company permission
// first, then one per warehouse. The main pharmacy warehouse is the default.
func (s *UserService) permissionRows(user *entities.UserRecord) []*entities.Row {
	var rows []*entities.Row
	if user.Company != "" {
		rows = append(rows, entities.NewRow().
			Set("ID", "").
			Set("User", user.Email).
			Set("Allow", "Company").
			Set("For Value", user.Company).
			Set("Is Default", "1"))
	}
	for _, warehouse := range user.Warehouses {
		isDefault := "0"
		if strings.HasPrefix(warehouse, "Main") {
			isDefault = "1"
		}
		rows = append(rows, entities.NewRow().
			Set("ID", "").
			Set("User", user.Email).
			Set("Allow", "Warehouse").
			Set("For Value", warehouse).
			Set("Is Default", isDefault))
	}
	return rows
}

// warehouseRows grants access to the user's first warehouse only.
func (s *UserService) warehouseRows(user *entities.UserRecord) []*entities.Row {
	if len(user.Warehouses) == 0 || user.Warehouses[0] == "" {
		return nil
	}
	return []*entities.Row{entities.NewRow().
		Set("ID", "").
		Set("User", user.Email).
		Set("Warehouse", user.Warehouses[0]).
		Set("Company", user.Company)}
}
