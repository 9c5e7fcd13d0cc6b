package entities

import "encoding/json"

// UserRecord is one validated personnel record coming back from the
// personnel validation pass.
type UserRecord struct {
	RowIndex     int      `json:"row_index"`
	FirstName    string   `json:"first_name"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phone_number"`
	NationalID   string   `json:"national_id"`
	HWRID        string   `json:"hwr_id"`
	Gender       string   `json:"gender"`
	Department   string   `json:"department"`
	ServiceUnits []string `json:"service_units"`
	Warehouses   []string `json:"warehouses"`
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Status       string   `json:"status"`
}

// UnmarshalJSON tolerates numeric phone numbers and ids from the validator.
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	type alias UserRecord
	var decoded struct {
		alias
		PhoneNumber json.RawMessage `json:"phone_number"`
		NationalID  json.RawMessage `json:"national_id"`
		HWRID       json.RawMessage `json:"hwr_id"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*u = UserRecord(decoded.alias)
	u.PhoneNumber = coerceString(decoded.PhoneNumber)
	u.NationalID = coerceString(decoded.NationalID)
	u.HWRID = coerceString(decoded.HWRID)
	return nil
}

// UserValidationIssue is one rejected record with the reasons it failed.
type UserValidationIssue struct {
	RowIndex   int    `json:"row_index"`
	FirstName  string `json:"first_name"`
	Email      string `json:"email"`
	NationalID string `json:"national_id"`
	HWRID      string `json:"hwr_id"`
	Issues     string `json:"issues"`
}

// UserValidation is the validator's full response.
type UserValidation struct {
	ValidUsers []UserRecord          `json:"valid_users"`
	Errors     []UserValidationIssue `json:"errors"`
}
