package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ClassifiedUnits is the classifier's seven-way partitioning of the skeleton.
// The four parent categories carry synthesized names plus warehouse extension
// and type; the three leaf categories carry the full unit fields.
type ClassifiedUnits struct {
	ParentServiceUnits  []ParentUnit     `json:"parent_service_units"`
	OutpatientUnits     []ClassifiedUnit `json:"outpatient_units"`
	InpatientUnits      []ClassifiedUnit `json:"inpatient_units"`
	MaternityWards      []ClassifiedUnit `json:"maternity_wards"`
	InpatientParent     []ParentUnit     `json:"inpatient_parent"`
	MaternityParent     []ParentUnit     `json:"maternity_parent"`
	MaternityWardParent []ParentUnit     `json:"maternity_ward_parent"`
}

// Empty reports whether every category array is empty.
func (c *ClassifiedUnits) Empty() bool {
	return len(c.ParentServiceUnits) == 0 &&
		len(c.OutpatientUnits) == 0 &&
		len(c.InpatientUnits) == 0 &&
		len(c.MaternityWards) == 0 &&
		len(c.InpatientParent) == 0 &&
		len(c.MaternityParent) == 0 &&
		len(c.MaternityWardParent) == 0
}

// ParentUnit is a synthesized group node in one of the parent categories.
type ParentUnit struct {
	ServiceUnit        string `json:"service_unit"`
	Company            string `json:"company"`
	WarehouseExtension string `json:"warehouse_extension"`
	ParentServiceUnit  string `json:"parent_service_unit"`
	Type               string `json:"type"`
}

// ServicePoint is one service point of a unit. Ordering matters: the first
// point of a unit carries the unit's full row and later points repeat as
// continuation rows.
type ServicePoint struct {
	ID           string `json:"id"`
	PointName    string `json:"point_name"`
	PointType    string `json:"point_type"`
	ServiceStage string `json:"service_stage"`
}

// UnmarshalJSON tolerates numeric ids from the classifier.
func (p *ServicePoint) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = coerceString(raw["id"])
	p.PointName = coerceString(raw["point_name"])
	p.PointType = coerceString(raw["point_type"])
	p.ServiceStage = coerceString(raw["service_stage"])
	return nil
}

// ClassifiedUnit is one leaf unit as classified from the skeleton.
type ClassifiedUnit struct {
	ID                string
	ServiceUnit       string
	Company           string
	IsGroup           bool
	ServiceUnitType   string
	IsMCH             bool
	Warehouse         string
	ParentServiceUnit string
	Capacity          int
	ServicePoints     []ServicePoint
	SPID              string
	SPPointName       string
	SPPointType       string
	SPServiceStage    string
	Beds              int
}

// fieldKeyMap remaps spreadsheet-style column names the classifier sometimes
// echoes back into their canonical snake_case keys.
var fieldKeyMap = map[string]string{
	ColumnID:                "id",
	ColumnServiceUnit:       "service_unit",
	ColumnCompany:           "company",
	ColumnIsGroup:           "is_group",
	ColumnServiceUnitType:   "service_unit_type",
	ColumnIsMCH:             "is_mch",
	ColumnWarehouse:         "warehouse",
	ColumnParentServiceUnit: "parent_service_unit",
	ColumnCapacity:          "service_unit_capacity",
	ColumnServicePoints:     "service_points",
	ColumnBeds:              "beds",
}

// UnmarshalJSON accepts both the canonical snake_case keys and raw
// spreadsheet column names, coercing booleans and numerics leniently.
func (u *ClassifiedUnit) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	mapped := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		if canonical, ok := fieldKeyMap[key]; ok {
			key = canonical
		}
		mapped[key] = value
	}

	u.ID = coerceString(mapped["id"])
	u.ServiceUnit = coerceString(mapped["service_unit"])
	u.Company = coerceString(mapped["company"])
	u.ServiceUnitType = coerceString(mapped["service_unit_type"])
	u.Warehouse = coerceString(mapped["warehouse"])
	u.ParentServiceUnit = coerceString(mapped["parent_service_unit"])
	u.SPID = coerceString(mapped["id_service_points"])
	u.SPPointName = coerceString(mapped["point_name_service_points"])
	u.SPPointType = coerceString(mapped["point_type_service_points"])
	u.SPServiceStage = coerceString(mapped["service_stage_service_points"])

	if flag, ok := coerceBool(mapped["is_group"]); ok {
		u.IsGroup = flag
	}
	if flag, ok := coerceBool(mapped["is_mch"]); ok {
		u.IsMCH = flag
	}
	if count, ok := coerceInt(mapped["service_unit_capacity"]); ok {
		u.Capacity = count
	}
	if count, ok := coerceInt(mapped["beds"]); ok {
		u.Beds = count
	}

	if points, ok := mapped["service_points"]; ok && string(points) != "null" {
		if err := json.Unmarshal(points, &u.ServicePoints); err != nil {
			return fmt.Errorf("service_points: %w", err)
		}
	}
	return nil
}

// Validate checks the fields every output action depends on.
func (u *ClassifiedUnit) Validate() error {
	if strings.TrimSpace(u.ServiceUnit) == "" {
		return errors.New("missing service unit name")
	}
	if strings.TrimSpace(u.Company) == "" {
		return errors.New("missing company")
	}
	return nil
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%v", f)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "true"
		}
		return "false"
	}
	return ""
}
