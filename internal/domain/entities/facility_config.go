package entities

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FacilityConfig describes one hospital facility belonging to a company: the
// outpatient units it enables, the inpatient wards and their bed counts, and
// optional overrides for the synthesized parent unit names.
type FacilityConfig struct {
	Company          string              `json:"company"`
	Warehouse        string              `json:"warehouse"`
	OutpatientParent string              `json:"outpatient_parent,omitempty"`
	InpatientParent  string              `json:"inpatient_parent,omitempty"`
	BedStart         int                 `json:"bedstart,omitempty"`
	Outpatient       OutpatientSelection `json:"outpatient"`
	Inpatient        InpatientSelection  `json:"inpatient"`
}

// WarehouseExtension returns the short facility code after " - " in the
// warehouse name, or the whole name when no separator is present.
func (c *FacilityConfig) WarehouseExtension() string {
	return WarehouseExtension(c.Warehouse)
}

// WarehouseExtension extracts the facility code suffix from a warehouse name.
func WarehouseExtension(warehouse string) string {
	if idx := strings.Index(warehouse, " - "); idx >= 0 {
		return warehouse[idx+len(" - "):]
	}
	return warehouse
}

// OutpatientSelection holds the enabled outpatient unit keys and optional
// per-unit room counts. Unknown keys are preserved here and ignored by the
// expander when the catalog has no template for them.
type OutpatientSelection struct {
	Enabled    map[string]bool
	RoomCounts map[string]int
}

// UnmarshalJSON accepts the flat payload shape where every key except
// room_counts is a unit flag. Flags tolerate booleans and numbers.
func (s *OutpatientSelection) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Enabled = map[string]bool{}
	s.RoomCounts = map[string]int{}

	for key, value := range raw {
		if key == "room_counts" {
			var counts map[string]int
			if err := json.Unmarshal(value, &counts); err == nil {
				s.RoomCounts = counts
			}
			continue
		}
		if enabled, ok := coerceBool(value); ok {
			s.Enabled[key] = enabled
		}
	}
	return nil
}

// RoomCount returns the configured room count for a unit, defaulting to 1.
func (s *OutpatientSelection) RoomCount(key string) int {
	if count, ok := s.RoomCounts[key]; ok && count > 0 {
		return count
	}
	return 1
}

// InpatientSelection maps inpatient ward keys to requested bed counts, plus
// the optional maternity sub-structure. Keys configured with a null count are
// dropped during decoding, matching the lenient upstream contract.
type InpatientSelection struct {
	BedCounts map[string]int
	Maternity *MaternitySelection
}

// MaternitySelection nests the maternity child wards under the maternity
// parent node.
type MaternitySelection struct {
	Children map[string]int `json:"children"`
}

// UnmarshalJSON accepts the flat payload shape where every key except
// maternity is a bed count (or null to skip the ward).
func (s *InpatientSelection) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.BedCounts = map[string]int{}
	s.Maternity = nil

	for key, value := range raw {
		if key == "maternity" {
			if string(value) == "null" {
				continue
			}
			var maternity maternityPayload
			if err := json.Unmarshal(value, &maternity); err != nil {
				return err
			}
			children := map[string]int{}
			for child, count := range maternity.Children {
				if count != nil {
					children[child] = *count
				}
			}
			s.Maternity = &MaternitySelection{Children: children}
			continue
		}
		if count, ok := coerceInt(value); ok {
			s.BedCounts[key] = count
		}
	}
	return nil
}

type maternityPayload struct {
	Children map[string]*int `json:"children"`
}

func coerceBool(raw json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "yes":
			return true, true
		case "0", "false", "no", "":
			return false, true
		}
	}
	return false, false
}

func coerceInt(raw json.RawMessage) (int, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(strings.TrimSuffix(s, ".0"))
		if s == "" {
			return 0, false
		}
		if parsed, err := strconv.Atoi(s); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
