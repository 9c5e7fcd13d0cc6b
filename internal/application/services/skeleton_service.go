package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/catalog"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

// SkeletonService expands facility configurations into the flat skeleton
// table that is handed to the classifier.
type SkeletonService struct{}

// NewSkeletonService creates a new skeleton expander.
func NewSkeletonService() *SkeletonService {
	return &SkeletonService{}
}

// Expand walks every facility configuration and emits one skeleton row per
// enabled unit. Unknown unit keys are skipped silently. Returns nil when no
// rows were produced so callers can skip the classification and upload steps.
func (s *SkeletonService) Expand(configs []entities.FacilityConfig) []entities.SkeletonRow {
	var rows []entities.SkeletonRow

	for i := range configs {
		config := &configs[i]
		ext := config.WarehouseExtension()

		rows = append(rows, s.expandOutpatient(config, ext)...)
		rows = append(rows, s.expandInpatient(config, ext)...)
	}

	if len(rows) == 0 {
		return nil
	}

	log.Debug().Int("rows", len(rows)).Int("configs", len(configs)).Msg("expanded service unit skeleton")
	return rows
}

func (s *SkeletonService) expandOutpatient(config *entities.FacilityConfig, ext string) []entities.SkeletonRow {
	parent := config.OutpatientParent
	if parent == "" {
		parent = fmt.Sprintf("Outpatient Service Unit - %s", ext)
	}

	var rows []entities.SkeletonRow
	for _, key := range catalog.OutpatientKeys() {
		if !config.Outpatient.Enabled[key] {
			continue
		}
		template, ok := catalog.Lookup(key, catalog.FamilyOutpatient)
		if !ok {
			continue
		}

		servicePoints := template.ServicePoints
		if count := config.Outpatient.RoomCount(key); count > 1 && servicePoints != "" {
			servicePoints = multiplyServicePoints(servicePoints, count)
		}

		rows = append(rows, entities.SkeletonRow{
			ServiceUnit:       unitDisplayName(key),
			Company:           config.Company,
			IsGroup:           boolCell(template.IsGroup),
			ServiceUnitType:   template.UnitType,
			IsMCH:             boolCell(template.IsMCH),
			Warehouse:         config.Warehouse,
			ParentServiceUnit: parent,
			Capacity:          fmt.Sprintf("%d", template.Capacity),
			ServicePoints:     servicePoints,
			Beds:              "",
		})
	}
	return rows
}

func (s *SkeletonService) expandInpatient(config *entities.FacilityConfig, ext string) []entities.SkeletonRow {
	parent := config.InpatientParent
	if parent == "" {
		parent = fmt.Sprintf("Inpatient Service Unit - %s", ext)
	}

	var rows []entities.SkeletonRow
	for _, key := range catalog.InpatientKeys() {
		beds, ok := config.Inpatient.BedCounts[key]
		if !ok {
			continue
		}
		template, found := catalog.Lookup(key, catalog.FamilyInpatient)
		if !found {
			continue
		}

		rows = append(rows, entities.SkeletonRow{
			ServiceUnit:       unitDisplayName(key),
			Company:           config.Company,
			IsGroup:           boolCell(template.IsGroup),
			ServiceUnitType:   template.UnitType,
			IsMCH:             "",
			Warehouse:         config.Warehouse,
			ParentServiceUnit: parent,
			Capacity:          "",
			ServicePoints:     "",
			Beds:              fmt.Sprintf("%d", beds),
		})
	}

	if config.Inpatient.Maternity != nil {
		rows = append(rows, s.expandMaternity(config, ext, parent)...)
	}
	return rows
}

// expandMaternity emits the maternity parent row followed by its child
// wards. Children parent to the maternity node, never to the facility-level
// inpatient root.
func (s *SkeletonService) expandMaternity(config *entities.FacilityConfig, ext, inpatientParent string) []entities.SkeletonRow {
	maternityName := fmt.Sprintf("Maternity - %s", ext)
	template, ok := catalog.Lookup(catalog.MaternityKey, catalog.FamilyInpatient)
	if !ok {
		return nil
	}

	rows := []entities.SkeletonRow{{
		ServiceUnit:       maternityName,
		Company:           config.Company,
		IsGroup:           boolCell(template.IsGroup),
		ServiceUnitType:   template.UnitType,
		IsMCH:             "",
		Warehouse:         config.Warehouse,
		ParentServiceUnit: inpatientParent,
		Capacity:          "",
		ServicePoints:     "",
		Beds:              "0",
	}}

	for _, key := range catalog.MaternityChildKeys() {
		beds, requested := config.Inpatient.Maternity.Children[key]
		if !requested {
			continue
		}
		child, found := catalog.LookupMaternityChild(key)
		if !found {
			continue
		}
		rows = append(rows, entities.SkeletonRow{
			ServiceUnit:       unitDisplayName(key),
			Company:           config.Company,
			IsGroup:           boolCell(child.IsGroup),
			ServiceUnitType:   child.UnitType,
			IsMCH:             "",
			Warehouse:         config.Warehouse,
			ParentServiceUnit: maternityName,
			Capacity:          "",
			ServicePoints:     "",
			Beds:              fmt.Sprintf("%d", beds),
		})
	}
	return rows
}

// multiplyServicePoints applies the room multiplication rule: every point
// except triage is duplicated count times with a 1-based numeric suffix, the
// stage is unchanged, and triage stays singular.
func multiplyServicePoints(spec string, count int) string {
	points := strings.Split(spec, ",")
	adjusted := make([]string, 0, len(points))

	for _, point := range points {
		point = strings.TrimSpace(point)
		parts := strings.Split(point, " - ")
		if len(parts) != 2 {
			adjusted = append(adjusted, point)
			continue
		}
		name := strings.TrimSpace(parts[0])
		stage := strings.TrimSpace(parts[1])

		if strings.Contains(strings.ToLower(name), "triage") {
			adjusted = append(adjusted, fmt.Sprintf("%s - %s", name, stage))
			continue
		}
		for i := 1; i <= count; i++ {
			adjusted = append(adjusted, fmt.Sprintf("%s %d - %s", name, i, stage))
		}
	}
	return strings.Join(adjusted, ", ")
}

// unitDisplayName turns a unit key like "medical_outpatient" into
// "Medical Outpatient".
func unitDisplayName(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

func boolCell(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
