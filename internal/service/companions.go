package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nuestraboda/rsvp-backend/internal/models"
)

// maxCompanions bounds the positional scan so adversarial payloads cannot
// make us walk an arbitrary key space.
const maxCompanions = 20

// extractCompanions recovers the companion list from the flat submission
// fields, following the companion_<i>_name / companion_<i>_menu /
// companion_<i>_allergyDetail convention for i starting at 1.
//
// The scan stops at the first index whose name key is absent, so the list is
// a strict contiguous prefix: a numbering gap truncates everything after it.
// An index whose name key is present but empty yields no companion yet does
// not stop the scan.
func extractCompanions(fields map[string]interface{}) []models.Guest {
	var guests []models.Guest
	for i := 1; i <= maxCompanions; i++ {
		raw, ok := fields[fmt.Sprintf("companion_%d_name", i)]
		if !ok {
			break
		}
		name := strings.TrimSpace(stringField(raw))
		if name == "" {
			continue
		}
		guests = append(guests, models.Guest{
			Name:          name,
			MenuChoice:    stringField(fields[fmt.Sprintf("companion_%d_menu", i)]),
			AllergyDetail: stringField(fields[fmt.Sprintf("companion_%d_allergyDetail", i)]),
		})
	}
	return guests
}

// stringField tolerates the loose typing of hand-built form JSON, where a
// value may arrive as a string, number or bool.
func stringField(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}
