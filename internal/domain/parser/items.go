package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/uninurse/uninurse/internal/domain/patient"
)

var recurrenceRe = regexp.MustCompile(`(?i)^(\d+)\s*(day|week|month)s?$`)

// parseIndex converts a 1-based user index to a 0-based position.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, errInvalidIndex
	}
	return n - 1, nil
}

// parseTask reads "DESCRIPTION [| DATE TIME [| INTERVAL PERIOD]]".
func parseTask(s string, loc *time.Location) (patient.Task, error) {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 3 || parts[0] == "" {
		return patient.Task{}, patient.ErrInvalidTask
	}
	task := patient.Task{Description: parts[0]}
	if len(parts) > 1 {
		due, err := time.ParseInLocation(patient.DueLayout, parts[1], loc)
		if err != nil {
			return patient.Task{}, errInvalidDateTime
		}
		task.Due = due
	}
	if len(parts) > 2 {
		m := recurrenceRe.FindStringSubmatch(parts[2])
		if m == nil {
			return patient.Task{}, errInvalidRecurrence
		}
		every, err := strconv.Atoi(m[1])
		if err != nil || every <= 0 {
			return patient.Task{}, errInvalidRecurrence
		}
		task.Recurrence = patient.Recurrence{Every: every, Unit: patient.Unit(strings.ToLower(m[2]))}
	}
	return task, nil
}

// parseMedication reads "TYPE | DOSAGE".
func parseMedication(s string) (patient.Medication, error) {
	kind, dosage, ok := strings.Cut(s, "|")
	if !ok {
		return patient.Medication{}, patient.ErrInvalidMedication
	}
	return patient.NewMedication(kind, dosage)
}
