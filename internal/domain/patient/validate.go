package patient

import (
	"errors"
	"regexp"
	"strings"
)

// Field constraint violations. Messages are shown to the nurse as is.
var (
	ErrInvalidName       = errors.New("Names should only contain alphanumeric characters and spaces, and it should not be blank")
	ErrInvalidPhone      = errors.New("Phone numbers should only contain numbers, and it should be at least 3 digits long")
	ErrInvalidEmail      = errors.New("Emails should be of the format local-part@domain")
	ErrInvalidAddress    = errors.New("Addresses can take any values, and it should not be blank")
	ErrInvalidTag        = errors.New("Tags names should be alphanumeric")
	ErrInvalidCondition  = errors.New("Conditions can take any values, and it should not be blank")
	ErrInvalidRemark     = errors.New("Remarks can take any values, and it should not be blank")
	ErrInvalidTask       = errors.New("Task descriptions can take any values, and it should not be blank")
	ErrInvalidMedication = errors.New("Medication type and dosage should both be given and not be blank")
)

var (
	nameRe  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phoneRe = regexp.MustCompile(`^\d{3,}$`)
	emailRe = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9]([A-Za-z0-9.-]*[A-Za-z0-9])?$`)
	tagRe   = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
)

func ValidateName(s string) error {
	if !nameRe.MatchString(s) {
		return ErrInvalidName
	}
	return nil
}

func ValidatePhone(s string) error {
	if !phoneRe.MatchString(s) {
		return ErrInvalidPhone
	}
	return nil
}

func ValidateEmail(s string) error {
	if !emailRe.MatchString(s) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateAddress(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrInvalidAddress
	}
	return nil
}

// NewTag validates name as a single alphanumeric word.
func NewTag(name string) (Tag, error) {
	if !tagRe.MatchString(name) {
		return Tag{}, ErrInvalidTag
	}
	return Tag{Name: name}, nil
}

func NewCondition(description string) (Condition, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Condition{}, ErrInvalidCondition
	}
	return Condition{Description: description}, nil
}

func NewRemark(text string) (Remark, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Remark{}, ErrInvalidRemark
	}
	return Remark{Text: text}, nil
}

func NewMedication(kind, dosage string) (Medication, error) {
	kind, dosage = strings.TrimSpace(kind), strings.TrimSpace(dosage)
	if kind == "" || dosage == "" {
		return Medication{}, ErrInvalidMedication
	}
	return Medication{Type: kind, Dosage: dosage}, nil
}
