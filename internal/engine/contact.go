package engine

import (
	"time"

	"github.com/tartampluch/go-mmcal/internal/myanmar"
)

// BirthdayEntry is a contact with a birthday, as listed by the command line.
type BirthdayEntry struct {
	// UID is a stable hash of the name and date of birth.
	UID string `json:"uid"`

	// Name is the display name (Formatted Name or Structured Name).
	Name string `json:"name"`

	// DateOfBirth is the parsed Western date.
	DateOfBirth time.Time `json:"date_of_birth"`

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool `json:"year_known"`

	// NextOccurrence is the next birthday on or after today.
	NextOccurrence time.Time `json:"next_occurrence"`

	// AgeNext is the age reached at NextOccurrence. Zero when the year is unknown.
	AgeNext int `json:"age_next"`

	// Myanmar, MyanmarText and Mahabote describe the day of birth.
	// They are only set when YearKnown is true.
	Myanmar     myanmar.Date `json:"myanmar,omitzero"`
	MyanmarText string       `json:"myanmar_text,omitempty"`
	Mahabote    string       `json:"mahabote,omitempty"`
}
