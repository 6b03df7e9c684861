package myanmar

import (
	"errors"
	"fmt"
	"math"
)

// ThingyanStart is the first Myanmar year for which Thingyan is computed.
const ThingyanStart = 1100

// ErrBeforeThingyan is returned for years before ThingyanStart.
var ErrBeforeThingyan = errors.New("thingyan is not defined before this year")

// Thingyan holds the water-festival moments that open a Myanmar year.
type Thingyan struct {
	Year int
	// AtatTime is the moment the sun enters the new year.
	AtatTime float64
	// AkyaTime is the moment Thingyan begins.
	AkyaTime float64
	AtatDay  int
	AkyaDay  int
}

// NewThingyan computes the Thingyan of a Myanmar year.
func NewThingyan(year int) (Thingyan, error) {
	if year < ThingyanStart {
		return Thingyan{}, fmt.Errorf("%w: %d < %d", ErrBeforeThingyan, year, ThingyanStart)
	}
	return ThingyanFor(year), nil
}

// ThingyanFor computes Thingyan without the lower bound. Holiday rules apply
// their own era gate.
func ThingyanFor(year int) Thingyan {
	ja := SolarYear*float64(year) + Epoch
	jk := ja - 2.1675
	if year >= ThirdEraStart {
		jk = ja - 2.169918982
	}
	return Thingyan{
		Year:     year,
		AtatTime: ja,
		AkyaTime: jk,
		AtatDay:  int(math.Floor(ja + 0.5)),
		AkyaDay:  int(math.Floor(jk + 0.5)),
	}
}

// AkyoDay is the eve of Thingyan.
func (t Thingyan) AkyoDay() int {
	return t.AkyaDay - 1
}

// AkyatDays returns the one or two days between Akya and Atat.
func (t Thingyan) AkyatDays() []int {
	if t.AtatDay-t.AkyaDay > 2 {
		return []int{t.AkyaDay + 1, t.AkyaDay + 2}
	}
	return []int{t.AkyaDay + 1}
}

// NewYearDay is the first day of the Myanmar year.
func (t Thingyan) NewYearDay() int {
	return t.AtatDay + 1
}

// Days returns every Thingyan day from Akyo to New Year's Day, ascending.
func (t Thingyan) Days() []int {
	days := []int{t.AkyoDay(), t.AkyaDay}
	days = append(days, t.AkyatDays()...)
	return append(days, t.AtatDay, t.NewYearDay())
}
