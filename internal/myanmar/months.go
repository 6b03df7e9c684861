package myanmar

import "math"

// MonthList describes the months of a Myanmar year in calendar order.
type MonthList struct {
	Numbers []int
	Names   []string
	// Current is the month number selected from the list.
	Current int
}

// Months lists the months spanned by a Myanmar year and resolves the requested
// month against them. Month 0 in a common year becomes Waso; months outside the
// year's span are clamped to its first or last month.
func Months(year, month int) MonthList {
	first := FromJulian(math.Floor(SolarYear*float64(year)+Epoch+0.5) + 1)
	last := FromJulian(math.Floor(SolarYear*float64(year+1) + Epoch + 0.5))

	start, end := first.Month, last.Month
	if start == FirstWaso {
		start = Waso
	}

	target := month
	if month == FirstWaso && !first.YearType.IsWatat() {
		target = Waso
	}
	if month != FirstWaso && month < start {
		target = start
	}
	if month > end {
		target = end
	}

	var list MonthList
	current := 0
	for i := start; i <= end; i++ {
		if i == Waso && first.YearType.IsWatat() {
			list.Numbers = append(list.Numbers, FirstWaso)
			list.Names = append(list.Names, monthNames[FirstWaso])
			if target == FirstWaso {
				current = len(list.Numbers) - 1
			}
		}
		list.Numbers = append(list.Numbers, i)
		list.Names = append(list.Names, MonthName(i, first.YearType))
		if i == target {
			current = len(list.Numbers) - 1
		}
	}
	if len(list.Numbers) > 0 {
		list.Current = list.Numbers[current]
	}
	return list
}
