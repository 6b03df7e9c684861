package holiday

import "slices"

// Lunar-calendar holidays of other communities, published year by year as JDNs.
// Every table is sorted ascending.
var (
	eidAnniversaryDays = []int{2456936, 2457290, 2457644, 2457998, 2458353}

	chineseNewYearDays = []int{
		2456689, 2456690, 2457073, 2457074, 2457427, 2457428, 2457782,
		2457783, 2458166, 2458520, 2458874, 2459257, 2459612, 2459967, 2460351,
		2460705, 2461089, 2461443, 2461797, 2462181, 2462536,
	}

	diwaliDays = []int{
		2456599, 2456953, 2457337, 2457691, 2458045, 2458430, 2458784, 2459168,
		2459523, 2459877,
	}

	eidDays = []int{
		2456513, 2456867, 2457221, 2457576, 2457930, 2458285, 2458640, 2459063,
		2459416, 2459702, 2460125, 2460261,
	}

	// Government substitute days off, 2019 to 2021.
	substituteDays = []int{
		2458768, 2458772, 2458785, 2458800,
		2458855, 2458918, 2458950, 2459051, 2459062,
		2459152, 2459156, 2459167, 2459181, 2459184,
		2459300, 2459303, 2459323, 2459324,
		2459335, 2459548, 2459573,
	}
)

// chineseNewYearHolidayFrom is the last JDN before Chinese New Year became a public holiday.
const chineseNewYearHolidayFrom = 2460677

func inTable(table []int, jdn int) bool {
	_, found := slices.BinarySearch(table, jdn)
	return found
}
