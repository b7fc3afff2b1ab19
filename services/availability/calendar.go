package availability

import (
	"time"

	"sylt/models"
	"sylt/services/pricing"
	"sylt/utils"
)

// BuildCalendar produces the day-by-day availability window for one room,
// inclusive of both bounds. Blocked membership is tested by formatted date
// string, not instant equality, since blocked dates may carry time-of-day
// noise from feed parsing. Price and minimum stay are set only on available
// days.
func BuildCalendar(roomID string, start, end time.Time, basePrice float64, blocked map[string]bool, eng *pricing.Engine) models.AvailabilityCalendar {
	cal := models.AvailabilityCalendar{RoomID: roomID}

	for _, day := range utils.DaysBetween(start, end) {
		date := utils.FormatDate(day)
		if blocked[date] {
			cal.Days = append(cal.Days, models.DayAvailability{
				RoomID:    roomID,
				Date:      date,
				Available: false,
				MinStay:   1,
			})
			continue
		}
		price := eng.Price(day, basePrice)
		cal.Days = append(cal.Days, models.DayAvailability{
			RoomID:    roomID,
			Date:      date,
			Available: true,
			Price:     &price,
			MinStay:   eng.MinimumStay(day),
		})
	}
	return cal
}

// IsRangeAvailable reports whether every night of the half-open stay
// [checkIn, checkOut) is available. An empty selection, either because
// checkIn equals checkOut or because the range misses the calendar window
// entirely, is not available; a zero-night stay must never look bookable.
func IsRangeAvailable(cal models.AvailabilityCalendar, checkIn, checkOut string) bool {
	selected := 0
	for _, day := range cal.Days {
		if day.Date < checkIn || day.Date >= checkOut {
			continue
		}
		if !day.Available {
			return false
		}
		selected++
	}
	return selected > 0
}

// TotalPrice sums the nightly prices over the half-open stay. Days without a
// price count as zero, so a partially blocked range silently undercounts
// instead of erroring; callers must gate with IsRangeAvailable first to get
// a meaningful total.
func TotalPrice(cal models.AvailabilityCalendar, checkIn, checkOut string) float64 {
	var total float64
	for _, day := range cal.Days {
		if day.Date < checkIn || day.Date >= checkOut {
			continue
		}
		if day.Price != nil {
			total += *day.Price
		}
	}
	return total
}

// ReachableCheckIns lists the dates a stay of minStay nights can start on:
// the date itself and each of the following minStay-1 calendar entries must
// all be available. Windows running past the end of the calendar never
// qualify, even when the trailing days are individually available.
func ReachableCheckIns(cal models.AvailabilityCalendar, minStay int) []string {
	if minStay < 1 {
		minStay = 1
	}
	var checkIns []string
	for i := 0; i+minStay <= len(cal.Days); i++ {
		ok := true
		for j := 0; j < minStay; j++ {
			if !cal.Days[i+j].Available {
				ok = false
				break
			}
		}
		if ok {
			checkIns = append(checkIns, cal.Days[i].Date)
		}
	}
	return checkIns
}
