package services

import "time"

const dateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

func DateKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(dateLayout)
}

func systemNow() time.Time {
	return time.Now().UTC()
}
