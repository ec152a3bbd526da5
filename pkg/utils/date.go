package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// StartOfDay retorna a meia-noite do dia informado
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

func EndOfDay(date time.Time) time.Time {
	return StartOfDay(date).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthKey formata a data no padrão mm-yyyy usado nos rankings e séries mensais
func MonthKey(date time.Time) string {
	return date.Format("01-2006")
}

func EqualDate(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() && date1.Month() == date2.Month() && date1.Day() == date2.Day()
}
