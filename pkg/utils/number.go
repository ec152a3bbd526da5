package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// PercentageOf retorna quanto rate% representa de base, arredondado
func PercentageOf(base, rate float64) float64 {
	return RoundWithTwoDecimalPlace(base * rate / 100)
}

// Growth calcula a variação percentual entre dois períodos
func Growth(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}

	return RoundWithTwoDecimalPlace((current - previous) / previous * 100)
}
