package utils

import (
	"math"
	"sort"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// PercentShares devolve a participação de cada valor no total, com duas casas.
// Os centésimos que sobram do arredondamento vão para os maiores restos, então
// a soma fecha em exatamente 100. Total zero vale 0 para todos.
func PercentShares(values []float64) []float64 {
	shares := make([]float64, len(values))

	total := 0.0
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return shares
	}

	const whole = 10000 // 100% em centésimos
	hundredths := make([]int64, len(values))
	remainders := make([]float64, len(values))
	var assigned int64
	for i, v := range values {
		exact := v / total * whole
		floor := math.Floor(exact)
		hundredths[i] = int64(floor)
		remainders[i] = exact - floor
		assigned += hundredths[i]
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	for _, i := range order {
		if assigned >= whole {
			break
		}
		hundredths[i]++
		assigned++
	}

	for i, h := range hundredths {
		shares[i] = float64(h) / 100
	}

	return shares
}
