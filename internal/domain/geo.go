package domain

import (
	"cmp"
	"math"
	"math/big"
	"slices"
)

const (
	EarthRadiusKm        = 6371.0
	DefaultMaxDistanceKm = 10.0
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Haversine returns the great-circle distance in kilometers between two
// coordinates given in degrees, on a spherical earth.
func Haversine(from, to Coordinates) float64 {
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(from.Lat*math.Pi/180)*math.Cos(to.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

var (
	ten  = big.NewRat(10, 1)
	half = big.NewRat(1, 2)
)

// RoundDistance rounds a distance to one decimal place. The exact binary value
// of km is rounded, not km*10, and exact ties go up. So 0.35, stored as
// 0.34999..., becomes 0.3 while 3.25 becomes 3.3.
func RoundDistance(km float64) float64 {
	exact := new(big.Rat).SetFloat64(km)
	if exact == nil {
		return km
	}

	exact.Mul(exact, ten)
	exact.Add(exact, half)

	// Int.Div is Euclidean, which is floor for a positive denominator.
	tenths := new(big.Int).Div(exact.Num(), exact.Denom())

	rounded, _ := new(big.Rat).SetFrac(tenths, big.NewInt(10)).Float64()
	return rounded
}

type RankedTheater struct {
	Theater
	Distance float64
}

// RankNearby evaluates every theater, keeps those whose rounded distance from
// origin is at most maxDistance and orders them nearest first. The comparison
// is made on the rounded distance. Equal distances keep their input order.
// NaN coordinates never satisfy the radius, so they produce an empty result.
func RankNearby(theaters []Theater, origin Coordinates, maxDistance float64) []RankedTheater {
	ranked := make([]RankedTheater, 0, len(theaters))

	for _, t := range theaters {
		distance := RoundDistance(Haversine(origin, t.Location.Coordinates))
		if distance <= maxDistance {
			ranked = append(ranked, RankedTheater{Theater: t, Distance: distance})
		}
	}

	slices.SortStableFunc(ranked, func(a, b RankedTheater) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return ranked
}
