// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package geo provides great-circle distance calculations for geolocation stamps.

Attendance events carry the coordinates reported by the employee's device;
the shift summary compares the clock-in and clock-out positions to surface
how far the device moved over the shift.
*/
package geo

import "math"

// earthRadiusKm is the mean radius of the Earth used by the Haversine formula.
const earthRadiusKm = 6371.0

// Distance returns the Haversine great-circle distance in kilometers between
// two latitude/longitude points, rounded to 3 decimal places.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return Round(earthRadiusKm*c, 3)
}

// Round rounds a value to the given number of decimal places.
func Round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// toRadians converts degrees to radians.
func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
