// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/presensya/pkg/geo"
)

/*
TestDistance checks the Haversine calculation against known point pairs.
*/
func TestDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		delta                  float64
	}{
		{"identical_points", 14.5995, 120.9842, 14.5995, 120.9842, 0, 0},
		{"across_manila_block", 14.5995, 120.9842, 14.6010, 120.9850, 0.188, 0.0005},
		{"manila_to_quezon_city", 14.5995, 120.9842, 14.6760, 121.0437, 10.6, 0.2},
		{"across_equator", -0.5, 100.0, 0.5, 100.0, 111.2, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geo.Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.delta)

			// Distance is symmetric.
			assert.Equal(t, got, geo.Distance(tt.lat2, tt.lon2, tt.lat1, tt.lon1))
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{"two_places_down", 9.49444, 2, 9.49},
		{"two_places_up", 9.496, 2, 9.5},
		{"three_places", 0.18769, 3, 0.188},
		{"zero_places", 2.5, 0, 3},
		{"negative_value", -1.2345, 2, -1.23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, geo.Round(tt.value, tt.places), 1e-9)
		})
	}
}
