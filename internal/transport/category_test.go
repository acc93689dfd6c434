package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryEstimator(t *testing.T) {
	cases := []struct {
		name        string
		origin      string
		destination string
		people      int
		want        float64
	}{
		{"same region", "Delhi", "Agra", 1, sameRegionPerPerson},
		{"same region party of two", "Mumbai", "Goa", 2, 2 * sameRegionPerPerson},
		{"cross region", "Mumbai", "Kolkata", 1, crossRegionPerPerson},
		{"international destination", "Mumbai", "Paris", 1, internationalPerPerson},
		{"international party", "Delhi", "Bangkok", 3, 3 * internationalPerPerson},
		{"unmapped route priced cross region", "Mumbai", "Lakshadweep", 1, crossRegionPerPerson},
		{"case insensitive", "mumbai", "GOA", 1, sameRegionPerPerson},
		{"qualified destination", "Mumbai", "Goa, India", 1, sameRegionPerPerson},
		{"party size clamped to one", "Delhi", "Agra", 0, sameRegionPerPerson},
	}

	e := NewCategoryEstimator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Estimate(context.Background(), tc.origin, tc.destination, tc.people)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
