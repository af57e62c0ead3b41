// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning 0 instead of an error when string parsing fails). This is
highly useful in API handler contexts parsing query parameters.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
)

// ToIntD converts a string to an int, returning the provided default if
// parsing fails or the string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	v, err := strconv.Atoi(str)
	if err != nil {
		return def
	}
	return v
}

// ToBoolD converts a string to a bool, returning the provided default if
// parsing fails or the string is empty.
func ToBoolD(str string, def bool) bool {
	if str == "" {
		return def
	}

	v, err := strconv.ParseBool(str)
	if err != nil {
		return def
	}
	return v
}
