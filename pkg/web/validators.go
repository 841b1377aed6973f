package web

import (
	"net/http"
	"strconv"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator func(valueToTest int64) bool

func newComparisonValidator(valueInClosure int64, compareFn func(argValue, closedValue int64) bool) ParamValidator {
	return func(argValue int64) bool {
		return compareFn(argValue, valueInClosure)
	}
}

// gte returns a ParamValidator that checks if the argument is greater than or equal to the value captured in the closure.
func gte(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue >= closedValue
	})
}

// gt returns a ParamValidator that checks if the argument is greater than the value captured in the closure.
func gt(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue > closedValue
	})
}

// QueryGteOrDefault reads an int32 query parameter that must be >= value, falling back to def.
func QueryGteOrDefault(r *http.Request, key string, value int64, def int32) int32 {
	return parseOrDefault(r, key, gte(value), def)
}

// QueryGtOrDefault reads an int32 query parameter that must be > value, falling back to def.
func QueryGtOrDefault(r *http.Request, key string, value int64, def int32) int32 {
	return parseOrDefault(r, key, gt(value), def)
}

// parseOrDefault returns def when the parameter is absent, not an int32, or rejected by pValidator.
func parseOrDefault(r *http.Request, key string, pValidator ParamValidator, def int32) int32 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !pValidator(intValue) {
		return def
	}
	return int32(intValue)
}
