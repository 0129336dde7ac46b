package dto

import "net/http"

// General error codes used by the HTTP layer itself
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Unknown domain codes fall back to 422 since everything the domain
// rejects beyond this list is a business rule violation.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,

	"NOT_FOUND":      http.StatusNotFound,
	"UNIT_NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"PRODUCT_IN_USE":       http.StatusConflict,
	"PACKAGE_UNIT_IN_USE":  http.StatusConflict,
	"LOCATION_IN_USE":      http.StatusConflict,

	"INVALID_INPUT":            http.StatusBadRequest,
	"INVALID_QUANTITY":         http.StatusBadRequest,
	"INVALID_PRICE":            http.StatusBadRequest,
	"INVALID_CONVERSION_RATE":  http.StatusBadRequest,
	"INVALID_TRANSACTION_TYPE": http.StatusBadRequest,
	"INVALID_DISCOUNT":         http.StatusBadRequest,
	"INVALID_ROUNDING":         http.StatusBadRequest,
	"EMPTY_ORDER":              http.StatusBadRequest,

	"INVALID_STATE":            http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":       http.StatusUnprocessableEntity,
	"ORDER_ALREADY_CONFIRMED":  http.StatusUnprocessableEntity,
	"ORDER_NOT_CONFIRMED":      http.StatusUnprocessableEntity,
	"PRODUCT_NOT_IN_ORDER":     http.StatusUnprocessableEntity,
	"RETURN_QUANTITY_EXCEEDED": http.StatusUnprocessableEntity,
	"STOCK_TAKING_COMPLETED":   http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
