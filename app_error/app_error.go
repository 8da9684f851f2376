package app_error

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

// Validation marks malformed user input (bad weight, order collision,
// missing submission field, score out of bounds).
func Validation(format string, args ...any) error {
	return statusError{error: fmt.Errorf(format, args...), status: http.StatusBadRequest}
}

// NotFound marks a missing referenced entity (team, judge, evaluation).
func NotFound(format string, args ...any) error {
	return statusError{error: fmt.Errorf(format, args...), status: http.StatusNotFound}
}

// Forbidden marks a rejected write: event locked or insufficient privilege.
func Forbidden(format string, args ...any) error {
	return statusError{error: fmt.Errorf(format, args...), status: http.StatusForbidden}
}

// Conflict marks a duplicate create for an existing (team, judge) pair.
func Conflict(format string, args ...any) error {
	return statusError{error: fmt.Errorf(format, args...), status: http.StatusConflict}
}

// HTTPStatus returns the status carried by err, or 500 for plain errors.
func HTTPStatus(err error) int {
	var se statusError
	if errors.As(err, &se) {
		return se.status
	}
	return http.StatusInternalServerError
}

func IsValidation(err error) bool {
	return HTTPStatus(err) == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	return HTTPStatus(err) == http.StatusNotFound
}

func IsForbidden(err error) bool {
	return HTTPStatus(err) == http.StatusForbidden
}

func IsConflict(err error) bool {
	return HTTPStatus(err) == http.StatusConflict
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Abort writes err as a JSON error response using its carried status.
func Abort(c *gin.Context, err error) {
	WithHTTPStatus(c, err, HTTPStatus(err))
}
