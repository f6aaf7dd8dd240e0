package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError is an error the HTTP layer can render without inspecting its cause.
type AppError interface {
	error
	HTTPCode() int
	// ErrorCode is the stable machine-readable code, e.g. "PRODUCT_NOT_FOUND".
	ErrorCode() string
	// Message is safe to show to clients.
	Message() string
	// Details is optional and never sent for 5xx responses.
	Details() string
}

// BaseError is a sentinel AppError. Compare with errors.Is after WrapMessage.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

func newBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{httpCode: httpCode, errorCode: errorCode, message: message}
}

func (e *BaseError) Error() string     { return e.message }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return "" }

// WrapMessage adds internal context and a stack trace while keeping the sentinel matchable.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

var (
	ErrPrincipalNotFound = newBaseError(http.StatusNotFound,
		"PRINCIPAL_NOT_FOUND", "Principal not found")
	ErrPrincipalAlreadyExists = newBaseError(http.StatusConflict,
		"PRINCIPAL_ALREADY_EXISTS", "Username is already registered")

	ErrProductNotFound = newBaseError(http.StatusNotFound,
		"PRODUCT_NOT_FOUND", "Product not found")
	// ErrProductReferenced blocks deleting a product that an order still lists.
	ErrProductReferenced = newBaseError(http.StatusConflict,
		"PRODUCT_REFERENCED", "Product is referenced by an existing order")

	ErrUnknownProduct = newBaseError(http.StatusUnprocessableEntity,
		"UNKNOWN_PRODUCT", "Order references a product that does not exist")

	ErrValidationFailed = newBaseError(http.StatusBadRequest,
		"VALIDATION_FAILED", "Input validation failed")
)

// DatabaseExecuteError reports a failed statement. Details name the operation
// for logs; the client only sees a generic message.
type DatabaseExecuteError struct {
	err     error
	details string
}

func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed: "+e.details).Error()
}

func (e *DatabaseExecuteError) Unwrap() error     { return e.err }
func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "Database execution failed" }
func (e *DatabaseExecuteError) Details() string   { return e.details }
