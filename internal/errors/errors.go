package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound           = NewAppError("NOT_FOUND", "Recurso no encontrado", http.StatusNotFound)
	ErrUnauthorized       = NewAppError("UNAUTHORIZED", "No autorizado", http.StatusUnauthorized)
	ErrForbidden          = NewAppError("FORBIDDEN", "Acceso denegado", http.StatusForbidden)
	ErrBadRequest         = NewAppError("BAD_REQUEST", "Solicitud inválida", http.StatusBadRequest)
	ErrInternalServer     = NewAppError("INTERNAL_SERVER_ERROR", "Error interno del servidor", http.StatusInternalServerError)
	ErrConflict           = NewAppError("CONFLICT", "Conflicto de recursos", http.StatusConflict)
	ErrDatabase           = NewAppError("DATABASE_ERROR", "Error en la base de datos", http.StatusInternalServerError)
	ErrInvalidCredentials = NewAppError("INVALID_CREDENTIALS", "Credenciales inválidas", http.StatusUnauthorized)

	ErrUserNotFound        = NewAppError("USER_NOT_FOUND", "Usuario no encontrado", http.StatusNotFound)
	ErrClientNotFound      = NewAppError("CLIENT_NOT_FOUND", "Cliente no encontrado", http.StatusNotFound)
	ErrInvoiceNotFound     = NewAppError("INVOICE_NOT_FOUND", "Factura no encontrada", http.StatusNotFound)
	ErrPaymentNotFound     = NewAppError("PAYMENT_NOT_FOUND", "Pago no encontrado", http.StatusNotFound)
	ErrServiceNotFound     = NewAppError("SERVICE_NOT_FOUND", "Servicio no encontrado", http.StatusNotFound)
	ErrExpenseNotFound     = NewAppError("EXPENSE_NOT_FOUND", "Gasto no encontrado", http.StatusNotFound)
	ErrEquipmentNotFound   = NewAppError("EQUIPMENT_NOT_FOUND", "Equipo no encontrado", http.StatusNotFound)
	ErrInvoiceAlreadyPaid  = NewAppError("INVOICE_ALREADY_PAID", "La factura ya está pagada", http.StatusBadRequest)
	ErrInvoiceCancelled    = NewAppError("INVOICE_CANCELLED", "La factura está anulada", http.StatusBadRequest)
	ErrClientCodeTaken     = NewAppError("CLIENT_CODE_TAKEN", "El código de cliente ya existe", http.StatusConflict)
	ErrResourceNotOwned    = NewAppError("RESOURCE_NOT_OWNED", "El recurso no pertenece al cliente", http.StatusForbidden)
	ErrSerialAlreadyExists = NewAppError("SERIAL_ALREADY_EXISTS", "El número de serie ya está registrado", http.StatusConflict)
	ErrUsernameTaken       = NewAppError("USERNAME_TAKEN", "El nombre de usuario ya existe", http.StatusConflict)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Details = make(map[string]interface{}, len(e.Details))
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	return &clone
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "Solicitud cancelada por el cliente", http.StatusRequestTimeout)
	}

	return WrapError(err, "UNKNOWN_ERROR", "Error desconocido", http.StatusInternalServerError)
}

func NewAuthError(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Details:    make(map[string]interface{}),
	}
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"field": field,
		},
	}
}

func NewDatabaseError(err error) *AppError {
	return WrapError(err, "DATABASE_ERROR", "Error al ejecutar la operación en la base de datos", http.StatusInternalServerError)
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s no encontrado", resource),
		StatusCode: http.StatusNotFound,
		Details: map[string]interface{}{
			"resource": resource,
		},
	}
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   fieldErr.Field(),
			"message": translateValidationError(fieldErr),
		})
	}

	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Error de validación en los campos",
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func translateValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", fe.Field())
	case "email":
		return "Email inválido"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s caracteres", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual a %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s debe tener exactamente %s caracteres", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s debe ser numérico", fe.Field())
	default:
		return fmt.Sprintf("Validación '%s' falló para %s", fe.Tag(), fe.Field())
	}
}
