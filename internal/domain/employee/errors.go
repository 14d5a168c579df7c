package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrDNIExists        = errors.New("DNI already registered")
	ErrEmployeeIDExists = errors.New("employee id already assigned")
	ErrStoreUnavailable = errors.New("employee store unavailable")
)
