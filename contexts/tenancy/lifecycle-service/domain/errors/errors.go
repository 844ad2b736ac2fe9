package errors

import "errors"

var (
	ErrForbidden            = errors.New("operation forbidden")
	ErrNotFound             = errors.New("resource not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSpaceNotFound        = errors.New("space not found")
	ErrValidation           = errors.New("validation failed")
	ErrNameTaken            = errors.New("name already taken")
	ErrRenamingForbidden    = errors.New("renaming object forbidden")
	ErrDownstream           = errors.New("downstream provisioning failed")
	ErrUnknown              = errors.New("unknown error")
)
