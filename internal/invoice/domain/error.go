package domain

import "errors"

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvalidStatus   = errors.New("invalid invoice status")
	ErrInvalidInvoice  = errors.New("invalid invoice")
)
