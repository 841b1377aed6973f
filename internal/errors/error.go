// Package errors provides the sentinel errors shared by the catalog layers.
package errors

import "errors"

// ErrProductNotFound is returned when no product resolves for a given identifier.
var ErrProductNotFound = errors.New("product does not exist")

// ErrCreateProduct is returned when the store reports success but yields no usable record.
var ErrCreateProduct = errors.New("unable to create product")
