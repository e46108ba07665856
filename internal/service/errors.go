// Package service implements the domain operations on products and
// sales on top of the generic store.
package service

import "errors"

var (
	// ErrProductNotFound signals a sale against a product id with no row.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuantity rejects sales with a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInsufficientInventory rejects sales larger than current stock.
	ErrInsufficientInventory = errors.New("sufficient product is not available")
)
