// Package repository persists confirmed orders in MySQL.  The archive
// is the durable copy of receipts behind the purchase-history surface;
// the working checkout state never touches it.
package repository

import "errors"

// ErrOrderNotFound is returned when no archived order exists under the
// requested order number.  Handlers should translate this into an
// HTTP 404 response.
var ErrOrderNotFound = errors.New("order not found")
