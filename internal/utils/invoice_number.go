package utils

import (
	"fmt"
	"time"
)

// SequentialInvoiceNumber formats the nth invoice number, zero padded to six
// digits ("INV-000042").
func SequentialInvoiceNumber(n int64) string {
	return fmt.Sprintf("INV-%06d", n)
}

// FallbackInvoiceNumber builds a timestamp based number for when the
// sequential allocator keeps colliding under concurrent generation.
func FallbackInvoiceNumber(t time.Time) string {
	return fmt.Sprintf("INV-%d", t.UnixMilli())
}
