package utils_test

import (
	"testing"
	"time"

	"github.com/clienthub/crm_backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestSequentialInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-000001", utils.SequentialInvoiceNumber(1))
	assert.Equal(t, "INV-000042", utils.SequentialInvoiceNumber(42))
	assert.Equal(t, "INV-1000000", utils.SequentialInvoiceNumber(1000000))
}

func TestFallbackInvoiceNumber(t *testing.T) {
	at := time.UnixMilli(1756600000000)
	assert.Equal(t, "INV-1756600000000", utils.FallbackInvoiceNumber(at))
}
