package domain_test

import (
	"testing"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    domain.InvoiceStatus
		to      domain.InvoiceStatus
		allowed bool
	}{
		{domain.InvoiceDraft, domain.InvoiceSent, true},
		{domain.InvoiceSent, domain.InvoicePaid, true},
		{domain.InvoiceDraft, domain.InvoicePaid, false},
		{domain.InvoiceSent, domain.InvoiceDraft, false},
		{domain.InvoicePaid, domain.InvoiceSent, false},
		{domain.InvoicePaid, domain.InvoiceDraft, false},
		{domain.InvoiceDraft, domain.InvoiceDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidInvoiceStatus(t *testing.T) {
	assert.True(t, domain.ValidInvoiceStatus(domain.InvoiceDraft))
	assert.True(t, domain.ValidInvoiceStatus(domain.InvoiceSent))
	assert.True(t, domain.ValidInvoiceStatus(domain.InvoicePaid))
	assert.False(t, domain.ValidInvoiceStatus("cancelled"))
	assert.False(t, domain.ValidInvoiceStatus(""))
}
