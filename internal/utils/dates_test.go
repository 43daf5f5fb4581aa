package utils_test

import (
	"testing"
	"time"

	"github.com/clienthub/crm_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_AcceptsRFC3339(t *testing.T) {
	got, err := utils.ParseDate("2026-08-31T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC), got)
}

func TestParseDate_AcceptsBareDay(t *testing.T) {
	got, err := utils.ParseDate("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_RejectsGarbage(t *testing.T) {
	_, err := utils.ParseDate("next tuesday")
	assert.Error(t, err)

	_, err = utils.ParseDate("31/08/2026")
	assert.Error(t, err)
}
