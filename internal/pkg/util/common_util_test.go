package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)

	// 东八区的凌晨还是 UTC 的前一天
	early := time.Date(2026, 3, 2, 6, 0, 0, 0, loc)
	assert.Equal(t, "2026-03-01", DayKeyUTC(early))

	noon := time.Date(2026, 3, 2, 12, 0, 0, 0, loc)
	assert.Equal(t, "2026-03-02", DayKeyUTC(noon))
}

func TestStrSliceToUInt64Slice(t *testing.T) {
	out, err := StrSliceToUInt64Slice([]string{"1", "42", "9999999999"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 42, 9999999999}, out)

	_, err = StrSliceToUInt64Slice([]string{"1", "abc"})
	assert.Error(t, err)
}

func TestValidUsernameFormat(t *testing.T) {
	assert.True(t, ValidUsernameFormat("alice_blog-1"))
	assert.False(t, ValidUsernameFormat("alice blog"))
	assert.False(t, ValidUsernameFormat("博客"))
	assert.False(t, ValidUsernameFormat(""))
}
