package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bitbucket.org/talentforge/recruit_backend/utils"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local mobile", "09171234567", "+639171234567"},
		{"already e164", "+639171234567", "+639171234567"},
		{"with separators", "0917-123-4567", "+639171234567"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"garbage", "call me maybe", ""},
		{"too short", "12345", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.NormalizePhone(tt.input))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, utils.IsValidEmail("ana@example.com"))
	assert.True(t, utils.IsValidEmail("a.b+tag@sub.example.co"))
	assert.False(t, utils.IsValidEmail("not-an-email"))
	assert.False(t, utils.IsValidEmail("@example.com"))
	assert.False(t, utils.IsValidEmail("ana@"))
}

func TestSlugFromLegacyID(t *testing.T) {
	assert.Equal(t, "job-42", utils.SlugFromLegacyID("job", 42))
	assert.Equal(t, "agency-7", utils.SlugFromLegacyID("agency", 7))
	assert.Equal(t, "company-0", utils.SlugFromLegacyID("company", 0))
}

func TestUniqueSlice(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, utils.UniqueSlice([]string{"go", "sql", "go"}))
	assert.Equal(t, []int{1, 2, 3}, utils.UniqueSlice([]int{1, 2, 2, 3, 1}))
	assert.Empty(t, utils.UniqueSlice([]string{}))
}
