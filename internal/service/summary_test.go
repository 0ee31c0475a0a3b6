package service_test

import (
	"testing"

	"steam-analysis/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestFormatSummary(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "two bullets with newlines", input: "* a\n* b\n", expected: []string{"a", "b"}},
		{name: "empty text", input: "", expected: []string{}},
		{name: "text without markers is a single item", input: "no markers", expected: []string{"no markers"}},
		{name: "whitespace only", input: "   \n\t ", expected: []string{}},
		{name: "only markers", input: "* * * ", expected: []string{}},
		{name: "leading text before first marker", input: "Intro line\n* first\n* second", expected: []string{"Intro line", "first", "second"}},
		{name: "items are trimmed", input: "*   padded item   \n*  second\t", expected: []string{"padded item", "second"}},
		{name: "asterisk without space does not split", input: "* 5*3=15\n* next", expected: []string{"5*3=15", "next"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, service.FormatSummary(tc.input))
		})
	}
}

func TestFormatSummary_IsRestartable(t *testing.T) {
	input := "* Difficult controls\n* Short campaign\n"
	first := service.FormatSummary(input)
	second := service.FormatSummary(input)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Difficult controls", "Short campaign"}, first)
}
