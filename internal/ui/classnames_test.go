package ui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vangoframework/pellines/internal/ui"
)

func TestCN_MergesClassNames(t *testing.T) {
	assert.Equal(t, "class1 class2", ui.CN("class1", "class2"))
}

func TestCN_ConditionalClasses(t *testing.T) {
	assert.Equal(t, "class1 class2", ui.CN("class1", ui.If(true, "class2"), ui.If(false, "class3")))
}

func TestCN_Empty(t *testing.T) {
	assert.Equal(t, "", ui.CN())
}

func TestCN_FalsyTokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens []any
		want   string
	}{
		{"false", []any{"a", false, "b"}, "a b"},
		{"nil", []any{nil, "a", nil}, "a"},
		{"empty string", []any{"", "a", ""}, "a"},
		{"only falsy", []any{false, nil, ""}, ""},
		{"true alone", []any{true, "a"}, "a"},
		{"unsupported types", []any{42, "a", 3.5}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ui.CN(tt.tokens...))
		})
	}
}

func TestCN_NormalizesWhitespace(t *testing.T) {
	tests := []struct {
		name   string
		tokens []any
		want   string
	}{
		{"leading and trailing", []any{"  a  ", " b"}, "a b"},
		{"pre-joined", []any{"a  b", "c\td"}, "a b c d"},
		{"newlines", []any{"a\nb"}, "a b"},
		{"whitespace only", []any{"   "}, ""},
		{"slice", []any{[]string{"a", " b c "}, "d"}, "a b c d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ui.CN(tt.tokens...)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.Contains(got, "  "))
		})
	}
}

func TestCN_PreservesOrderAndDuplicates(t *testing.T) {
	assert.Equal(t, "p-4 m-2 p-4", ui.CN("p-4", "m-2", "p-4"))
	assert.Equal(t, "z y x", ui.CN("z", "y", "x"))
}

func TestCN_Idempotent(t *testing.T) {
	inputs := [][]any{
		{"class1", "class2"},
		{" a ", false, "b  c", nil},
		{},
	}

	for _, in := range inputs {
		once := ui.CN(in...)
		assert.Equal(t, once, ui.CN(once))
	}
}

func TestIf(t *testing.T) {
	assert.Equal(t, "active", ui.If(true, "active"))
	assert.Equal(t, "", ui.If(false, "active"))
}
