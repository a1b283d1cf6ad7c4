package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Sugar ", "sugar"},
		{"Crème Fraîche", "creme fraiche"},
		{"E-621", "e-621"},
		{"mono\u2013and\u2014diglycerides", "mono-and-diglycerides"},
		{"Salt (iodized)!", "salt iodized"},
		{"Vitamin B12 + C", "vitamin b12 + c"},
		{"PALM\tOIL", "palm oil"},
		{"***", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeToken(tt.in))
		})
	}
}

func TestTitleize(t *testing.T) {
	assert.Equal(t, "Sugar", titleize("sugar"))
	assert.Equal(t, "Palm Oil", titleize("palm  oil"))
	assert.Equal(t, "MSG", titleize("MSG"))
	assert.Equal(t, "", titleize("   "))
}

func defaultRuleset(t *testing.T) *ruleset {
	t.Helper()
	r, err := DefaultRules()
	require.NoError(t, err)
	return compileRules(r)
}

func TestTokenize(t *testing.T) {
	rs := defaultRuleset(t)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"commas", "Sugar, Salt", []string{"Sugar", "Salt"}},
		{"lines and semicolons", "Water; Sugar\r\nSalt", []string{"Water", "Sugar", "Salt"}},
		{"bullets", "Sugar \u2022 Salt", []string{"Sugar", "Salt"}},
		{"parentheses dropped", "Flour (wheat, barley), Salt", []string{"Flour", "Salt"}},
		{"brackets dropped", "Cocoa [min 70%], Sugar", []string{"Cocoa", "Sugar"}},
		{"stopword splits", "Sugar and salt", []string{"Sugar", "salt"}},
		{"longest stopword first", "Vanilla made with love", []string{"Vanilla", "love"}},
		{"exempt phrase kept", "Mono- and diglycerides", []string{"mono-and-diglycerides"}},
		{"stopword inside word kept", "Pepper, Brandy", []string{"Pepper", "Brandy"}},
		{"empty", "", nil},
		{"only separators", " ,;\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.tokenize(tt.in))
		})
	}
}

func TestNormalizeItems(t *testing.T) {
	rs := defaultRuleset(t)

	items := rs.normalize("Ingredients: Sugar, salt, SALT, and, Crème")

	var canonical, display []string
	for _, it := range items {
		canonical = append(canonical, it.canonical)
		display = append(display, it.display)
	}
	assert.Equal(t, []string{"sugar", "salt", "creme"}, canonical)
	assert.Equal(t, []string{"Sugar", "Salt", "Creme"}, display)
}
