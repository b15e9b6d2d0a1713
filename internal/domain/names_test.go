package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"UNITED states":      "United States",
		"united kingdom":     "United Kingdom",
		"UNITED kingdom":     "United Kingdom",
		"  new   york  ":     "New York",
		"boeing":             "Boeing",
		"":                   "",
		"ÉCOTOURISME élan":   "Écotourisme Élan",
		"BOSNIA-herzegovina": "Bosnia-herzegovina",
		"guinea-BISSAU":      "Guinea-bissau",
		"CÔTE D'IVOIRE":      "Côte D'ivoire",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}

func TestCountry_Normalize(t *testing.T) {
	c := &Country{Name: "uKRaine"}
	assert.NoError(t, c.Normalize())
	assert.Equal(t, "Ukraine", c.Name)

	empty := &Country{Name: "   "}
	assert.ErrorIs(t, empty.Normalize(), ErrValidation)
}

func TestCity_NormalizeRequiresCountry(t *testing.T) {
	c := &City{Name: "kyiv"}
	err := c.Normalize()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Kyiv", c.Name)
}
