package views

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := map[string]string{
		"0":         "$0.00",
		"25.5":      "$25.50",
		"999.999":   "$1,000.00",
		"1234567.1": "$1,234,567.10",
		"-42":       "-$42.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, Money(decimal.RequireFromString(in)), in)
	}
}

func TestTemplatesParse(t *testing.T) {
	tmpl := Templates()
	for _, name := range []string{"home.html", "category.html", "details.html", "cart.html", "login.html", "dashboard.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
