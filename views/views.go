package views

import (
	"embed"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var files embed.FS

// Templates 解析所有頁面模板
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(FuncMap()).ParseFS(files, "templates/*.html"))
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money":      Money,
		"flashClass": flashClass,
	}
}

// Money 金額格式，例如 $1,234.50
func Money(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	fixed := amount.StringFixed(2)
	whole, fraction, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + fraction
}

func flashClass(kind string) string {
	switch kind {
	case "success":
		return "green darken-1 rounded"
	case "warning":
		return "orange darken-1 rounded"
	default:
		return "red darken-1 rounded"
	}
}
