package classifier

import "strings"

// keywords is a set of lower-case terms matched as substrings of the evaluation text.
// Spanish and English terms are mixed because intake forms receive both.
type keywords []string

func (k keywords) matches(text string) bool {
	for _, kw := range k {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var urgentKeywords = keywords{
	"urgente",
	"caido",
	"caida",
	"error",
	"falla",
	"no funciona",
	"critical",
	"urgent",
	"down",
	"not working",
}

var (
	billingKeywords   = keywords{"factura", "pago", "cobro", "invoice", "billing"}
	technicalKeywords = keywords{"api", "bug", "backend", "frontend", "integracion"}
	salesKeywords     = keywords{"precio", "cotizacion", "demo", "plan", "compra"}
)

// categoryRules is evaluated in order; the first matching set decides the category.
var categoryRules = []struct {
	keywords keywords
	category Category
}{
	{billingKeywords, CategoryBilling},
	{technicalKeywords, CategoryTechnical},
	{salesKeywords, CategorySales},
}
