package catalog

import (
	"fmt"
	"strings"
)

// ProductsText renders a ranked product list as the descriptive block
// embedded into the academy chat system prompt.
func ProductsText(products []Product, detailed bool) string {
	if len(products) == 0 {
		return "محصول مرتبطی یافت نشد."
	}

	var sb strings.Builder
	sb.WriteString("## محصولات پیشنهادی نور توس:\n\n")

	for i, p := range products {
		name := p.Name
		if name == "" {
			name = "نامشخص"
		}
		warranty := p.Warranty
		if warranty == 0 {
			warranty = 18
		}

		sb.WriteString(fmt.Sprintf("%d. **%s** - %s\n", i+1, name, p.Model))
		sb.WriteString(fmt.Sprintf("   - توان: %dVA / %dW\n", p.PowerVA, p.PowerWatt))
		sb.WriteString(fmt.Sprintf("   - قیمت: %.0f میلیون تومان\n", float64(p.Price)/1000000))
		sb.WriteString(fmt.Sprintf("   - گارانتی: %d ماه\n", warranty))

		if detailed && len(p.Specs) > 0 {
			sb.WriteString("   - ویژگی‌ها:\n")
			specs := p.Specs
			if len(specs) > 2 {
				specs = specs[:2]
			}
			for _, spec := range specs {
				sb.WriteString(fmt.Sprintf("     • %s\n", spec))
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
