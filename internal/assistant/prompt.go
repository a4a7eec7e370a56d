package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flexibudget/budget-forecast/internal/model"
)

// basePrompt frames the assistant as a financial analyst and pins the JSON
// schema for environment generation.
const basePrompt = `You are a financial analyst specializing in budget modeling for small businesses.

You help founders build a profit-and-loss model: products with pricing and unit
economics, one-time setup costs, fixed monthly costs, semi-variable costs
(base + per-unit), per-unit variable costs, and marketing costs split between
fixed, per-unit, and percent-of-revenue.

Guidelines:
- Provide realistic, data-driven defaults based on the business scale.
- COGS is typically 40-70% of selling price where the business type has COGS.
- Include growth rate assumptions (5-15% monthly is typical for startups).
- Ask clarifying questions when information is insufficient; state assumptions.
- All monetary values are plain numbers in a single currency.

When asked to generate an environment, return ONLY valid JSON matching this schema:
{
  "products": [{"id": "", "name": "", "unit_label": "", "selling_price_per_unit": 0,
    "units_sold_per_month": 0, "cogs_per_unit": {"raw_material_cost": 0,
    "labor_cost_per_unit": 0, "packaging_cost_per_unit": 0, "other_direct_cost_per_unit": 0}}],
  "setup_costs": [{"id": "", "name": "", "total_amount": 0}],
  "fixed_costs": [{"id": "", "name": "", "amount_per_month": 0}],
  "semi_variable_costs": [{"id": "", "name": "", "base_amount_per_month": 0,
    "variable_rate_per_unit": 0, "unit_reference": "all_products_combined"}],
  "variable_costs": [{"id": "", "name": "", "rate_per_unit": 0, "product_reference": "all_products"}],
  "marketing_costs": {
    "fixed_marketing": [{"id": "", "name": "", "amount_per_month": 0}],
    "variable_marketing_per_unit": [{"id": "", "name": "", "rate_per_unit": 0, "product_reference": "all_products"}],
    "variable_marketing_percent_revenue": [{"id": "", "name": "", "percentage_of_revenue": 0, "revenue_reference": "total_revenue"}]
  },
  "projection_defaults": {"months": 12, "amortization_type": "spread_over_projection"},
  "insights": ["key driver or risk"]
}`

// systemPrompt appends the business-type context to the base prompt.
func systemPrompt(businessType *model.BusinessType) string {
	if businessType == nil {
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	fmt.Fprintf(&b, "\n\nBusiness type: %s (%s). %s", businessType.Label, businessType.Category, businessType.Notes)
	if businessType.HasCOGS != nil && !*businessType.HasCOGS {
		b.WriteString("\nThis business type has no per-unit COGS; omit cogs_per_unit from products.")
	}
	return b.String()
}

// generationPrompt builds the environment-generation request from the user's
// onboarding answers. Answers are sorted by question for deterministic
// prompts.
func generationPrompt(businessType *model.BusinessType, answers map[string]string) string {
	var b strings.Builder
	b.WriteString("Generate a complete budget environment for the business described below.\n")
	if businessType != nil {
		fmt.Fprintf(&b, "Business type: %s\n", businessType.Label)
	}

	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	b.WriteString("User responses:\n")
	for _, q := range questions {
		fmt.Fprintf(&b, "- %s: %s\n", q, answers[q])
	}

	b.WriteString("\nInclude 1-3 products with proper pricing. Return ONLY valid JSON, no markdown fences.")
	return b.String()
}
