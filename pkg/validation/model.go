// Package validation provides business-model validation utilities. All
// findings are warnings: the engine itself degrades gracefully, so nothing
// here blocks a calculation.
package validation

import (
	"fmt"

	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/constants"
)

// ModelWarnings inspects a business model and projection settings for suspect
// but non-fatal conditions.
func ModelWarnings(m model.BusinessModel, settings model.ProjectionSettings) []string {
	var warnings []string

	known := make(map[string]struct{}, len(m.Products))
	for _, p := range m.Products {
		known[p.ID] = struct{}{}
		if p.SellingPricePerUnit == 0 && p.UnitsSoldPerMonth > 0 {
			warnings = append(warnings, fmt.Sprintf("Product '%s' sells %g units/month at zero price", p.Name, p.UnitsSoldPerMonth))
		}
	}

	checkUnitRef := func(kind, name, ref string) {
		if ref == "" || ref == model.AllProducts || ref == model.AllProductsCombined {
			return
		}
		if _, ok := known[ref]; !ok {
			warnings = append(warnings, fmt.Sprintf("%s '%s' references unknown product id '%s' - it will contribute nothing", kind, name, ref))
		}
	}

	for _, c := range m.SemiVariableCosts {
		checkUnitRef("Semi-variable cost", c.Name, c.UnitReference)
	}
	for _, c := range m.VariableCosts {
		checkUnitRef("Variable cost", c.Name, c.ProductReference)
	}
	for _, c := range m.Marketing.PerUnit {
		checkUnitRef("Marketing cost", c.Name, c.ProductReference)
	}
	for _, c := range m.Marketing.PercentRevenue {
		if c.RevenueReference != "" && c.RevenueReference != model.TotalRevenue {
			if _, ok := known[c.RevenueReference]; !ok {
				warnings = append(warnings, fmt.Sprintf("Marketing cost '%s' references unknown product id '%s' - it will contribute nothing", c.Name, c.RevenueReference))
			}
		}
		if c.PercentageOfRevenue > constants.PercentageMultiplier {
			warnings = append(warnings, fmt.Sprintf("Marketing cost '%s' takes %.1f%% of revenue", c.Name, c.PercentageOfRevenue))
		}
	}

	if settings.Months > constants.MaxInteractiveProjectionMonths {
		warnings = append(warnings, fmt.Sprintf("Projection horizon of %d months exceeds the interactive limit of %d", settings.Months, constants.MaxInteractiveProjectionMonths))
	}

	return warnings
}
