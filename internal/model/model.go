// Package model defines the business-model data structures consumed by the
// projection engine: products, cost lines, growth assumptions, and projection
// settings. The engine treats every value here as read-only.
package model

import (
	"github.com/google/uuid"

	"github.com/flexibudget/budget-forecast/pkg/constants"
	"github.com/flexibudget/budget-forecast/pkg/growth"
	"github.com/flexibudget/budget-forecast/pkg/mathutil"
)

// Reference sentinels for unit- and revenue-referenced cost lines.
const (
	// AllProducts selects the combined unit count of every product.
	AllProducts = "all_products"

	// AllProductsCombined is the semi-variable flavor of the same sentinel.
	AllProductsCombined = "all_products_combined"

	// TotalRevenue selects the grand revenue total across all products.
	TotalRevenue = "total_revenue"
)

// Amortization modes for setup costs.
const (
	AmortizeOverProjection = "spread_over_projection"
	AmortizeOver12Months   = "spread_over_12_months"
)

// COGSBreakdown holds the per-unit direct production cost components.
type COGSBreakdown struct {
	RawMaterialCost        float64 `json:"raw_material_cost" yaml:"rawMaterialCost"`
	LaborCostPerUnit       float64 `json:"labor_cost_per_unit" yaml:"laborCostPerUnit"`
	PackagingCostPerUnit   float64 `json:"packaging_cost_per_unit" yaml:"packagingCostPerUnit"`
	OtherDirectCostPerUnit float64 `json:"other_direct_cost_per_unit" yaml:"otherDirectCostPerUnit"`
}

// PerUnit returns the total direct cost per unit. It is nil-safe: products
// without a COGS breakdown contribute zero.
func (c *COGSBreakdown) PerUnit() float64 {
	if c == nil {
		return 0
	}
	return c.RawMaterialCost + c.LaborCostPerUnit + c.PackagingCostPerUnit + c.OtherDirectCostPerUnit
}

// Product is one revenue line in the business model.
type Product struct {
	ID                  string         `json:"id" yaml:"id"`
	Name                string         `json:"name" yaml:"name"`
	UnitLabel           string         `json:"unit_label" yaml:"unitLabel"`
	SellingPricePerUnit float64        `json:"selling_price_per_unit" yaml:"sellingPricePerUnit"`
	UnitsSoldPerMonth   float64        `json:"units_sold_per_month" yaml:"unitsSoldPerMonth"`
	COGSPerUnit         *COGSBreakdown `json:"cogs_per_unit,omitempty" yaml:"cogsPerUnit,omitempty"`
	VariableCosts       []VariableCost `json:"variable_costs,omitempty" yaml:"variableCosts,omitempty"`
}

// Revenue returns the product's monthly revenue at its current price and volume.
func (p Product) Revenue() float64 {
	return p.SellingPricePerUnit * p.UnitsSoldPerMonth
}

// SetupCost is a one-time investment amortized across the projection.
type SetupCost struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	TotalAmount float64 `json:"total_amount" yaml:"totalAmount"`
}

// FixedCost is an unconditional flat monthly expense.
type FixedCost struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	AmountPerMonth float64 `json:"amount_per_month" yaml:"amountPerMonth"`
}

// SemiVariableCost carries a flat monthly base plus a per-unit component
// multiplied against the referenced unit count.
type SemiVariableCost struct {
	ID                  string  `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	BaseAmountPerMonth  float64 `json:"base_amount_per_month" yaml:"baseAmountPerMonth"`
	VariableRatePerUnit float64 `json:"variable_rate_per_unit" yaml:"variableRatePerUnit"`
	UnitReference       string  `json:"unit_reference" yaml:"unitReference"`
}

// VariableCost scales purely with the referenced unit count.
type VariableCost struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	RatePerUnit      float64 `json:"rate_per_unit" yaml:"ratePerUnit"`
	ProductReference string  `json:"product_reference" yaml:"productReference"`
}

// MarketingFixedCost is a flat monthly marketing expense.
type MarketingFixedCost struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	AmountPerMonth float64 `json:"amount_per_month" yaml:"amountPerMonth"`
}

// MarketingPerUnitCost scales with the referenced unit count.
type MarketingPerUnitCost struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	RatePerUnit      float64 `json:"rate_per_unit" yaml:"ratePerUnit"`
	ProductReference string  `json:"product_reference" yaml:"productReference"`
}

// MarketingPercentRevenueCost takes a percentage of the referenced revenue.
type MarketingPercentRevenueCost struct {
	ID                  string  `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	PercentageOfRevenue float64 `json:"percentage_of_revenue" yaml:"percentageOfRevenue"`
	RevenueReference    string  `json:"revenue_reference" yaml:"revenueReference"`
}

// MarketingCosts groups the three marketing cost behaviors.
type MarketingCosts struct {
	Fixed          []MarketingFixedCost          `json:"fixed_marketing" yaml:"fixedMarketing" mapstructure:"fixedMarketing"`
	PerUnit        []MarketingPerUnitCost        `json:"variable_marketing_per_unit" yaml:"variableMarketingPerUnit" mapstructure:"variableMarketingPerUnit"`
	PercentRevenue []MarketingPercentRevenueCost `json:"variable_marketing_percent_revenue" yaml:"variableMarketingPercentRevenue" mapstructure:"variableMarketingPercentRevenue"`
}

// GrowthRates maps entity ids to their growth rules. Product attribute rules
// are keyed by product id; cost-line rules are keyed by cost-line id. A
// missing entry means the base value is held constant.
type GrowthRates struct {
	UnitsSold     map[string]*growth.Rule `json:"units_sold,omitempty" yaml:"unitsSold,omitempty"`
	SellingPrice  map[string]*growth.Rule `json:"selling_price,omitempty" yaml:"sellingPrice,omitempty"`
	FixedCosts    map[string]*growth.Rule `json:"fixed_costs,omitempty" yaml:"fixedCosts,omitempty"`
	VariableCosts map[string]*growth.Rule `json:"variable_costs,omitempty" yaml:"variableCosts,omitempty"`
}

// ProjectionSettings controls the projection horizon and amortization mode.
type ProjectionSettings struct {
	Months           int         `json:"months" yaml:"months"`
	AmortizationType string      `json:"amortization_type" yaml:"amortizationType"`
	GrowthRates      GrowthRates `json:"growth_rates,omitempty" yaml:"growthRates,omitempty"`
}

// AmortizationMonths resolves the effective amortization denominator: a fixed
// 12-month window or the full projection horizon.
func (s ProjectionSettings) AmortizationMonths() int {
	if s.AmortizationType == AmortizeOver12Months {
		return constants.AmortizationWindowMonths
	}
	return s.Months
}

// BusinessModel bundles the product list and every cost-line collection.
type BusinessModel struct {
	Products          []Product          `json:"products" yaml:"products"`
	SetupCosts        []SetupCost        `json:"setup_costs" yaml:"setupCosts"`
	FixedCosts        []FixedCost        `json:"fixed_costs" yaml:"fixedCosts"`
	SemiVariableCosts []SemiVariableCost `json:"semi_variable_costs" yaml:"semiVariableCosts"`
	VariableCosts     []VariableCost     `json:"variable_costs" yaml:"variableCosts"`
	Marketing         MarketingCosts     `json:"marketing_costs" yaml:"marketingCosts" mapstructure:"marketingCosts"`
}

// TotalSetupCost returns the un-amortized sum of all one-time investments.
func (m *BusinessModel) TotalSetupCost() float64 {
	total := 0.0
	for _, c := range m.SetupCosts {
		total += c.TotalAmount
	}
	return total
}

// ProductByID looks up a product by id. Returns nil when absent, which cost
// aggregation treats as a zero contribution rather than an error.
func (m *BusinessModel) ProductByID(id string) *Product {
	for i := range m.Products {
		if m.Products[i].ID == id {
			return &m.Products[i]
		}
	}
	return nil
}

// Sanitize coerces every monetary and volume field through
// mathutil.Sanitize so that NaN, infinite, and negative inputs all become
// zero before any arithmetic happens. The UI must never crash on partial
// input, so this is graceful degradation rather than validation.
func (m *BusinessModel) Sanitize() {
	for i := range m.Products {
		p := &m.Products[i]
		p.SellingPricePerUnit = mathutil.Sanitize(p.SellingPricePerUnit)
		p.UnitsSoldPerMonth = mathutil.Sanitize(p.UnitsSoldPerMonth)
		if p.COGSPerUnit != nil {
			p.COGSPerUnit.RawMaterialCost = mathutil.Sanitize(p.COGSPerUnit.RawMaterialCost)
			p.COGSPerUnit.LaborCostPerUnit = mathutil.Sanitize(p.COGSPerUnit.LaborCostPerUnit)
			p.COGSPerUnit.PackagingCostPerUnit = mathutil.Sanitize(p.COGSPerUnit.PackagingCostPerUnit)
			p.COGSPerUnit.OtherDirectCostPerUnit = mathutil.Sanitize(p.COGSPerUnit.OtherDirectCostPerUnit)
		}
		for j := range p.VariableCosts {
			p.VariableCosts[j].RatePerUnit = mathutil.Sanitize(p.VariableCosts[j].RatePerUnit)
		}
	}
	for i := range m.SetupCosts {
		m.SetupCosts[i].TotalAmount = mathutil.Sanitize(m.SetupCosts[i].TotalAmount)
	}
	for i := range m.FixedCosts {
		m.FixedCosts[i].AmountPerMonth = mathutil.Sanitize(m.FixedCosts[i].AmountPerMonth)
	}
	for i := range m.SemiVariableCosts {
		m.SemiVariableCosts[i].BaseAmountPerMonth = mathutil.Sanitize(m.SemiVariableCosts[i].BaseAmountPerMonth)
		m.SemiVariableCosts[i].VariableRatePerUnit = mathutil.Sanitize(m.SemiVariableCosts[i].VariableRatePerUnit)
	}
	for i := range m.VariableCosts {
		m.VariableCosts[i].RatePerUnit = mathutil.Sanitize(m.VariableCosts[i].RatePerUnit)
	}
	for i := range m.Marketing.Fixed {
		m.Marketing.Fixed[i].AmountPerMonth = mathutil.Sanitize(m.Marketing.Fixed[i].AmountPerMonth)
	}
	for i := range m.Marketing.PerUnit {
		m.Marketing.PerUnit[i].RatePerUnit = mathutil.Sanitize(m.Marketing.PerUnit[i].RatePerUnit)
	}
	for i := range m.Marketing.PercentRevenue {
		m.Marketing.PercentRevenue[i].PercentageOfRevenue = mathutil.Sanitize(m.Marketing.PercentRevenue[i].PercentageOfRevenue)
	}
}

// Sanitized returns a deep copy of the model with every numeric field
// coerced. The engine works on the copy so callers never observe their input
// being written to, even through shared slice backing arrays.
func (m BusinessModel) Sanitized() BusinessModel {
	out := BusinessModel{
		Products:          make([]Product, len(m.Products)),
		SetupCosts:        append([]SetupCost(nil), m.SetupCosts...),
		FixedCosts:        append([]FixedCost(nil), m.FixedCosts...),
		SemiVariableCosts: append([]SemiVariableCost(nil), m.SemiVariableCosts...),
		VariableCosts:     append([]VariableCost(nil), m.VariableCosts...),
		Marketing: MarketingCosts{
			Fixed:          append([]MarketingFixedCost(nil), m.Marketing.Fixed...),
			PerUnit:        append([]MarketingPerUnitCost(nil), m.Marketing.PerUnit...),
			PercentRevenue: append([]MarketingPercentRevenueCost(nil), m.Marketing.PercentRevenue...),
		},
	}
	for i, p := range m.Products {
		if p.COGSPerUnit != nil {
			cogs := *p.COGSPerUnit
			p.COGSPerUnit = &cogs
		}
		p.VariableCosts = append([]VariableCost(nil), p.VariableCosts...)
		out.Products[i] = p
	}
	out.Sanitize()
	return out
}

// NewID returns a fresh identifier for generated products and cost lines.
func NewID() string {
	return uuid.NewString()
}
