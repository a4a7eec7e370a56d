package model

// BusinessType describes one of the supported business archetypes. The
// catalog seeds the assistant prompt and decides whether COGS applies at all
// for generated products.
type BusinessType struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Category string `json:"category" yaml:"category"`
	HasCOGS  *bool  `json:"has_cogs" yaml:"hasCogs"`
	HasBOM   *bool  `json:"has_bom" yaml:"hasBom"`
	Notes    string `json:"notes" yaml:"notes"`
}

func boolPtr(v bool) *bool { return &v }

var businessTypes = []BusinessType{
	{
		ID:       "shoe_business",
		Label:    "Shoe Business",
		Category: "Manufacturing & Retail",
		HasCOGS:  boolPtr(true),
		HasBOM:   boolPtr(false),
		Notes:    "Covers shoe manufacturing, wholesale or retail. COGS includes raw materials per unit.",
	},
	{
		ID:       "restaurant",
		Label:    "Restaurant",
		Category: "Food & Beverage",
		HasCOGS:  boolPtr(true),
		HasBOM:   boolPtr(false),
		Notes:    "Menu-based pricing with multiple products. COGS = food/ingredient cost per dish.",
	},
	{
		ID:       "saas",
		Label:    "SaaS (Software as a Service)",
		Category: "Technology",
		HasCOGS:  boolPtr(false),
		HasBOM:   boolPtr(false),
		Notes:    "Subscription-based revenue. Costs are mostly fixed (dev, hosting, support).",
	},
	{
		ID:       "software_development",
		Label:    "Software Development Agency",
		Category: "Technology",
		HasCOGS:  boolPtr(false),
		HasBOM:   boolPtr(false),
		Notes:    "Project-based revenue. Costs include developer salaries, tools, licenses.",
	},
	{
		ID:       "manufacturing",
		Label:    "Manufacturing",
		Category: "Manufacturing",
		HasCOGS:  boolPtr(true),
		HasBOM:   boolPtr(true),
		Notes:    "Raw materials converted to finished goods. Requires COGS with optional BOM logic.",
	},
	{
		ID:       "retail",
		Label:    "Retail Store",
		Category: "Retail",
		HasCOGS:  boolPtr(true),
		HasBOM:   boolPtr(false),
		Notes:    "Buy goods and resell. COGS = purchase cost per unit.",
	},
	{
		ID:       "facebook_business",
		Label:    "Facebook / Social Commerce Business",
		Category: "E-commerce",
		HasCOGS:  boolPtr(true),
		HasBOM:   boolPtr(false),
		Notes:    "Sell via Facebook page or group. Key costs include ad spend, delivery, packaging.",
	},
	{
		ID:       "fashion_apparel",
		Label:    "Fashion & Apparel",
		Category: "Manufacturing & Retail",
		HasCOGS:  boolPtr(true),
		HasBOM:   boolPtr(false),
		Notes:    "Clothing business with production or sourcing. May have multiple product lines.",
	},
	{
		ID:       "jewellery",
		Label:    "Jewellery Business",
		Category: "Manufacturing & Retail",
		HasCOGS:  boolPtr(true),
		HasBOM:   boolPtr(false),
		Notes:    "High COGS (gold, silver, stones). Multiple SKUs at different price points.",
	},
	{
		ID:       "trading_import",
		Label:    "Import & Trading Business",
		Category: "Trading",
		HasCOGS:  boolPtr(true),
		HasBOM:   boolPtr(false),
		Notes:    "Import goods and sell locally. COGS includes product cost + customs + shipping.",
	},
	{
		ID:       "custom",
		Label:    "Custom / Other Business",
		Category: "Custom",
		Notes:    "User defines everything from scratch. The assistant will ask clarifying questions.",
	},
}

// BusinessTypes returns the full archetype catalog.
func BusinessTypes() []BusinessType {
	out := make([]BusinessType, len(businessTypes))
	copy(out, businessTypes)
	return out
}

// BusinessTypeByID looks up an archetype by id. Returns nil when unknown.
func BusinessTypeByID(id string) *BusinessType {
	for i := range businessTypes {
		if businessTypes[i].ID == id {
			bt := businessTypes[i]
			return &bt
		}
	}
	return nil
}
