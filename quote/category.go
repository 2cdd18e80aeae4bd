package quote

import "fmt"

// Category classifies a line item for grouping on the printed quote. The set
// is closed: anything outside it is rejected when the quote is built, not
// silently mis-grouped at render time.
type Category string

const (
	CategoryDemo        Category = "Demo"
	CategoryFraming     Category = "Framing"
	CategoryElectrical  Category = "Electrical"
	CategoryPlumbing    Category = "Plumbing"
	CategoryHVAC        Category = "HVAC"
	CategoryDrywall     Category = "Drywall"
	CategoryPainting    Category = "Painting"
	CategoryFlooring    Category = "Flooring"
	CategoryTile        Category = "Tile"
	CategoryShowers     Category = "Showers"
	CategoryCabinets    Category = "Cabinets"
	CategoryCountertops Category = "Countertops"
	CategoryFixtures    Category = "Fixtures"
	CategoryTrimFinish  Category = "Trim/Finish"
	CategoryCleanup     Category = "Cleanup"
	CategoryMaterials   Category = "Materials"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category in the order the trade shows them.
var Categories = []Category{
	CategoryDemo,
	CategoryFraming,
	CategoryElectrical,
	CategoryPlumbing,
	CategoryHVAC,
	CategoryDrywall,
	CategoryPainting,
	CategoryFlooring,
	CategoryTile,
	CategoryShowers,
	CategoryCabinets,
	CategoryCountertops,
	CategoryFixtures,
	CategoryTrimFinish,
	CategoryCleanup,
	CategoryMaterials,
	CategoryOther,
}

// ParseCategory returns the Category matching s, or an error for anything
// outside the closed set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
