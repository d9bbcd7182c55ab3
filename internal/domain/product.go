package domain

// StockPool identifies one of the two independent inventory counters a
// product carries. Sale and rental stock never mix.
type StockPool string

const (
	StockPoolSale StockPool = "SALE"
	StockPoolRent StockPool = "RENT"
)

type AssetCondition string

const (
	AssetConditionExcellent  AssetCondition = "EXCELLENT"
	AssetConditionGood       AssetCondition = "GOOD"
	AssetConditionAcceptable AssetCondition = "ACCEPTABLE"
	AssetConditionDamaged    AssetCondition = "DAMAGED/NEEDS_REPAIR"
)

// ValidAssetCondition reports whether c is one of the recognized
// return-condition values.
func ValidAssetCondition(c AssetCondition) bool {
	switch c {
	case AssetConditionExcellent, AssetConditionGood, AssetConditionAcceptable, AssetConditionDamaged:
		return true
	}
	return false
}

// Product is a catalog entity referenced, not owned, by the order engine.
// RentPriceCents is a daily rate. Both stock counters must stay >= 0.
type Product struct {
	ID             int64  `json:"id"`
	NameEn         string `json:"name_en"`
	NameAr         string `json:"name_ar"`
	SellPriceCents int64  `json:"sell_price_cents"`
	RentPriceCents int64  `json:"rent_price_cents"`
	CostCents      int64  `json:"cost_cents"`
	SaleStock      int32  `json:"sale_stock"`
	RentStock      int32  `json:"rent_stock"`
}
