// Package sales computes discounted selling prices.
package sales

const (
	freeSaleDiscount = 100
	maxDiscount      = 30
)

// Request is the body of POST /sales/calculate.
type Request struct {
	BasePrice *float64 `json:"basePrice" validate:"required,gt=0" code:"BRE-C2-0001"`
	Discount  *float64 `json:"discount,omitempty" validate:"omitnil,gt=0" code:"BRE-C2-0002"`
}

// Result is the response of POST /sales/calculate. Discount is omitted when the
// request had none.
type Result struct {
	BasePrice    float64  `json:"basePrice"`
	Discount     *float64 `json:"discount,omitempty"`
	SellingPrice float64  `json:"sellingPrice"`
}

// RuleViolation reports input rejected by a pricing rule.
type RuleViolation struct {
	Code ErrorCode
}

func (e *RuleViolation) Error() string {
	return "pricing rule violated: " + e.Code.String()
}

// Calculate applies the discount to the base price. A discount of 100 or more
// is a free sale and is checked before the 30% limit. req must already be
// validated.
func Calculate(req Request) (Result, error) {
	base := *req.BasePrice
	result := Result{BasePrice: base, Discount: req.Discount, SellingPrice: base}

	if req.Discount == nil {
		return result, nil
	}

	discount := *req.Discount
	switch {
	case discount >= freeSaleDiscount:
		return Result{}, &RuleViolation{Code: FreeSaleNotAllowed}
	case discount > maxDiscount:
		return Result{}, &RuleViolation{Code: DiscountExceedsLimit}
	}

	result.SellingPrice = base * (100 - discount) / 100
	return result, nil
}
