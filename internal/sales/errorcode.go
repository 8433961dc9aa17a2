package sales

import _ "embed"

// ErrorCode identifies a business or validation rule. Every code has an entry
// in the embedded message bundle.
type ErrorCode string

const (
	FreeSaleNotAllowed   ErrorCode = "BRE-C1-0001"
	DiscountExceedsLimit ErrorCode = "BRE-C1-0002"
	InvalidBasePrice     ErrorCode = "BRE-C2-0001"
	InvalidDiscount      ErrorCode = "BRE-C2-0002"
)

// ErrorCodes lists every code in declaration order.
var ErrorCodes = []ErrorCode{
	FreeSaleNotAllowed,
	DiscountExceedsLimit,
	InvalidBasePrice,
	InvalidDiscount,
}

func (c ErrorCode) String() string {
	return string(c)
}

// Messages is the YAML bundle with the text of every ErrorCode.
//
//go:embed messages.yaml
var Messages []byte
