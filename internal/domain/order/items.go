package order

import (
	"strconv"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// ParseItems parses a JSON-encoded items payload into line items.
//
// The payload must be an array of objects, each carrying a non-empty "name"
// and a non-negative numeric "price". Any malformed input fails with
// ErrItemsFormat; callers never see which part of the payload was bad.
func ParseItems(raw string) ([]LineItem, error) {
	d := jx.DecodeStr(raw)
	if d.Next() != jx.Array {
		return nil, ErrItemsFormat
	}

	items := []LineItem{}
	err := d.Arr(func(d *jx.Decoder) error {
		if d.Next() != jx.Object {
			return ErrItemsFormat
		}

		var (
			item              LineItem
			hasName, hasPrice bool
		)
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "name":
				if d.Next() != jx.String {
					return ErrItemsFormat
				}
				name, err := d.Str()
				if err != nil {
					return ErrItemsFormat
				}
				item.Name = name
				hasName = true
			case "price":
				if d.Next() != jx.Number {
					return ErrItemsFormat
				}
				num, err := d.Num()
				if err != nil {
					return ErrItemsFormat
				}
				price, err := decimal.NewFromString(num.String())
				if err != nil {
					return ErrItemsFormat
				}
				item.Price = price
				hasPrice = true
			default:
				return d.Skip()
			}
			return nil
		}); err != nil {
			return ErrItemsFormat
		}

		if !hasName || !hasPrice || item.Name == "" || item.Price.IsNegative() {
			return ErrItemsFormat
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, ErrItemsFormat
	}

	return items, nil
}

// ParseTableNumber parses a textual table number, requiring a positive
// integer. Both the create and search paths share this rule.
func ParseTableNumber(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrTableNumber
	}
	return n, nil
}
