package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Price is a decimal coin price. It travels as a string in both JSON and
// BSON so sub-satoshi prices keep every digit.
type Price struct {
	decimal.Decimal
}

// MustPrice parses s and panics on malformed input. Seed data only.
func MustPrice(s string) Price {
	return Price{decimal.RequireFromString(s)}
}

func (p Price) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(p.String())
}

func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var s string
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&s); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	p.Decimal = d
	return nil
}
