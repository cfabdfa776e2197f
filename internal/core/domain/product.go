package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product is the catalog aggregate. The ID is a UUID string and doubles as
// the primary key in the store.
type Product struct {
	ID       string  `json:"id" bson:"_id"`
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category" bson:"category"`
	Price    float64 `json:"price" bson:"price"`
}
