package model

import "time"

// Product represents a row in the `products` table. Every product belongs
// to a company and is classified by its dominant material type, which
// drives the per-material recycling statistics.
type Product struct {
	ID                    uint64    `json:"id"`                               // products.id
	CompanyID             uint64    `json:"company_id"`                       // products.company_id
	Name                  string    `json:"name"`                             // products.name
	Brand                 string    `json:"brand,omitempty"`                  // products.brand
	Description           string    `json:"description,omitempty"`            // products.description
	MaterialType          string    `json:"material_type"`                    // products.material_type
	WeightGrams           float64   `json:"weight_grams,omitempty"`           // products.weight
	Recyclable            bool      `json:"recyclable"`                       // products.recyclable
	RecyclingInstructions string    `json:"recycling_instructions,omitempty"` // products.recycling_instructions
	ImageURL              string    `json:"image_url,omitempty"`              // products.image_url
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ProductCode is a printable per-unit code attached to a product. Code holds
// a UUID rendered on the packaging; scans reference the code, not the
// product, so a unit's history stays traceable.
type ProductCode struct {
	ID          uint64    `json:"id"`                     // product_codes.id
	ProductID   uint64    `json:"product_id"`             // product_codes.product_id
	Code        string    `json:"code"`                   // product_codes.uuid_code
	BatchNumber string    `json:"batch_number,omitempty"` // product_codes.batch_number
	IsActive    bool      `json:"is_active"`              // product_codes.is_active
	GeneratedAt time.Time `json:"generated_at"`           // product_codes.generated_at
}
