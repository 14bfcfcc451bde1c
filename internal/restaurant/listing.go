package restaurant

import "github.com/example/tablefinder/internal/validate"

// Cuisines accepted by the backend.
var Cuisines = []string{
	"italian", "chinese", "indian", "japanese", "mexican",
	"french", "american", "thai", "mediterranean", "other",
}

// Listing is a manager's new restaurant.
type Listing struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	ZipCode      string `json:"zip_code" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required,phone"`
	Email        string `json:"email" validate:"required,email"`
	CuisineType  string `json:"cuisine_type" validate:"required,oneof=italian chinese indian japanese mexican french american thai mediterranean other"`
	CostRating   int    `json:"cost_rating" validate:"min=1,max=5"`
}

func (l Listing) Validate() error { return validate.Struct(l) }

// ListingUpdate carries only the fields a manager changed.
type ListingUpdate struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description  *string `json:"description,omitempty"`
	AddressLine1 *string `json:"address_line1,omitempty" validate:"omitempty,min=1"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         *string `json:"city,omitempty" validate:"omitempty,min=1"`
	State        *string `json:"state,omitempty" validate:"omitempty,min=1"`
	ZipCode      *string `json:"zip_code,omitempty" validate:"omitempty,min=1"`
	PhoneNumber  *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	CuisineType  *string `json:"cuisine_type,omitempty" validate:"omitempty,oneof=italian chinese indian japanese mexican french american thai mediterranean other"`
	CostRating   *int    `json:"cost_rating,omitempty" validate:"omitempty,min=1,max=5"`
}

func (u ListingUpdate) Validate() error { return validate.Struct(u) }

func (u ListingUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.AddressLine1 == nil && u.AddressLine2 == nil &&
		u.City == nil && u.State == nil && u.ZipCode == nil && u.PhoneNumber == nil &&
		u.Email == nil && u.CuisineType == nil && u.CostRating == nil
}
