package model

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is returned when a merged product is missing a required field.
var ErrValidation = errors.New("product failed validation")

var validate = validator.New(validator.WithRequiredStructEnabled())

// PricingValue is a single price figure as the catalog API renders it.
type PricingValue struct {
	DisplayValue string  `json:"displayValue"`
	Value        float64 `json:"value"`
}

// Pricing groups the rental price figures shown for a product.
type Pricing struct {
	Discount           PricingValue `json:"discount"`
	DiscountPercentage PricingValue `json:"discountPercentage"`
	MonthlyRental      PricingValue `json:"monthlyRental"`
	StrikePrice        PricingValue `json:"strikePrice"`
}

// Image is a catalog image with its aspect ratio.
type Image struct {
	AspectRatio float64 `json:"aspectRatio"`
	URL         string  `json:"url"`
}

// Product is the merged record persisted to the daily file: the union of a
// list-view entry and its detail-view entry, keyed by ID.
type Product struct {
	ID             int               `json:"id" validate:"required,gt=0"`
	Title          string            `json:"title" validate:"required"`
	Permalink      string            `json:"permalink" validate:"required"`
	Available      bool              `json:"available"`
	AvailableUnits int               `json:"availableUnits"`
	LineOfProduct  string            `json:"lineOfProduct" validate:"required"`
	Pricing        *Pricing          `json:"pricing,omitempty"`
	Vertical       string            `json:"vertical,omitempty"`
	Thumbnail      *Image            `json:"thumbnail,omitempty"`
	Heroes         []Image           `json:"heroes,omitempty"`
	Description    string            `json:"description,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Features       []string          `json:"features,omitempty"`
	Dimensions     map[string]any    `json:"dimensions,omitempty"`
	AdditionalInfo map[string]any    `json:"additionalInfo,omitempty"`
}

// Key returns the identifier used to key the product in the daily file.
func (p *Product) Key() string {
	return strconv.Itoa(p.ID)
}

// Validate checks the required fields of a merged product.
func (p *Product) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
