package crawler

import (
	"fmt"

	"catalogscraper/internal/model"
)

// Merge combines a list entry and its detail entry into one product record.
// Both inputs must carry the same ID. For every field present in both, the
// detail value wins; fields present only in the list pass through unchanged.
func Merge(list ListProduct, detail *ProductDetail) (model.Product, error) {
	if detail.ID != list.ID {
		return model.Product{}, fmt.Errorf("%w: list=%d detail=%d", ErrIdentifierMismatch, list.ID, detail.ID)
	}

	p := model.Product{
		ID:             list.ID,
		Title:          list.Title,
		Permalink:      list.Permalink,
		Available:      list.Available,
		AvailableUnits: list.AvailableUnits,
		LineOfProduct:  list.LineOfProduct,
		Pricing:        list.Pricing,
		Vertical:       list.Vertical,
		Thumbnail:      list.Thumbnail,
		Heroes:         list.Heroes,
	}

	if detail.Title != "" {
		p.Title = detail.Title
	}
	if detail.Permalink != "" {
		p.Permalink = detail.Permalink
	}
	if detail.Available != nil {
		p.Available = *detail.Available
	}
	if detail.AvailableUnits != nil {
		p.AvailableUnits = *detail.AvailableUnits
	}
	if detail.LineOfProduct != "" {
		p.LineOfProduct = detail.LineOfProduct
	}
	if detail.Pricing != nil {
		p.Pricing = detail.Pricing
	}
	if detail.Vertical != "" {
		p.Vertical = detail.Vertical
	}
	if detail.Thumbnail != nil {
		p.Thumbnail = detail.Thumbnail
	}
	if len(detail.Heroes) > 0 {
		p.Heroes = detail.Heroes
	}

	p.Description = stripHTML(detail.Description)
	p.Specifications = detail.Specifications
	p.Features = detail.Features
	p.Dimensions = detail.Dimensions
	p.AdditionalInfo = detail.AdditionalInfo

	if err := p.Validate(); err != nil {
		return model.Product{}, err
	}
	return p, nil
}
