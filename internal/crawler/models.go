package crawler

import "catalogscraper/internal/model"

// ListProduct is the abbreviated product record returned by a catalog list page.
type ListProduct struct {
	ID             int            `json:"id"`
	Title          string         `json:"title"`
	Permalink      string         `json:"permalink"`
	Available      bool           `json:"available"`
	AvailableUnits int            `json:"availableUnits"`
	LineOfProduct  string         `json:"lineOfProduct"`
	Pricing        *model.Pricing `json:"pricing"`
	Vertical       string         `json:"vertical"`
	Thumbnail      *model.Image   `json:"thumbnail"`
	Heroes         []model.Image  `json:"heroes"`
}

// ProductDetail is the full product record returned by a single product page.
// Fields shared with ListProduct are pointers where a zero value is meaningful,
// so the merger can tell "absent" from "false"/"0".
type ProductDetail struct {
	ID             int               `json:"id"`
	Title          string            `json:"title"`
	Permalink      string            `json:"permalink"`
	Available      *bool             `json:"available"`
	AvailableUnits *int              `json:"availableUnits"`
	LineOfProduct  string            `json:"lineOfProduct"`
	Pricing        *model.Pricing    `json:"pricing"`
	Vertical       string            `json:"vertical"`
	Thumbnail      *model.Image      `json:"thumbnail"`
	Heroes         []model.Image     `json:"heroes"`
	Description    string            `json:"description"`
	Specifications map[string]string `json:"specifications"`
	Features       []string          `json:"features"`
	Dimensions     map[string]any    `json:"dimensions"`
	AdditionalInfo map[string]any    `json:"additionalInfo"`
}

type listResponse struct {
	Data struct {
		Products []ListProduct `json:"products"`
	} `json:"data"`
}

type detailResponse struct {
	Data ProductDetail `json:"data"`
}
