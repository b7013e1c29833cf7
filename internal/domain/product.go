package domain

// Category is one step of a product category path.
type Category struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Product is a normalized product card extracted from one rich content item
// of an agent reply. It is constructed fresh per extraction, never mutated
// afterwards, and lives only for the duration of one response cycle.
type Product struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	ProductURL      string       `json:"product_url"`
	ImageURL        string       `json:"image_url"`
	Availability    bool         `json:"availability"`
	UnitOfMeasure   string       `json:"unit_of_measure"`
	Keywords        []string     `json:"keywords"`
	DeliveryOptions []string     `json:"delivery_options"`
	Categories      [][]Category `json:"categories"`
}
