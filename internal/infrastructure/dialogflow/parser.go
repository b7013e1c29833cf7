package dialogflow

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/storechat/backend/internal/domain"
)

const (
	// responseTypeHandlerPrompt marks agent reply messages produced by a
	// fulfillment handler; only these carry text or rich content we render.
	responseTypeHandlerPrompt = "HANDLER_PROMPT"

	// itemTypeInfo is the rich content item discriminator for product cards.
	// Other item types (chips, images) are intentionally skipped.
	itemTypeInfo = "info"

	// FallbackText is returned when a reply carries no usable text line.
	FallbackText = "I apologize, but I couldn't process your request right now."
)

// deliveryOptions is static: the agent schema does not carry delivery
// information, so every product gets the same two options.
var deliveryOptions = []string{"courier", "clickAndCollect"}

// defaults for product fields missing from the item metadata
const (
	defaultTitle         = "Product"
	defaultDescription   = "No description available"
	defaultProductURL    = "#"
	defaultUnitOfMeasure = "each"
	defaultCategoryName  = "Unknown"
	defaultCategoryID    = "unknown"
)

// ExtractText returns the first text line of the first handler prompt message
// that carries one, or FallbackText when none does.
func ExtractText(messages []domain.ResponseMessage) string {
	for _, msg := range messages {
		if msg.ResponseType != responseTypeHandlerPrompt {
			continue
		}
		if msg.Text != nil && len(msg.Text.Text) > 0 {
			return msg.Text.Text[0]
		}
	}
	return FallbackText
}

// ExtractProducts collects every product card found in the reply, in message
// -> content group -> item traversal order. Malformed messages and items
// degrade to fewer results, never to an error: a partially unparseable reply
// still renders whatever could be understood.
func ExtractProducts(messages []domain.ResponseMessage) []domain.Product {
	products := []domain.Product{}

	for _, msg := range messages {
		if msg.ResponseType != responseTypeHandlerPrompt || msg.Payload == nil {
			continue
		}
		richContent := msg.Payload.Field("richContent")
		if richContent.Kind() == domain.KindAbsent {
			continue
		}

		for _, contentGroup := range richContent.AsList() {
			for _, item := range contentGroup.AsList() {
				if product := extractProduct(item); product != nil {
					products = append(products, *product)
				}
			}
		}
	}

	return products
}

// extractProduct normalizes one rich content item into a Product. Each gate
// returns nil rather than an error so the caller can continue with the
// remaining items: non-struct items, non-"info" item types, and items without
// metadata are all skippable, not malformed.
func extractProduct(item domain.Value) *domain.Product {
	itemStruct, ok := item.AsStruct()
	if !ok {
		return nil
	}

	itemType, _ := itemStruct["type"].AsString()
	if itemType != itemTypeInfo {
		return nil
	}

	metadata, ok := itemStruct["metadata"].AsStruct()
	if !ok {
		return nil
	}

	title := firstString(metadata["title"], itemStruct["title"])
	if title == "" {
		title = defaultTitle
	}
	description := firstString(metadata["description"], itemStruct["subtitle"])
	if description == "" {
		description = defaultDescription
	}
	productURL := firstString(metadata["url"], itemStruct["actionLink"])
	if productURL == "" {
		productURL = defaultProductURL
	}
	imageURL, _ := metadata["image_url"].AsString()
	unitOfMeasure, _ := metadata["unit_of_measure"].AsString()
	if unitOfMeasure == "" {
		unitOfMeasure = defaultUnitOfMeasure
	}
	availability := true
	if avail, ok := metadata["availability"].AsBool(); ok {
		availability = avail
	}

	return &domain.Product{
		ID:              newProductID(),
		Title:           title,
		Description:     description,
		ProductURL:      productURL,
		ImageURL:        imageURL,
		Availability:    availability,
		UnitOfMeasure:   unitOfMeasure,
		Keywords:        parseKeywords(metadata["keywords"]),
		DeliveryOptions: deliveryOptions,
		Categories:      parseCategories(metadata["categories"]),
	}
}

// parseCategories walks a list of category groups, each a list of {name, id}
// structs, into category paths. The two-level nesting is preserved exactly:
// no flattening, no deduping. Absent input yields an empty result.
func parseCategories(field domain.Value) [][]domain.Category {
	paths := [][]domain.Category{}

	for _, group := range field.AsList() {
		path := []domain.Category{}
		for _, entry := range group.AsList() {
			category := domain.Category{Name: defaultCategoryName, ID: defaultCategoryID}
			if fields, ok := entry.AsStruct(); ok {
				if name, ok := fields["name"].AsString(); ok && name != "" {
					category.Name = name
				}
				if id, ok := fields["id"].AsString(); ok && id != "" {
					category.ID = id
				}
			}
			path = append(path, category)
		}
		paths = append(paths, path)
	}

	return paths
}

// parseKeywords maps a list of values to their string contents, silently
// dropping entries that are not strings. Source order and duplicates are
// preserved.
func parseKeywords(field domain.Value) []string {
	keywords := []string{}
	for _, entry := range field.AsList() {
		if keyword, ok := entry.AsString(); ok {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

// firstString returns the first of the given values holding a non-empty
// string.
func firstString(values ...domain.Value) string {
	for _, v := range values {
		if s, ok := v.AsString(); ok && s != "" {
			return s
		}
	}
	return ""
}

// newProductID generates an id unique enough to key one render: ids are
// never persisted or compared across requests, so a time-based seed with a
// random suffix is sufficient.
func newProductID() string {
	return fmt.Sprintf("product_%d_%d", time.Now().UnixMilli(), rand.Int63n(1_000_000_000))
}
