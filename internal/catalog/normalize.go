package catalog

import (
	"flowershop/internal/model"

	"github.com/tidwall/gjson"
)

// PlaceholderImage is used for products without a primary image.
const PlaceholderImage = "/static/placeholder.svg"

// NormalizeProduct maps one raw CMS catalog record to a Product.
// This is the only place that looks at the raw shape of a record.
func NormalizeProduct(raw gjson.Result) model.Product {
	id := raw.Get("catalogId").String()
	if id == "" {
		id = raw.Get("id").String()
	}

	image := raw.Get("image.url").String()
	if image == "" {
		image = PlaceholderImage
	}

	var images []string
	raw.Get("images").ForEach(func(_, img gjson.Result) bool {
		if url := img.Get("url").String(); url != "" {
			images = append(images, url)
		}
		return true
	})

	return model.Product{
		ID:           id,
		Name:         raw.Get("name").String(),
		Price:        int(raw.Get("price").Int()),
		Image:        image,
		Images:       images,
		Description:  raw.Get("description").String(),
		Description2: raw.Get("description2").String(),
		Rank:         optionalInt(raw.Get("rank")),
		Categories:   CategoryList(raw.Get("categories")),
	}
}

// CategoryList coerces a category relation that may be a single object,
// an array of objects, or null/absent into a list. The result is never nil.
// Entries without an id are dropped.
func CategoryList(v gjson.Result) []model.Category {
	categories := []model.Category{}

	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if c, ok := NormalizeCategory(item); ok {
				categories = append(categories, c)
			}
		}
	case v.IsObject():
		if c, ok := NormalizeCategory(v); ok {
			categories = append(categories, c)
		}
	}

	return categories
}

// NormalizeCategory maps one raw category object. It reports false when
// the value is not an object carrying an id.
func NormalizeCategory(v gjson.Result) (model.Category, bool) {
	if !v.IsObject() {
		return model.Category{}, false
	}

	id := v.Get("id")
	if !id.Exists() || id.String() == "" {
		return model.Category{}, false
	}

	return model.Category{
		ID:    id.String(),
		Name:  v.Get("name").String(),
		Order: optionalInt(v.Get("order")),
		Slug:  v.Get("slug").String(),
	}, true
}

func optionalInt(v gjson.Result) *int {
	if v.Type != gjson.Number {
		return nil
	}
	n := int(v.Int())
	return &n
}
