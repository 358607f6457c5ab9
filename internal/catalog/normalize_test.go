package catalog

import (
	"testing"

	"flowershop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestCategoryList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "Array of categories",
			raw:      `{"categories":[{"id":"bouquet","name":"花束"},{"id":"stand","name":"スタンド花"}]}`,
			expected: []string{"bouquet", "stand"},
		},
		{
			name:     "Bare object becomes a single-element list",
			raw:      `{"categories":{"id":"bouquet","name":"花束"}}`,
			expected: []string{"bouquet"},
		},
		{
			name:     "Null becomes an empty list",
			raw:      `{"categories":null}`,
			expected: []string{},
		},
		{
			name:     "Absent becomes an empty list",
			raw:      `{}`,
			expected: []string{},
		},
		{
			name:     "Objects without an id are dropped",
			raw:      `{"categories":[{"name":"no id"},{"id":"orchid"},"string"]}`,
			expected: []string{"orchid"},
		},
		{
			name:     "Scalar is not a category",
			raw:      `{"categories":"bouquet"}`,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := CategoryList(gjson.Get(tt.raw, "categories"))

			require.NotNil(t, list)
			ids := make([]string, len(list))
			for i, c := range list {
				ids[i] = c.ID
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestNormalizeProduct(t *testing.T) {
	raw := gjson.Parse(`{
		"id": "cms-1",
		"catalogId": "A1",
		"name": "春のブーケ",
		"price": 5500,
		"description": "季節の花をまとめました",
		"description2": "配送可",
		"image": {"url": "https://images.microcms-assets.io/a1.jpg", "width": 800, "height": 600},
		"images": [{"url": "https://images.microcms-assets.io/a1-2.jpg"}, {"width": 1}],
		"rank": 2,
		"categories": {"id": "bouquet", "name": "花束", "order": 1, "slug": "bouquet"}
	}`)

	p := NormalizeProduct(raw)

	assert.Equal(t, "A1", p.ID)
	assert.Equal(t, "春のブーケ", p.Name)
	assert.Equal(t, 5500, p.Price)
	assert.Equal(t, "https://images.microcms-assets.io/a1.jpg", p.Image)
	assert.Equal(t, []string{"https://images.microcms-assets.io/a1-2.jpg"}, p.Images)
	assert.Equal(t, "季節の花をまとめました", p.Description)
	assert.Equal(t, "配送可", p.Description2)
	require.NotNil(t, p.Rank)
	assert.Equal(t, 2, *p.Rank)
	require.Len(t, p.Categories, 1)
	assert.Equal(t, "bouquet", p.Categories[0].ID)
	require.NotNil(t, p.Categories[0].Order)
	assert.Equal(t, 1, *p.Categories[0].Order)
}

func TestNormalizeProduct_Fallbacks(t *testing.T) {
	p := NormalizeProduct(gjson.Parse(`{"id":"cms-2","name":"胡蝶蘭","price":30000,"catalogId":""}`))

	assert.Equal(t, "cms-2", p.ID)
	assert.Equal(t, PlaceholderImage, p.Image)
	assert.Nil(t, p.Rank)
	assert.Equal(t, []model.Category{}, p.Categories)
	assert.Empty(t, p.Images)
}
