package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"flowershop/internal/faq"
	"flowershop/internal/model"
	"flowershop/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYen(t *testing.T) {
	tests := []struct {
		price    int
		expected string
	}{
		{0, "¥0"},
		{980, "¥980"},
		{5500, "¥5,500"},
		{30000, "¥30,000"},
		{1234567, "¥1,234,567"},
		{-1500, "¥-1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Yen(tt.price))
		})
	}
}

func testView() *service.Storefront {
	products := []model.Product{
		{ID: "A1", Name: "春のブーケ", Price: 5500, Image: "/img/a1.jpg", Images: []string{"/img/a1.jpg", "/img/a1b.jpg"}},
		{ID: "B1", Name: "胡蝶蘭", Price: 30000, Image: "/static/placeholder.svg"},
	}
	return &service.Storefront{
		Categories: []model.Category{{ID: "bouquet", Name: "花束"}, {ID: "orchid", Name: "蘭"}},
		Products:   products,
		All:        products,
	}
}

func TestPage_Field(t *testing.T) {
	page := &Page{
		Form: model.OrderForm{ApplicantName: "山田", ApplicantPhone: "0901234"},
		Errors: &model.ValidationError{Fields: []model.FieldError{
			{Field: "applicant_phone", Code: model.FieldPhone, Message: "must be 10 or 11 digits"},
			{Field: "catalog_id", Code: model.FieldRequired, Message: "is required"},
		}},
	}

	name := page.Field("applicant_name")
	assert.Equal(t, "山田", name.Value)
	assert.True(t, name.Required)
	assert.False(t, name.Invalid)
	assert.False(t, name.Autofocus)

	phone := page.Field("applicant_phone")
	assert.Equal(t, "tel", phone.Type)
	assert.True(t, phone.Invalid)
	assert.True(t, phone.Autofocus)
	assert.Equal(t, "電話番号は10桁または11桁の数字で入力してください", phone.Message)

	assert.Equal(t, "1", page.Field("quantity").Value)
	assert.True(t, page.CatalogInvalid())
	assert.Equal(t, "applicant_phone", page.Focus())
}

func TestPage_NoErrors(t *testing.T) {
	page := &Page{}

	assert.Equal(t, "", page.Focus())
	assert.False(t, page.CatalogInvalid())
	assert.False(t, page.Field("recipient_phone").Required)
}

func TestRenderer_Storefront(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = renderer.Storefront(w, http.StatusOK, &Page{
		View: testView(),
		FAQ:  []faq.Entry{{Question: "当日配達はできますか？", Answer: "可能です。"}},
		Form: model.OrderForm{CatalogID: "B1"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "春のブーケ")
	assert.Contains(t, body, "¥30,000")
	assert.Contains(t, body, "当日配達はできますか？")
	assert.Contains(t, body, `<option value="B1" selected>`)
	assert.Contains(t, body, `action="/order#order"`)
	assert.NotContains(t, body, "送信ありがとうございました")
	assert.NotContains(t, body, `role="alert"`)
}

func TestRenderer_Storefront_DetailAndDone(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	view := testView()
	view.Selected = "bouquet"
	view.Detail = &view.All[0]

	w := httptest.NewRecorder()
	require.NoError(t, renderer.Storefront(w, http.StatusOK, &Page{View: view, Done: true}))

	body := w.Body.String()
	assert.Contains(t, body, `src="/img/a1b.jpg"`)
	assert.Contains(t, body, `href="/?catalog=A1#order"`)
	assert.Contains(t, body, "送信ありがとうございました")
	assert.Contains(t, body, "tab is-active")
}

func TestRenderer_Storefront_Errors(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = renderer.Storefront(w, http.StatusBadRequest, &Page{
		View: testView(),
		Form: model.OrderForm{ApplicantName: "<script>"},
		Errors: &model.ValidationError{Fields: []model.FieldError{
			{Field: "applicant_email", Code: model.FieldEmail, Message: "is not a valid email"},
		}},
		SendError: "",
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "メールアドレスの形式が正しくありません")
	assert.Contains(t, body, `aria-invalid="true" autofocus`)
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<script>")
}

func TestRenderer_Error(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, renderer.Error(w, http.StatusBadGateway, "カタログを取得できませんでした。"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "カタログを取得できませんでした。")
}

func TestStatic(t *testing.T) {
	w := httptest.NewRecorder()
	Static().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/placeholder.svg", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<svg")
}
