// Package web renders the storefront page.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"flowershop/internal/faq"
	"flowershop/internal/model"
	"flowershop/internal/service"
	"flowershop/internal/validate"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static serves the embedded stylesheet and images under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Page is everything the storefront template needs for one render.
type Page struct {
	View      *service.Storefront
	FAQ       []faq.Entry
	Form      model.OrderForm
	Errors    *model.ValidationError
	SendError string
	Done      bool
}

// Focus names the field that should receive focus: the first invalid one.
func (p *Page) Focus() string {
	return p.Errors.First()
}

// Field is one order form input as rendered.
type Field struct {
	Name      string
	Label     string
	Type      string
	Value     string
	Required  bool
	Invalid   bool
	Message   string
	Autofocus bool
}

type fieldSpec struct {
	label    string
	kind     string
	required bool
}

var fieldSpecs = map[string]fieldSpec{
	validate.ApplicantName:    {"お名前", "text", true},
	validate.ApplicantPhone:   {"お電話番号", "tel", true},
	validate.ApplicantEmail:   {"メールアドレス", "email", true},
	"applicant_address":       {"ご住所", "text", false},
	validate.Quantity:         {"数量", "number", true},
	"preferred_time":          {"ご希望の連絡時間", "text", false},
	validate.RecipientName:    {"お届け先のお名前", "text", true},
	validate.RecipientAddress: {"お届け先のご住所", "text", true},
	validate.RecipientPhone:   {"お届け先のお電話番号", "tel", false},
}

var fieldMessages = map[string]string{
	model.FieldRequired: "必須項目です",
	model.FieldPhone:    "電話番号は10桁または11桁の数字で入力してください",
	model.FieldEmail:    "メールアドレスの形式が正しくありません",
	model.FieldQuantity: "数量は1以上で入力してください",
}

// Field describes the named form input with its draft value and error.
func (p *Page) Field(name string) Field {
	spec := fieldSpecs[name]
	return Field{
		Name:      name,
		Label:     spec.label,
		Type:      spec.kind,
		Value:     formValue(&p.Form, name),
		Required:  spec.required,
		Invalid:   p.Errors.Has(name),
		Message:   fieldMessages[p.Errors.Code(name)],
		Autofocus: name == p.Focus(),
	}
}

// CatalogInvalid reports whether the catalog select is invalid.
func (p *Page) CatalogInvalid() bool {
	return p.Errors.Has(validate.CatalogID)
}

func formValue(f *model.OrderForm, name string) string {
	switch name {
	case validate.ApplicantName:
		return f.ApplicantName
	case validate.ApplicantPhone:
		return f.ApplicantPhone
	case validate.ApplicantEmail:
		return f.ApplicantEmail
	case "applicant_address":
		return f.ApplicantAddress
	case validate.CatalogID:
		return f.CatalogID
	case validate.Quantity:
		if f.Quantity == "" {
			return "1"
		}
		return f.Quantity
	case "preferred_time":
		return f.PreferredTime
	case "message":
		return f.Message
	case validate.RecipientName:
		return f.RecipientName
	case validate.RecipientAddress:
		return f.RecipientAddress
	case validate.RecipientPhone:
		return f.RecipientPhone
	}
	return ""
}

// Yen formats an integer price as ¥1,234.
func Yen(price int) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = -price
	}

	digits := strconv.Itoa(price)
	var b bytes.Buffer
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return "¥" + sign + b.String()
}

// Renderer executes the embedded templates.
type Renderer struct {
	storefront *template.Template
	errorPage  *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"yen": Yen,
	}

	storefront, err := template.New("storefront.html").Funcs(funcs).ParseFS(templateFS, "templates/storefront.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse storefront template: %w", err)
	}

	errorPage, err := template.New("error.html").ParseFS(templateFS, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse error template: %w", err)
	}

	return &Renderer{storefront: storefront, errorPage: errorPage}, nil
}

// Storefront renders the page with the given status. The page is rendered
// into a buffer first so a template error never yields a half page.
func (r *Renderer) Storefront(w http.ResponseWriter, status int, page *Page) error {
	return render(w, status, r.storefront, page)
}

// Error renders the plain error page.
func (r *Renderer) Error(w http.ResponseWriter, status int, message string) error {
	return render(w, status, r.errorPage, struct {
		Status  int
		Message string
	}{status, message})
}

func render(w http.ResponseWriter, status int, tmpl *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
