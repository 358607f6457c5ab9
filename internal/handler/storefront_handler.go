package handler

import (
	"errors"
	"net/http"

	"flowershop/internal/faq"
	"flowershop/internal/model"
	"flowershop/internal/service"
	"flowershop/internal/web"

	"github.com/gorilla/schema"
	"github.com/rs/zerolog"
)

const catalogUnavailableMessage = "ただいまカタログを取得できません。しばらくしてから再度お試しください。"

// StorefrontHandler serves the HTML storefront and its order form.
type StorefrontHandler struct {
	catalog  service.CatalogService
	relay    service.RelayService
	faqs     []faq.Entry
	renderer *web.Renderer
	decoder  *schema.Decoder
	logger   zerolog.Logger
}

// NewStorefrontHandler creates a new storefront handler.
func NewStorefrontHandler(
	catalog service.CatalogService,
	relay service.RelayService,
	faqs []faq.Entry,
	renderer *web.Renderer,
	logger zerolog.Logger,
) *StorefrontHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &StorefrontHandler{
		catalog:  catalog,
		relay:    relay,
		faqs:     faqs,
		renderer: renderer,
		decoder:  decoder,
		logger:   logger.With().Str("handler", "storefront").Logger(),
	}
}

// Index handles GET / requests.
func (h *StorefrontHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	view, err := h.catalog.Storefront(r.Context(), query.Get("category"), query.Get("product"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load catalog")
		h.renderError(w, http.StatusBadGateway, catalogUnavailableMessage)
		return
	}

	h.render(w, http.StatusOK, &web.Page{
		View: view,
		FAQ:  h.faqs,
		Form: model.OrderForm{CatalogID: query.Get("catalog")},
		Done: query.Get("done") == "1",
	})
}

// Submit handles POST /order requests from the storefront form.
// A successful submit redirects so a reload cannot resend it.
func (h *StorefrontHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn().Err(err).Msg("failed to parse order form")
		h.renderError(w, http.StatusBadRequest, "送信内容を読み取れませんでした。")
		return
	}

	var form model.OrderForm
	if err := h.decoder.Decode(&form, r.PostForm); err != nil {
		h.logger.Warn().Err(err).Msg("failed to decode order form")
		h.renderError(w, http.StatusBadRequest, "送信内容を読み取れませんでした。")
		return
	}

	sub := form.Submission()
	sub.CatalogName = h.catalogName(r, sub.CatalogID)

	err := h.relay.Submit(r.Context(), sub)
	if err == nil {
		http.Redirect(w, r, "/?done=1#order", http.StatusSeeOther)
		return
	}

	page := &web.Page{FAQ: h.faqs, Form: form}
	status := http.StatusInternalServerError

	if verr, ok := model.AsValidationError(err); ok {
		page.Errors = verr
		status = http.StatusBadRequest
	} else if errors.Is(err, model.ErrRelayNotConfigured) {
		page.SendError = model.ErrCodeRelayNotConfigured + ": " + err.Error()
	} else {
		h.logger.Error().Err(err).Msg("order relay failed")
		page.SendError = model.ErrCodeSendFailed + ": " + err.Error()
	}

	page.View, err = h.catalog.Storefront(r.Context(), "", "")
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load catalog")
		h.renderError(w, http.StatusBadGateway, catalogUnavailableMessage)
		return
	}

	h.render(w, status, page)
}

// catalogName resolves the display name of the selected product. The
// submission still goes out without it when the catalog is unavailable.
func (h *StorefrontHandler) catalogName(r *http.Request, id string) string {
	if id == "" {
		return ""
	}

	catalog, err := h.catalog.Catalog(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("catalog unavailable, submitting without product name")
		return ""
	}

	for _, p := range catalog.Products {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func (h *StorefrontHandler) render(w http.ResponseWriter, status int, page *web.Page) {
	if err := h.renderer.Storefront(w, status, page); err != nil {
		h.logger.Error().Err(err).Msg("failed to render storefront")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *StorefrontHandler) renderError(w http.ResponseWriter, status int, message string) {
	if err := h.renderer.Error(w, status, message); err != nil {
		h.logger.Error().Err(err).Msg("failed to render error page")
		http.Error(w, message, status)
	}
}
