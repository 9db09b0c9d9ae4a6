package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/usecase"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
	"github.com/m-mizutani/releasepage/pkg/view"
)

const colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

// PageHandler serves the landing page and its JSON projection
type PageHandler struct {
	site      model.Site
	releaseUC interfaces.ReleaseUseCase
	themeUC   *usecase.Theme
	sessions  SessionStores
	cfg       *config
}

// Index renders the landing page
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := model.NewPage(model.DefaultElements...)
	page.Theme = h.themeUC.Init(ctx, h.preferences(w, r), prefersDark(r))

	nav := usecase.NewNavMenu(page.Classes(model.ElemMainNav))
	if r.URL.Query().Get("menu") == "open" {
		nav.Toggle()
	}
	usecase.NewBackToTop(page.Classes(model.ElemBackToTop)).OnScroll(0)

	h.releaseUC.Load(ctx, h.session(w, r), page)

	body, err := view.RenderBytes(&view.Data{
		Site:        h.site,
		Page:        page,
		Interactive: true,
		NavOpen:     nav.IsOpen(),
	})
	if err != nil {
		logging.From(ctx).Error("Failed to render page", "error", err)
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Accept-CH", colorSchemeHint)
	w.Header().Set("Vary", colorSchemeHint)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logging.From(ctx).Warn("Failed to write page", "error", err)
	}
}

// Release returns the resolved release as JSON
func (h *PageHandler) Release(w http.ResponseWriter, r *http.Request) {
	page := model.NewPage(model.DefaultElements...)
	info := h.releaseUC.Load(r.Context(), h.session(w, r), page)
	writeJSON(w, r, model.NewReleaseView(page, info != nil))
}

// ToggleTheme flips the stored theme and returns to the page
func (h *PageHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prefs := h.preferences(w, r)

	current := h.themeUC.Init(ctx, prefs, prefersDark(r))
	next := h.themeUC.Toggle(ctx, prefs, current)
	logging.From(ctx).Debug("Theme toggled", "from", current, "to", next)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// session returns the release cache namespace of the request
func (h *PageHandler) session(w http.ResponseWriter, r *http.Request) interfaces.KVStore {
	if h.cfg.sharedCache {
		return h.sessions.Namespace(SharedSession)
	}
	return h.sessions.Namespace(ensureID(w, r, sessionCookie, 0))
}

// preferences returns the durable store of the request
func (h *PageHandler) preferences(w http.ResponseWriter, r *http.Request) interfaces.KVStore {
	if h.cfg.visitorPrefs != nil {
		return h.cfg.visitorPrefs(ensureID(w, r, visitorCookie, preferenceMaxAge))
	}
	return newCookieStore(w, r)
}

func prefersDark(r *http.Request) bool {
	return strings.Trim(r.Header.Get(colorSchemeHint), `"`) == "dark"
}
