package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shivangi00/e-business-card-generator/internal/middleware"
	"github.com/shivangi00/e-business-card-generator/internal/models"
	"github.com/shivangi00/e-business-card-generator/internal/render"
	"github.com/shivangi00/e-business-card-generator/internal/services"
)

type CardHandler struct {
	cards  services.CardStore
	origin string
}

func NewCardHandler(cards services.CardStore, origin string) *CardHandler {
	return &CardHandler{cards: cards, origin: origin}
}

// publicCard is the shareable view of a stored card. The owner id stays
// server-side.
type publicCard struct {
	CardID    string         `json:"card_id"`
	Profile   models.Profile `json:"profile"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// GetCard serves a published card by id. No authentication: anyone holding
// the link can view it.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	card, err := h.cards.Load(ctx, cardID)
	if err != nil {
		if err == services.ErrCardNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Card not found"))
			return
		}
		log.Printf("[GetCard] card=%s error=%v", cardID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load card"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(publicCard{
		CardID:    card.CardID,
		Profile:   card.Profile.Normalize(),
		UpdatedAt: card.UpdatedAt,
	}))
}

// GetCardFrame serves the layout projection for a published card: geometry,
// palette, crop origin and status label, ready for the view to consume.
func (h *CardHandler) GetCardFrame(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	card, err := h.cards.Load(ctx, cardID)
	if err != nil {
		if err == services.ErrCardNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Card not found"))
			return
		}
		log.Printf("[GetCardFrame] card=%s error=%v", cardID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load card"))
		return
	}

	profile := card.Profile.Normalize()
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]interface{}{
		"frame":   render.ProjectFrame(profile),
		"socials": render.VisibleSocials(profile),
	}))
}

// GetCardEmbed returns an iframe snippet for the card in the requested
// format (html, react or vue).
func (h *CardHandler) GetCardEmbed(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardId")
	format := r.URL.Query().Get("format")
	switch format {
	case "react":
		format = "React"
	case "vue":
		format = "Vue"
	default:
		format = "HTML"
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	card, err := h.cards.Load(ctx, cardID)
	if err != nil {
		if err == services.ErrCardNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Card not found"))
			return
		}
		log.Printf("[GetCardEmbed] card=%s error=%v", cardID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load card"))
		return
	}

	cardURL := h.origin + "/card/" + card.CardID + "?embed=true"
	snippet := render.EmbedSnippet(cardURL, card.Profile.ResolveSize(), format)

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{
		"format":  format,
		"snippet": snippet,
	}))
}

// ListCards returns the authenticated user's cards, newest first.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cards, err := h.cards.ListByOwner(ctx, userID)
	if err != nil {
		log.Printf("[ListCards] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list cards"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(cards))
}

// GetCatalogue serves the fixed editor catalogues: palettes, status presets,
// icon groups and embed formats.
func (h *CardHandler) GetCatalogue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]interface{}{
		"palettes":       models.ColorPalettes,
		"status_presets": models.StatusPresets,
		"icons":          models.IconCatalogue,
		"embed_formats":  render.EmbedFormats,
	}))
}
