package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shivangi00/e-business-card-generator/internal/middleware"
	"github.com/shivangi00/e-business-card-generator/internal/models"
	"github.com/shivangi00/e-business-card-generator/internal/render"
	"github.com/shivangi00/e-business-card-generator/internal/services"
)

// SessionHandler exposes the editing session: reading the live profile,
// applying edits, managing social links and publishing.
type SessionHandler struct {
	sessions *services.SessionManager
	logos    services.LogoResolver
}

func NewSessionHandler(sessions *services.SessionManager, logos services.LogoResolver) *SessionHandler {
	return &SessionHandler{sessions: sessions, logos: logos}
}

func (h *SessionHandler) session(r *http.Request) (*services.EditingSession, string) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		return nil, ""
	}
	return h.sessions.Get(r.Context(), userID), userID
}

// sessionView is the editor's working state plus everything the preview
// needs in one payload.
type sessionView struct {
	Profile      models.Profile        `json:"profile"`
	Frame        render.Frame          `json:"frame"`
	PublishState services.PublishState `json:"publish_state"`
	PublishedURL string                `json:"published_url,omitempty"`
}

func (h *SessionHandler) view(sess *services.EditingSession) sessionView {
	profile := sess.Profile()
	return sessionView{
		Profile:      profile,
		Frame:        render.ProjectFrame(profile),
		PublishState: sess.PublishState(),
		PublishedURL: sess.PublishedURL(),
	}
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view(sess)))
}

// UpdateProfile applies a partial edit to the session profile. Only fields
// present in the request change.
func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, userID := h.session(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[UpdateProfile] user=%s validation errors: %v", userID, errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	applyProfileEdit(sess, &req)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view(sess)))
}

func applyProfileEdit(sess *services.EditingSession, req *models.UpdateProfileRequest) {
	if req.Name != nil {
		sess.SetName(*req.Name)
	}
	if req.Title != nil {
		sess.SetTitle(*req.Title)
	}
	if req.Location != nil {
		sess.SetLocation(*req.Location)
	}
	if req.CVURL != nil {
		sess.SetCVURL(*req.CVURL)
	}
	if req.Phone != nil {
		sess.SetPhone(*req.Phone)
	}
	if req.Email != nil || req.EmailKind != nil {
		profile := sess.Profile()
		email, kind := profile.Email, profile.EmailKind
		if req.Email != nil {
			email = *req.Email
		}
		if req.EmailKind != nil {
			kind = *req.EmailKind
		}
		sess.SetEmail(email, kind)
	}
	if req.Company != nil {
		sess.SetCompany(*req.Company)
	}
	if req.StatusLabel != nil || req.StatusKind != nil {
		kind := "custom"
		if req.StatusKind != nil {
			kind = *req.StatusKind
		}
		if kind == "custom" {
			label := ""
			if req.StatusLabel != nil {
				label = *req.StatusLabel
			}
			sess.SetCustomStatus(label)
		} else {
			for _, preset := range models.StatusPresets {
				if preset.Kind == kind {
					sess.SetStatusPreset(preset)
					break
				}
			}
		}
	}
	if req.ClearPhoto {
		sess.ClearPhoto()
	} else if req.Photo != nil {
		sess.SetPhoto(*req.Photo)
	}
	if req.FocalX != nil || req.FocalY != nil {
		focal := sess.Profile().FocalPoint
		x, y := focal.X, focal.Y
		if req.FocalX != nil {
			x = *req.FocalX
		}
		if req.FocalY != nil {
			y = *req.FocalY
		}
		sess.SetFocalPoint(x, y)
	}
	if req.ShowImage != nil {
		sess.SetShowImage(*req.ShowImage)
	}
	if req.CompanyLogo != nil {
		sess.SetCompanyLogo(*req.CompanyLogo)
	}
	if req.PaletteID != nil {
		sess.SetPalette(*req.PaletteID)
	}
	if req.CustomWidth != nil || req.CustomHeight != nil {
		// A partial edit keeps the other axis at its current resolved size,
		// never at the stored zero, which would clamp to the minimum.
		profile := sess.Profile()
		dims := profile.ResolveSize()
		w, h := profile.CustomWidth, profile.CustomHeight
		if w == 0 {
			w = dims.Width
		}
		if h == 0 {
			h = dims.Height
		}
		if req.CustomWidth != nil {
			w = *req.CustomWidth
		}
		if req.CustomHeight != nil {
			h = *req.CustomHeight
		}
		sess.SetCustomDimensions(w, h)
	} else if req.CardSize != nil {
		sess.SetCardSize(*req.CardSize)
	}
}

func (h *SessionHandler) AddSocial(w http.ResponseWriter, r *http.Request) {
	sess, userID := h.session(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	var req models.AddSocialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	link := models.SocialLink{
		ID:    uuid.New().String(),
		Label: req.Label,
		Icon:  req.Icon,
		Href:  req.Href,
	}
	if err := sess.AddSocial(link); err != nil {
		if err == services.ErrSocialLimit {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Social link limit reached"))
			return
		}
		log.Printf("[AddSocial] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add social link"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(h.view(sess)))
}

func (h *SessionHandler) RemoveSocial(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	socialID := chi.URLParam(r, "socialId")
	if err := sess.RemoveSocial(socialID); err != nil {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Social link not found"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view(sess)))
}

func (h *SessionHandler) UpdateSocial(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	socialID := chi.URLParam(r, "socialId")

	var req models.UpdateSocialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if req.Href != nil {
		if err := sess.UpdateSocialHref(socialID, *req.Href); err != nil {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Social link not found"))
			return
		}
	}
	if req.IsNested != nil {
		if err := sess.SetSocialNested(socialID, *req.IsNested); err != nil {
			if err == services.ErrNestedSlotTaken {
				writeJSON(w, http.StatusConflict, models.NewErrorResponse("Another link already has nested icons"))
				return
			}
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Social link not found"))
			return
		}
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view(sess)))
}

func (h *SessionHandler) AddNestedIcon(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	socialID := chi.URLParam(r, "socialId")

	var req models.AddNestedIconRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	err := sess.AddNestedIcon(socialID, models.NestedIcon{Icon: req.Icon, Href: req.Href})
	if err != nil {
		if err == services.ErrNestedIconLimit {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Nested icon limit reached"))
			return
		}
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Social link not found"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(h.view(sess)))
}

func (h *SessionHandler) RemoveNestedIcon(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	socialID := chi.URLParam(r, "socialId")
	index, err := strconv.Atoi(chi.URLParam(r, "iconIndex"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid icon index"))
		return
	}

	if err := sess.RemoveNestedIcon(socialID, index); err != nil {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Nested icon not found"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view(sess)))
}

// Publish pushes the session profile to the card store: first call creates
// the card, later calls update it in place under the same id.
func (h *SessionHandler) Publish(w http.ResponseWriter, r *http.Request) {
	sess, userID := h.session(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resp, err := sess.Publish(ctx)
	if err != nil {
		if err == services.ErrAuthRequired {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Sign in to publish your card"))
			return
		}
		if err == services.ErrUnauthorized {
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to update this card"))
			return
		}
		log.Printf("[Publish] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to publish card"))
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, models.NewSuccessResponse(resp))
}

// LookupLogo probes for a company logo immediately, bypassing the debounce.
func (h *SessionHandler) LookupLogo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	company := r.URL.Query().Get("company")
	if company == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Company name required"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	logoURL, found := h.logos.Resolve(ctx, company)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.LogoLookupResponse{
		Company: company,
		LogoURL: logoURL,
		Found:   found,
	}))
}
