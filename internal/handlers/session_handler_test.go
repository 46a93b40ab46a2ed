package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/shivangi00/e-business-card-generator/internal/middleware"
	"github.com/shivangi00/e-business-card-generator/internal/models"
	"github.com/shivangi00/e-business-card-generator/internal/services"
	"github.com/shivangi00/e-business-card-generator/internal/storage"
)

type deniedLogoResolver struct{}

func (deniedLogoResolver) Resolve(ctx context.Context, company string) (string, bool) {
	return "", false
}

// asUser stamps a verified identity on every request, standing in for the
// auth middleware.
func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(t *testing.T, userID string) (*chi.Mux, services.CardStore) {
	t.Helper()
	dir := t.TempDir()
	store := services.NewCardService(dir)
	pointers, err := storage.NewPointerStore(dir)
	if err != nil {
		t.Fatalf("pointer store: %v", err)
	}
	sessions := services.NewSessionManager(store, pointers, deniedLogoResolver{}, dir, "https://cards.example")

	sessionHandler := NewSessionHandler(sessions, deniedLogoResolver{})
	cardHandler := NewCardHandler(store, "https://cards.example")

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/cards/{cardId}", func(r chi.Router) {
			r.Get("/", cardHandler.GetCard)
			r.Get("/frame", cardHandler.GetCardFrame)
			r.Get("/embed", cardHandler.GetCardEmbed)
		})
		r.Group(func(r chi.Router) {
			r.Use(asUser(userID))
			r.Get("/cards", cardHandler.ListCards)
			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Put("/profile", sessionHandler.UpdateProfile)
				r.Post("/publish", sessionHandler.Publish)
				r.Route("/socials", func(r chi.Router) {
					r.Post("/", sessionHandler.AddSocial)
					r.Route("/{socialId}", func(r chi.Router) {
						r.Put("/", sessionHandler.UpdateSocial)
						r.Delete("/", sessionHandler.RemoveSocial)
					})
				})
			})
		})
	})
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestSessionEditAndPublishFlow(t *testing.T) {
	r, _ := newTestRouter(t, "user1")

	rec, resp := doJSON(t, r, http.MethodGet, "/api/session/", nil)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("get session: %d %v", rec.Code, resp.Error)
	}

	name := "Grace Hopper"
	rec, resp = doJSON(t, r, http.MethodPut, "/api/session/profile", models.UpdateProfileRequest{Name: &name})
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("update profile: %d %v", rec.Code, resp.Error)
	}

	rec, resp = doJSON(t, r, http.MethodPost, "/api/session/publish", nil)
	if rec.Code != http.StatusCreated || !resp.Success {
		t.Fatalf("publish: %d %v", rec.Code, resp.Error)
	}

	var pub models.PublishResponse
	raw, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(raw, &pub); err != nil {
		t.Fatalf("decode publish response: %v", err)
	}
	if !pub.Created || pub.CardID == "" {
		t.Fatalf("publish response = %+v", pub)
	}

	// Published card is publicly readable under its id.
	rec, resp = doJSON(t, r, http.MethodGet, "/api/cards/"+pub.CardID+"/", nil)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("get card: %d %v", rec.Code, resp.Error)
	}

	// Second publish updates in place.
	rec, resp = doJSON(t, r, http.MethodPost, "/api/session/publish", nil)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("second publish: %d %v", rec.Code, resp.Error)
	}
}

func TestSessionRejectsInvalidEdit(t *testing.T) {
	r, _ := newTestRouter(t, "user1")

	kind := "carrier-pigeon"
	rec, resp := doJSON(t, r, http.MethodPut, "/api/session/profile", models.UpdateProfileRequest{EmailKind: &kind})
	if rec.Code != http.StatusBadRequest || resp.Success {
		t.Fatalf("expected validation failure, got %d %v", rec.Code, resp)
	}
}

func TestSessionPartialCustomWidthKeepsHeight(t *testing.T) {
	r, _ := newTestRouter(t, "user1")

	width := 500
	rec, resp := doJSON(t, r, http.MethodPut, "/api/session/profile", models.UpdateProfileRequest{CustomWidth: &width})
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("update profile: %d %v", rec.Code, resp.Error)
	}

	var view struct {
		Profile models.Profile `json:"profile"`
	}
	raw, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("decode session view: %v", err)
	}
	if view.Profile.CardSize != "custom" || view.Profile.CustomWidth != 500 {
		t.Fatalf("dims = %q %dx%d", view.Profile.CardSize, view.Profile.CustomWidth, view.Profile.CustomHeight)
	}
	// The untouched axis stays at the medium default instead of clamping
	// the stored zero to the minimum.
	if view.Profile.CustomHeight != 370 {
		t.Errorf("height = %d, want 370", view.Profile.CustomHeight)
	}
}

func TestSessionSocialEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, "user1")

	// Default profile ships with two links; two more fill the card.
	for i := 0; i < 2; i++ {
		rec, resp := doJSON(t, r, http.MethodPost, "/api/session/socials/", models.AddSocialRequest{
			Label: "LinkedIn", Icon: "linkedin", Href: "https://linkedin.com/in/x",
		})
		if rec.Code != http.StatusCreated || !resp.Success {
			t.Fatalf("add social %d: %d %v", i, rec.Code, resp.Error)
		}
	}

	rec, _ := doJSON(t, r, http.MethodPost, "/api/session/socials/", models.AddSocialRequest{
		Label: "One too many", Icon: "twitter", Href: "https://x.com/y",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 at the cap, got %d", rec.Code)
	}

	rec, _ = doJSON(t, r, http.MethodPost, "/api/session/socials/", models.AddSocialRequest{
		Label: "Bad", Icon: "not-a-real-icon", Href: "https://x.com",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown icon, got %d", rec.Code)
	}

	nested := true
	rec, resp := doJSON(t, r, http.MethodPut, "/api/session/socials/github/", models.UpdateSocialRequest{IsNested: &nested})
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("nest github: %d %v", rec.Code, resp.Error)
	}
	rec, _ = doJSON(t, r, http.MethodPut, "/api/session/socials/email/", models.UpdateSocialRequest{IsNested: &nested})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for second nested link, got %d", rec.Code)
	}

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/session/socials/github/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove social: %d", rec.Code)
	}
	rec, _ = doJSON(t, r, http.MethodDelete, "/api/session/socials/github/", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing social, got %d", rec.Code)
	}
}

func TestPublicCardEndpoints(t *testing.T) {
	r, store := newTestRouter(t, "user1")

	profile := models.DefaultProfile()
	profile.Name = "Public Person"
	if err := store.Create(context.Background(), "pub1", profile, "user1"); err != nil {
		t.Fatalf("seed card: %v", err)
	}

	rec, resp := doJSON(t, r, http.MethodGet, "/api/cards/pub1/", nil)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("get card: %d %v", rec.Code, resp.Error)
	}

	rec, resp = doJSON(t, r, http.MethodGet, "/api/cards/pub1/frame", nil)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("get frame: %d %v", rec.Code, resp.Error)
	}

	rec, resp = doJSON(t, r, http.MethodGet, "/api/cards/pub1/embed?format=react", nil)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("get embed: %d %v", rec.Code, resp.Error)
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/api/cards/nope/", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown card, got %d", rec.Code)
	}
}

func TestListCardsRequiresResults(t *testing.T) {
	r, store := newTestRouter(t, "user1")

	if err := store.Create(context.Background(), "mine", models.DefaultProfile(), "user1"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Create(context.Background(), "theirs", models.DefaultProfile(), "user2"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, resp := doJSON(t, r, http.MethodGet, "/api/cards", nil)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("list: %d %v", rec.Code, resp.Error)
	}

	var cards []models.Card
	raw, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(raw, &cards); err != nil {
		t.Fatalf("decode cards: %v", err)
	}
	if len(cards) != 1 || cards[0].CardID != "mine" {
		t.Errorf("cards = %+v", cards)
	}
}
