package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/shivangi00/e-business-card-generator/internal/models"
	"github.com/shivangi00/e-business-card-generator/internal/storage"
)

var (
	ErrSocialLimit     = errors.New("social link limit reached")
	ErrSocialNotFound  = errors.New("social link not found")
	ErrNestedIconLimit = errors.New("nested icon limit reached")
	ErrNestedSlotTaken = errors.New("another link already has nested icons")
)

// DefaultLogoDebounce is the quiet period after a company edit before the
// logo lookup fires.
const DefaultLogoDebounce = 800 * time.Millisecond

// EditingSession owns the live profile for one user. All mutations go through
// it: each one replaces the profile wholesale under the session lock, then
// mirrors the new state to the local draft store best-effort.
type EditingSession struct {
	mu           sync.Mutex
	ownerID      string
	profile      models.Profile
	publishedURL string

	store     CardStore
	drafts    *storage.DraftStore
	pointers  *storage.PointerStore
	publisher *Publisher
	logos     LogoResolver

	debounce  time.Duration
	logoTimer *time.Timer
}

type SessionDeps struct {
	Store    CardStore
	Drafts   *storage.DraftStore
	Pointers *storage.PointerStore
	Logos    LogoResolver
	Origin   string
	// Debounce overrides the logo-lookup quiet period; zero means default.
	Debounce time.Duration
}

func NewEditingSession(ownerID string, deps SessionDeps) *EditingSession {
	debounce := deps.Debounce
	if debounce == 0 {
		debounce = DefaultLogoDebounce
	}
	return &EditingSession{
		ownerID:   ownerID,
		profile:   models.DefaultProfile(),
		store:     deps.Store,
		drafts:    deps.Drafts,
		pointers:  deps.Pointers,
		publisher: NewPublisher(deps.Store, deps.Pointers, deps.Origin),
		logos:     deps.Logos,
		debounce:  debounce,
	}
}

// Start runs the load-on-start protocol. Recovery strategies in order:
// remembered pointer, newest remote card for the owner, local draft, default
// profile. A stale pointer is cleared and never crashes the session.
func (s *EditingSession) Start(ctx context.Context) {
	if s.ownerID != "" && s.pointers != nil {
		if cardID, ok := s.pointers.Get(s.ownerID); ok {
			card, err := s.store.Load(ctx, cardID)
			if err == nil {
				s.adoptRemote(card)
				return
			}
			if errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrUnauthorized) {
				if cerr := s.pointers.Clear(s.ownerID); cerr != nil {
					log.Printf("Warning: failed to clear stale card pointer: %v", cerr)
				}
			}
			// Transport failures fall through; the pointer may still be good
			// next time.
		}
	}

	if s.ownerID != "" && s.store != nil {
		// Pointer lost or stale: the owner's newest remote card wins.
		if cards, err := s.store.ListByOwner(ctx, s.ownerID); err == nil && len(cards) > 0 {
			card := cards[0]
			if s.pointers != nil {
				if perr := s.pointers.Set(s.ownerID, card.CardID); perr != nil {
					log.Printf("Warning: failed to restore card pointer: %v", perr)
				}
			}
			s.adoptRemote(&card)
			return
		}
	}

	if s.drafts != nil {
		if draft, err := s.drafts.Load(); err == nil && draft != nil {
			s.mu.Lock()
			s.profile = draft.Normalize()
			s.mu.Unlock()
			return
		}
	}
	// Default profile from the constructor stands.
}

func (s *EditingSession) adoptRemote(card *models.Card) {
	s.mu.Lock()
	s.profile = card.Profile.Normalize()
	s.publishedURL = s.publisher.CardURL(card.CardID, false)
	s.mu.Unlock()
	s.publisher.Adopt(card.CardID)
}

// Close cancels any pending logo lookup.
func (s *EditingSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logoTimer != nil {
		s.logoTimer.Stop()
		s.logoTimer = nil
	}
}

// Profile returns a detached copy of the current state.
func (s *EditingSession) Profile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

func (s *EditingSession) PublishedURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishedURL
}

func (s *EditingSession) PublishState() PublishState {
	return s.publisher.State()
}

// Publish pushes the current profile through the sync protocol.
func (s *EditingSession) Publish(ctx context.Context) (*models.PublishResponse, error) {
	resp, err := s.publisher.Publish(ctx, s.Profile(), s.ownerID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.publishedURL = resp.URL
	s.mu.Unlock()
	return resp, nil
}

// apply swaps in a mutated copy of the profile. The clone keeps mutations
// atomic: readers holding the previous value never observe partial edits.
func (s *EditingSession) apply(mutate func(p *models.Profile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile.Clone()
	mutate(&p)
	s.profile = p
	s.mirrorLocked()
}

// mirrorLocked saves the draft copy. Best effort only.
func (s *EditingSession) mirrorLocked() {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Save(s.profile); err != nil {
		log.Printf("Warning: failed to mirror draft: %v", err)
	}
}

func (s *EditingSession) SetName(v string)     { s.apply(func(p *models.Profile) { p.Name = v }) }
func (s *EditingSession) SetTitle(v string)    { s.apply(func(p *models.Profile) { p.Title = v }) }
func (s *EditingSession) SetLocation(v string) { s.apply(func(p *models.Profile) { p.Location = v }) }
func (s *EditingSession) SetCVURL(v string)    { s.apply(func(p *models.Profile) { p.CVURL = v }) }
func (s *EditingSession) SetPhone(v string)    { s.apply(func(p *models.Profile) { p.Phone = v }) }

func (s *EditingSession) SetEmail(address, kind string) {
	if kind != "personal" {
		kind = "work"
	}
	s.apply(func(p *models.Profile) {
		p.Email = address
		p.EmailKind = kind
	})
}

// SetCompany updates the company name and schedules the debounced logo
// lookup. A follow-up edit within the quiet period discards the pending
// lookup and starts a fresh one.
func (s *EditingSession) SetCompany(v string) {
	s.apply(func(p *models.Profile) { p.Company = v })
	s.scheduleLogoLookup(v)
}

func (s *EditingSession) SetStatusPreset(preset models.StatusPreset) {
	s.apply(func(p *models.Profile) {
		p.Status = models.Status{Label: preset.Label, Kind: preset.Kind}
	})
}

// SetCustomStatus truncates at the display cap rather than rejecting;
// the form enforces the same limit, this is the model-side guarantee.
func (s *EditingSession) SetCustomStatus(label string) {
	label = models.TruncateStatusLabel(label)
	s.apply(func(p *models.Profile) {
		p.Status = models.Status{Label: label, Kind: "custom"}
	})
}

// SetPhoto replaces the photo and resets the focal point to the default
// anchor for the new image.
func (s *EditingSession) SetPhoto(ref string) {
	s.apply(func(p *models.Profile) {
		p.Photo = ref
		p.FocalPoint = models.DefaultFocalPoint
	})
}

func (s *EditingSession) ClearPhoto() {
	s.apply(func(p *models.Profile) {
		p.Photo = ""
		p.FocalPoint = models.DefaultFocalPoint
	})
}

func (s *EditingSession) SetFocalPoint(x, y int) {
	s.apply(func(p *models.Profile) {
		p.FocalPoint = models.FocalPoint{
			X: clampInt(x, 0, 100),
			Y: clampInt(y, 0, 100),
		}
	})
}

func (s *EditingSession) SetShowImage(v bool) {
	s.apply(func(p *models.Profile) { p.ShowImage = v })
}

func (s *EditingSession) SetPalette(id string) {
	s.apply(func(p *models.Profile) { p.PaletteID = id })
}

func (s *EditingSession) SetCardSize(key string) {
	s.apply(func(p *models.Profile) { p.CardSize = key })
}

func (s *EditingSession) SetCustomDimensions(width, height int) {
	s.apply(func(p *models.Profile) {
		p.CardSize = "custom"
		p.CustomWidth = clampInt(width, models.MinCustomWidth, models.MaxCustomWidth)
		p.CustomHeight = clampInt(height, models.MinCustomHeight, models.MaxCustomHeight)
	})
}

// SetCompanyLogo installs a user-supplied logo. An embedded (uploaded) logo
// blocks later auto-resolution from overwriting it.
func (s *EditingSession) SetCompanyLogo(ref string) {
	s.apply(func(p *models.Profile) { p.CompanyLogo = ref })
}

func (s *EditingSession) AddSocial(link models.SocialLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.profile.Socials) >= models.MaxSocialLinks {
		return ErrSocialLimit
	}
	p := s.profile.Clone()
	p.Socials = append(p.Socials, link)
	s.profile = p
	s.mirrorLocked()
	return nil
}

func (s *EditingSession) RemoveSocial(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile.Clone()
	for i, link := range p.Socials {
		if link.ID == id {
			p.Socials = append(p.Socials[:i], p.Socials[i+1:]...)
			s.profile = p
			s.mirrorLocked()
			return nil
		}
	}
	return ErrSocialNotFound
}

func (s *EditingSession) UpdateSocialHref(id, href string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile.Clone()
	for i := range p.Socials {
		if p.Socials[i].ID == id {
			p.Socials[i].Href = href
			s.profile = p
			s.mirrorLocked()
			return nil
		}
	}
	return ErrSocialNotFound
}

// SetSocialNested toggles the fan-out flag. The free tier allows one nested
// link per card, enforced here rather than only in the form.
func (s *EditingSession) SetSocialNested(id string, nested bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile.Clone()
	idx := -1
	nestedCount := 0
	for i := range p.Socials {
		if p.Socials[i].ID == id {
			idx = i
		} else if p.Socials[i].IsNested {
			nestedCount++
		}
	}
	if idx == -1 {
		return ErrSocialNotFound
	}
	if nested && nestedCount >= models.MaxNestedLinks {
		return ErrNestedSlotTaken
	}
	p.Socials[idx].IsNested = nested
	if !nested {
		p.Socials[idx].NestedIcons = nil
	}
	s.profile = p
	s.mirrorLocked()
	return nil
}

func (s *EditingSession) AddNestedIcon(socialID string, icon models.NestedIcon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile.Clone()
	for i := range p.Socials {
		if p.Socials[i].ID != socialID {
			continue
		}
		if !p.Socials[i].IsNested {
			return ErrSocialNotFound
		}
		if len(p.Socials[i].NestedIcons) >= models.MaxNestedIcons {
			return ErrNestedIconLimit
		}
		p.Socials[i].NestedIcons = append(p.Socials[i].NestedIcons, icon)
		s.profile = p
		s.mirrorLocked()
		return nil
	}
	return ErrSocialNotFound
}

func (s *EditingSession) RemoveNestedIcon(socialID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile.Clone()
	for i := range p.Socials {
		if p.Socials[i].ID != socialID {
			continue
		}
		icons := p.Socials[i].NestedIcons
		if index < 0 || index >= len(icons) {
			return ErrSocialNotFound
		}
		p.Socials[i].NestedIcons = append(icons[:index], icons[index+1:]...)
		s.profile = p
		s.mirrorLocked()
		return nil
	}
	return ErrSocialNotFound
}

// scheduleLogoLookup restarts the quiet-period timer with the company value
// captured at schedule time. At most one timer is pending per session.
func (s *EditingSession) scheduleLogoLookup(company string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logos == nil {
		return
	}
	if s.logoTimer != nil {
		s.logoTimer.Stop()
	}
	if company == "" || models.IsEmbeddedImage(s.profile.CompanyLogo) {
		s.logoTimer = nil
		return
	}
	s.logoTimer = time.AfterFunc(s.debounce, func() {
		s.resolveLogo(company)
	})
}

// resolveLogo runs after the quiet period. The captured company value is
// compared against the live one before and after the probe so a superseded
// lookup never overwrites a newer edit.
func (s *EditingSession) resolveLogo(company string) {
	s.mu.Lock()
	stale := s.profile.Company != company || models.IsEmbeddedImage(s.profile.CompanyLogo)
	s.mu.Unlock()
	if stale {
		return
	}

	logoURL, found := s.logos.Resolve(context.Background(), company)
	if !found {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.Company != company || models.IsEmbeddedImage(s.profile.CompanyLogo) {
		return
	}
	p := s.profile.Clone()
	p.CompanyLogo = logoURL
	s.profile = p
	s.mirrorLocked()
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
