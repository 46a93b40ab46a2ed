package models

// Palette is one entry of the fixed, process-wide palette table.
type Palette struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

// ColorPalettes is ordered; the first entry is the fallback for unknown ids.
var ColorPalettes = []Palette{
	{ID: "light", Name: "Light", Background: "#ffffff", Text: "#111827", Accent: "#111827"},
	{ID: "midnight", Name: "Midnight", Background: "#020617", Text: "#f9fafb", Accent: "#38bdf8"},
	{ID: "sunset", Name: "Sunset", Background: "#f97316", Text: "#111827", Accent: "#1f2937"},
}

// ResolvePalette looks up the profile's palette, falling back to the first
// table entry. Never returns a zero palette.
func (p Profile) ResolvePalette() Palette {
	for _, pal := range ColorPalettes {
		if pal.ID == p.PaletteID {
			return pal
		}
	}
	return ColorPalettes[0]
}

// CardDimensions is the renderable geometry for one card size.
type CardDimensions struct {
	Label       string `json:"label"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	PhotoHeight int    `json:"photo_height"`
	NameFont    string `json:"name_font"`
	TitleFont   string `json:"title_font"`
	BodyFont    string `json:"body_font"`
}

const defaultCardSize = "md"

// photoHeightRatio is the share of card height given to the photo band.
const photoHeightRatio = 0.43

var cardSizes = map[string]CardDimensions{
	"sm": {Label: "Small", Width: 300, Height: 320, PhotoHeight: 138, NameFont: "1.25rem", TitleFont: "0.8rem", BodyFont: "0.72rem"},
	"md": {Label: "Medium", Width: 350, Height: 370, PhotoHeight: 159, NameFont: "1.45rem", TitleFont: "0.85rem", BodyFont: "0.75rem"},
	"lg": {Label: "Large", Width: 420, Height: 460, PhotoHeight: 198, NameFont: "1.7rem", TitleFont: "0.95rem", BodyFont: "0.8rem"},
}

// ResolveSize derives the card geometry. Custom dimensions are clamped to the
// documented bounds; unknown preset keys fall back to the medium preset. The
// result is always positive.
func (p Profile) ResolveSize() CardDimensions {
	if p.CardSize == "custom" {
		w := p.CustomWidth
		if w == 0 {
			w = cardSizes[defaultCardSize].Width
		}
		h := p.CustomHeight
		if h == 0 {
			h = cardSizes[defaultCardSize].Height
		}
		w = clampInt(w, MinCustomWidth, MaxCustomWidth)
		h = clampInt(h, MinCustomHeight, MaxCustomHeight)

		dims := cardSizes[defaultCardSize]
		dims.Label = "Custom"
		dims.Width = w
		dims.Height = h
		dims.PhotoHeight = int(float64(h)*photoHeightRatio + 0.5)
		return dims
	}
	if dims, ok := cardSizes[p.CardSize]; ok {
		return dims
	}
	return cardSizes[defaultCardSize]
}

// StatusPreset is a selectable availability status.
type StatusPreset struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

var StatusPresets = []StatusPreset{
	{Label: "Available for work", Kind: "work"},
	{Label: "Open to collaboration", Kind: "collab"},
}

// IconGroup is one section of the fixed icon catalogue.
type IconGroup struct {
	Group string     `json:"group"`
	Icons []CardIcon `json:"icons"`
}

type CardIcon struct {
	Ref   string `json:"ref"`
	Label string `json:"label"`
}

var IconCatalogue = []IconGroup{
	{Group: "Communication", Icons: []CardIcon{
		{Ref: "email", Label: "Email"},
		{Ref: "phone", Label: "Phone"},
		{Ref: "whatsapp", Label: "WhatsApp"},
		{Ref: "telegram", Label: "Telegram"},
		{Ref: "discord", Label: "Discord"},
		{Ref: "slack", Label: "Slack"},
	}},
	{Group: "Portfolio & Code", Icons: []CardIcon{
		{Ref: "website", Label: "Website"},
		{Ref: "github", Label: "GitHub"},
		{Ref: "gitlab", Label: "GitLab"},
		{Ref: "codepen", Label: "CodePen"},
		{Ref: "stackoverflow", Label: "Stack Overflow"},
		{Ref: "replit", Label: "Replit"},
	}},
	{Group: "Social", Icons: []CardIcon{
		{Ref: "linkedin", Label: "LinkedIn"},
		{Ref: "twitter", Label: "X / Twitter"},
		{Ref: "instagram", Label: "Instagram"},
		{Ref: "threads", Label: "Threads"},
		{Ref: "facebook", Label: "Facebook"},
		{Ref: "tiktok", Label: "TikTok"},
		{Ref: "bluesky", Label: "Bluesky"},
		{Ref: "mastodon", Label: "Mastodon"},
	}},
	{Group: "Creative & Design", Icons: []CardIcon{
		{Ref: "figma", Label: "Figma"},
		{Ref: "dribbble", Label: "Dribbble"},
		{Ref: "behance", Label: "Behance"},
		{Ref: "medium", Label: "Medium"},
		{Ref: "substack", Label: "Substack"},
		{Ref: "youtube", Label: "YouTube"},
		{Ref: "twitch", Label: "Twitch"},
		{Ref: "spotify", Label: "Spotify"},
	}},
	{Group: "Professional", Icons: []CardIcon{
		{Ref: "cv", Label: "CV / Resume"},
		{Ref: "calendar", Label: "Calendar"},
		{Ref: "coffee", Label: "Buy me a coffee"},
		{Ref: "patreon", Label: "Patreon"},
		{Ref: "producthunt", Label: "ProductHunt"},
		{Ref: "angellist", Label: "AngelList"},
	}},
}

// KnownIcon reports whether ref exists in the catalogue.
func KnownIcon(ref string) bool {
	for _, g := range IconCatalogue {
		for _, ic := range g.Icons {
			if ic.Ref == ref {
				return true
			}
		}
	}
	return false
}
