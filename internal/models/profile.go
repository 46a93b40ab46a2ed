package models

import (
	"strings"
	"unicode/utf8"
)

// Profile is the user-editable card content. All fields are always present in
// the serialized form; optional values are empty strings rather than missing
// keys so documents written by older builds stay readable.
type Profile struct {
	Name     string `json:"name" bson:"name"`
	Title    string `json:"title" bson:"title"`
	Company  string `json:"company" bson:"company,omitempty"`
	Location string `json:"location" bson:"location"`
	CVURL    string `json:"cv_url" bson:"cv_url,omitempty"`

	Email     string `json:"email" bson:"email,omitempty"`
	EmailKind string `json:"email_kind" bson:"email_kind,omitempty"` // "work" or "personal"
	Phone     string `json:"phone" bson:"phone,omitempty"`

	Status Status `json:"status" bson:"status"`

	// Photo is an opaque encoded-image reference: a remote URL, an uploaded
	// file path, or an embedded data URI.
	Photo      string     `json:"photo" bson:"photo,omitempty"`
	FocalPoint FocalPoint `json:"focal_point" bson:"focal_point"`

	CompanyLogo string `json:"company_logo" bson:"company_logo,omitempty"`

	PaletteID    string `json:"palette_id" bson:"palette_id"`
	CardSize     string `json:"card_size" bson:"card_size"` // "sm" | "md" | "lg" | "custom"
	CustomWidth  int    `json:"custom_width" bson:"custom_width,omitempty"`
	CustomHeight int    `json:"custom_height" bson:"custom_height,omitempty"`

	ShowImage bool `json:"show_image" bson:"show_image"`

	Socials []SocialLink `json:"socials" bson:"socials"`
}

// FocalPoint anchors the photo crop. Coordinates are percentages of the
// source image's bounding box, so they stay valid across container resizes.
type FocalPoint struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

type Status struct {
	Label string `json:"label" bson:"label"`
	Kind  string `json:"kind" bson:"kind"` // "work" | "collab" | "custom"
}

type SocialLink struct {
	ID       string `json:"id" bson:"id"`
	Label    string `json:"label" bson:"label"`
	Icon     string `json:"icon" bson:"icon"` // symbolic ref into the icon catalogue
	Href     string `json:"href" bson:"href"` // URL, or mailto: for the email link
	IsNested bool   `json:"is_nested" bson:"is_nested"`
	// NestedIcons is the fan-out group revealed from this link when IsNested.
	NestedIcons []NestedIcon `json:"nested_icons,omitempty" bson:"nested_icons,omitempty"`
}

type NestedIcon struct {
	Icon string `json:"icon" bson:"icon"`
	Href string `json:"href" bson:"href"`
}

const (
	MaxSocialLinks = 4
	MaxNestedIcons = 3
	// MaxNestedLinks is the free-tier cap on how many top-level social links
	// may carry a nested fan-out group. Policy constant, not a technical limit.
	MaxNestedLinks = 1

	MaxStatusLabelLen = 28

	MinCustomWidth  = 200
	MaxCustomWidth  = 800
	MinCustomHeight = 200
	MaxCustomHeight = 900
)

var DefaultFocalPoint = FocalPoint{X: 50, Y: 30}

const DefaultStatusLabel = "Available for work"

// DefaultProfile returns the starting state for a fresh editing session.
func DefaultProfile() Profile {
	return Profile{
		Name:      "Your Name",
		Title:     "Software Developer",
		Location:  "London, UK",
		EmailKind: "work",
		Status:    Status{Label: DefaultStatusLabel, Kind: "work"},
		PaletteID: "light",
		CardSize:  "md",
		ShowImage: true,
		Socials: []SocialLink{
			{ID: "email", Label: "Email", Icon: "email", Href: "mailto:"},
			{ID: "github", Label: "GitHub", Icon: "github", Href: "https://github.com/"},
		},
	}
}

// Clone returns an independent deep copy. The editing session replaces the
// whole profile on every mutation, so shared slices must never alias.
func (p Profile) Clone() Profile {
	out := p
	out.Socials = make([]SocialLink, len(p.Socials))
	for i, s := range p.Socials {
		out.Socials[i] = s
		if len(s.NestedIcons) > 0 {
			out.Socials[i].NestedIcons = append([]NestedIcon(nil), s.NestedIcons...)
		} else {
			out.Socials[i].NestedIcons = nil
		}
	}
	return out
}

// ResolveStatusLabel never returns an empty label.
func (p Profile) ResolveStatusLabel() string {
	if p.Status.Label != "" {
		return p.Status.Label
	}
	return DefaultStatusLabel
}

// TruncateStatusLabel caps a label at MaxStatusLabelLen characters. The cap
// counts runes, not bytes, so multi-byte labels are never cut mid-character.
func TruncateStatusLabel(label string) string {
	if utf8.RuneCountInString(label) <= MaxStatusLabelLen {
		return label
	}
	return string([]rune(label)[:MaxStatusLabelLen])
}

// Normalize repairs a profile loaded from an untrusted document so every
// invariant holds: focal point in range, caps enforced, custom dimensions
// clamped, status label bounded. It never rejects; malformed remote data
// degrades to the nearest valid profile.
func (p Profile) Normalize() Profile {
	out := p.Clone()

	out.FocalPoint.X = clampInt(out.FocalPoint.X, 0, 100)
	out.FocalPoint.Y = clampInt(out.FocalPoint.Y, 0, 100)

	if out.CustomWidth != 0 {
		out.CustomWidth = clampInt(out.CustomWidth, MinCustomWidth, MaxCustomWidth)
	}
	if out.CustomHeight != 0 {
		out.CustomHeight = clampInt(out.CustomHeight, MinCustomHeight, MaxCustomHeight)
	}

	if out.Status.Kind == "custom" {
		out.Status.Label = TruncateStatusLabel(out.Status.Label)
	}

	if len(out.Socials) > MaxSocialLinks {
		out.Socials = out.Socials[:MaxSocialLinks]
	}
	nested := 0
	for i := range out.Socials {
		s := &out.Socials[i]
		if len(s.NestedIcons) > MaxNestedIcons {
			s.NestedIcons = s.NestedIcons[:MaxNestedIcons]
		}
		if s.IsNested {
			nested++
			if nested > MaxNestedLinks {
				s.IsNested = false
			}
		}
	}
	return out
}

// IsEmbeddedImage reports whether ref is a locally-supplied image (data URI
// or blob reference) rather than a fetched URL. A custom company logo is
// embedded; an auto-resolved one is a plain URL.
func IsEmbeddedImage(ref string) bool {
	return strings.HasPrefix(ref, "data:image/") || strings.HasPrefix(ref, "blob:")
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
