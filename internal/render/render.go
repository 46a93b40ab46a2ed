// Package render holds the pure projection rules the view layer consumes:
// crop origin, icon visibility caps, fan-out grouping, and card geometry.
// Nothing here touches the network or mutates a profile.
package render

import (
	"github.com/shivangi00/e-business-card-generator/internal/models"
)

// CropPosition is a CSS-agnostic crop origin, both axes in percent of the
// source image.
type CropPosition struct {
	OriginXPercent int `json:"origin_x_percent"`
	OriginYPercent int `json:"origin_y_percent"`
}

// CroppedImagePosition maps the stored focal point to a crop origin. Values
// outside [0,100] are clamped rather than rejected.
func CroppedImagePosition(focal models.FocalPoint) CropPosition {
	return CropPosition{
		OriginXPercent: clamp(focal.X, 0, 100),
		OriginYPercent: clamp(focal.Y, 0, 100),
	}
}

// VisibleSocials truncates at the display cap. Stored documents may predate
// the cap, so the projection enforces it again.
func VisibleSocials(p models.Profile) []models.SocialLink {
	socials := p.Socials
	if len(socials) > models.MaxSocialLinks {
		socials = socials[:models.MaxSocialLinks]
	}
	out := make([]models.SocialLink, len(socials))
	copy(out, socials)
	return out
}

// FanOutIcons returns the nested icon group for a social link in insertion
// order, capped. Empty unless the link is flagged nested.
func FanOutIcons(s models.SocialLink) []models.NestedIcon {
	if !s.IsNested || len(s.NestedIcons) == 0 {
		return nil
	}
	icons := s.NestedIcons
	if len(icons) > models.MaxNestedIcons {
		icons = icons[:models.MaxNestedIcons]
	}
	out := make([]models.NestedIcon, len(icons))
	copy(out, icons)
	return out
}

// Frame is the geometry the view needs to lay out one card.
type Frame struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	PhotoHeight int             `json:"photo_height"`
	ShowPhoto   bool            `json:"show_photo"`
	Crop        CropPosition    `json:"crop"`
	Palette     models.Palette  `json:"palette"`
	StatusLabel string          `json:"status_label"`
}

// ProjectFrame computes the full frame for a profile. A missing photo (or
// showImage off) collapses the photo band to zero height; the projection is
// total and never fails on a partial profile.
func ProjectFrame(p models.Profile) Frame {
	dims := p.ResolveSize()
	f := Frame{
		Width:       dims.Width,
		Height:      dims.Height,
		Palette:     p.ResolvePalette(),
		StatusLabel: p.ResolveStatusLabel(),
	}
	if p.ShowImage && p.Photo != "" {
		f.ShowPhoto = true
		f.PhotoHeight = dims.PhotoHeight
		f.Crop = CroppedImagePosition(p.FocalPoint)
	}
	return f
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
