package models

import "strings"

// UpdateProfileRequest carries a partial edit: every field is optional, only
// the non-nil ones are applied.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Title    *string `json:"title,omitempty"`
	Company  *string `json:"company,omitempty"`
	Location *string `json:"location,omitempty"`
	CVURL    *string `json:"cv_url,omitempty"`

	Email     *string `json:"email,omitempty"`
	EmailKind *string `json:"email_kind,omitempty"`
	Phone     *string `json:"phone,omitempty"`

	StatusLabel *string `json:"status_label,omitempty"`
	StatusKind  *string `json:"status_kind,omitempty"`

	Photo      *string `json:"photo,omitempty"`
	ClearPhoto bool    `json:"clear_photo,omitempty"`
	FocalX     *int    `json:"focal_x,omitempty"`
	FocalY     *int    `json:"focal_y,omitempty"`
	ShowImage  *bool   `json:"show_image,omitempty"`

	CompanyLogo *string `json:"company_logo,omitempty"`

	PaletteID    *string `json:"palette_id,omitempty"`
	CardSize     *string `json:"card_size,omitempty"`
	CustomWidth  *int    `json:"custom_width,omitempty"`
	CustomHeight *int    `json:"custom_height,omitempty"`
}

func (r *UpdateProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.EmailKind != nil && *r.EmailKind != "work" && *r.EmailKind != "personal" {
		errors["email_kind"] = "Email kind must be work or personal"
	}
	if r.StatusKind != nil {
		switch *r.StatusKind {
		case "work", "collab", "custom":
		default:
			errors["status_kind"] = "Status kind must be work, collab or custom"
		}
	}
	if r.CardSize != nil {
		switch *r.CardSize {
		case "sm", "md", "lg", "custom":
		default:
			errors["card_size"] = "Card size must be sm, md, lg or custom"
		}
	}
	if r.FocalX != nil && (*r.FocalX < 0 || *r.FocalX > 100) {
		errors["focal_x"] = "Focal point must be between 0 and 100"
	}
	if r.FocalY != nil && (*r.FocalY < 0 || *r.FocalY > 100) {
		errors["focal_y"] = "Focal point must be between 0 and 100"
	}

	return errors
}

type AddSocialRequest struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Href  string `json:"href"`
}

func (r *AddSocialRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Icon) == "" {
		errors["icon"] = "Icon is required"
	} else if !KnownIcon(r.Icon) {
		errors["icon"] = "Unknown icon"
	}
	if strings.TrimSpace(r.Href) == "" {
		errors["href"] = "Link is required"
	}

	return errors
}

type UpdateSocialRequest struct {
	Href     *string `json:"href,omitempty"`
	IsNested *bool   `json:"is_nested,omitempty"`
}

type AddNestedIconRequest struct {
	Icon string `json:"icon"`
	Href string `json:"href"`
}

func (r *AddNestedIconRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Icon) == "" {
		errors["icon"] = "Icon is required"
	} else if !KnownIcon(r.Icon) {
		errors["icon"] = "Unknown icon"
	}
	if strings.TrimSpace(r.Href) == "" {
		errors["href"] = "Link is required"
	}

	return errors
}
