package render

import (
	"strings"
	"testing"

	"github.com/shivangi00/e-business-card-generator/internal/models"
)

func TestCroppedImagePosition(t *testing.T) {
	tests := []struct {
		name  string
		focal models.FocalPoint
		want  CropPosition
	}{
		{"default anchor", models.FocalPoint{X: 50, Y: 30}, CropPosition{50, 30}},
		{"clamped low", models.FocalPoint{X: -5, Y: -100}, CropPosition{0, 0}},
		{"clamped high", models.FocalPoint{X: 110, Y: 200}, CropPosition{100, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CroppedImagePosition(tt.focal); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVisibleSocialsCap(t *testing.T) {
	p := models.Profile{}
	for i := 0; i < models.MaxSocialLinks+2; i++ {
		p.Socials = append(p.Socials, models.SocialLink{ID: string(rune('a' + i))})
	}

	got := VisibleSocials(p)
	if len(got) != models.MaxSocialLinks {
		t.Fatalf("expected %d visible socials, got %d", models.MaxSocialLinks, len(got))
	}
	// First-added wins, order preserved.
	for i, s := range got {
		if s.ID != string(rune('a'+i)) {
			t.Errorf("position %d: got %q", i, s.ID)
		}
	}

	// The result is detached from the profile.
	got[0].Href = "mutated"
	if p.Socials[0].Href == "mutated" {
		t.Error("VisibleSocials returned an aliased slice")
	}
}

func TestFanOutIcons(t *testing.T) {
	icons := []models.NestedIcon{
		{Icon: "github", Href: "1"},
		{Icon: "gitlab", Href: "2"},
		{Icon: "codepen", Href: "3"},
		{Icon: "website", Href: "4"},
	}

	s := models.SocialLink{IsNested: false, NestedIcons: icons}
	if got := FanOutIcons(s); got != nil {
		t.Errorf("non-nested link should fan out nothing, got %d icons", len(got))
	}

	s.IsNested = true
	got := FanOutIcons(s)
	if len(got) != models.MaxNestedIcons {
		t.Fatalf("expected cap of %d, got %d", models.MaxNestedIcons, len(got))
	}
	for i, ic := range got {
		if ic.Href != icons[i].Href {
			t.Errorf("insertion order broken at %d: got %q", i, ic.Href)
		}
	}
}

func TestProjectFrame(t *testing.T) {
	p := models.DefaultProfile()
	p.Photo = "/uploads/me.jpg"
	p.FocalPoint = models.FocalPoint{X: 40, Y: 60}

	f := ProjectFrame(p)
	if !f.ShowPhoto {
		t.Fatal("expected photo band")
	}
	if f.PhotoHeight == 0 {
		t.Error("photo band should have height")
	}
	if f.Crop != (CropPosition{40, 60}) {
		t.Errorf("crop = %+v", f.Crop)
	}
	if f.Palette.ID != "light" {
		t.Errorf("palette = %q", f.Palette.ID)
	}
	if f.StatusLabel != models.DefaultStatusLabel {
		t.Errorf("status = %q", f.StatusLabel)
	}
}

func TestProjectFrameCollapsesPhotoBand(t *testing.T) {
	// No photo set.
	p := models.DefaultProfile()
	f := ProjectFrame(p)
	if f.ShowPhoto || f.PhotoHeight != 0 {
		t.Errorf("missing photo should collapse the band: %+v", f)
	}

	// Photo set but hidden.
	p.Photo = "/uploads/me.jpg"
	p.ShowImage = false
	f = ProjectFrame(p)
	if f.ShowPhoto || f.PhotoHeight != 0 {
		t.Errorf("hidden photo should collapse the band: %+v", f)
	}
}

func TestEmbedSnippet(t *testing.T) {
	dims := models.Profile{CardSize: "md"}.ResolveSize()
	url := "https://cards.example/card/abc123?embed=true"

	html := EmbedSnippet(url, dims, "HTML")
	if !strings.Contains(html, url) || !strings.Contains(html, `width="350"`) {
		t.Errorf("html snippet malformed:\n%s", html)
	}
	if !strings.Contains(html, "</iframe>") {
		t.Error("html snippet should close the iframe tag")
	}

	react := EmbedSnippet(url, dims, "React")
	if !strings.Contains(react, "width={350}") {
		t.Errorf("react snippet should use JSX props:\n%s", react)
	}

	vue := EmbedSnippet(url, dims, "Vue")
	if !strings.Contains(vue, ":width=\"350\"") {
		t.Errorf("vue snippet should use bound attributes:\n%s", vue)
	}

	// Unknown formats fall back to plain HTML.
	if got := EmbedSnippet(url, dims, "svelte"); got != html {
		t.Error("unknown format should render the html snippet")
	}
}
