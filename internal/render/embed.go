package render

import (
	"fmt"

	"github.com/shivangi00/e-business-card-generator/internal/models"
)

// EmbedFormats lists the supported embed snippet flavors.
var EmbedFormats = []string{"HTML", "React", "Vue"}

// EmbedSnippet renders an iframe snippet pointing at a published card URL.
// Unknown formats fall back to HTML. The ?embed=true query parameter on the
// URL signals the card page to suppress header/footer chrome.
func EmbedSnippet(cardURL string, dims models.CardDimensions, format string) string {
	w, h := dims.Width, dims.Height
	switch format {
	case "React":
		return fmt.Sprintf(
			"<iframe\n  src=\"%s\"\n  width={%d} height={%d}\n  style={{ border:0, borderRadius:18, overflow:\"hidden\", display:\"block\" }}\n  loading=\"lazy\" title=\"eCard\"\n/>",
			cardURL, w, h)
	case "Vue":
		return fmt.Sprintf(
			"<iframe\n  :src=\"'%s'\" :width=\"%d\" :height=\"%d\"\n  style=\"border:0;border-radius:18px;overflow:hidden;display:block;\"\n  loading=\"lazy\" title=\"eCard\"\n/>",
			cardURL, w, h)
	default:
		return fmt.Sprintf(
			"<iframe\n  src=\"%s\"\n  width=\"%d\" height=\"%d\"\n  style=\"border:0;border-radius:18px;overflow:hidden;display:block;\"\n  loading=\"lazy\" title=\"eCard\"\n></iframe>",
			cardURL, w, h)
	}
}
