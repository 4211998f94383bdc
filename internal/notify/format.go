package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/Migueldelg/RadarOfertas/internal/catalog"
	"github.com/Migueldelg/RadarOfertas/internal/deal"
)

// FormatMessage renders the HTML caption published to the channel.
func FormatMessage(p deal.Product, cat catalog.Category) string {
	emoji := cat.Emoji
	if emoji == "" {
		emoji = "🛍️"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>OFERTA %s</b> %s\n\n", emoji, strings.ToUpper(cat.Name), emoji)
	fmt.Fprintf(&b, "📦 <b>%s</b>\n\n", html.EscapeString(p.Title))

	if p.PreviousPrice != "" {
		fmt.Fprintf(&b, "💰 Precio: <s>%s</s> → <b>%s</b>", p.PreviousPrice, p.Price)
		if p.Discount > 0 {
			fmt.Fprintf(&b, " (-%.0f%%)", p.Discount)
		}
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "💰 Precio: <b>%s</b>\n", p.Price)
	}

	if len(p.Variants) > 0 {
		b.WriteString("\n🎨 Otras versiones:\n")
		for _, v := range p.Variants {
			fmt.Fprintf(&b, "  • <a href='%s'>%s</a> — %s", v.DetailURL, html.EscapeString(shortTitle(v.Title)), v.Price)
			if v.Discount > 0 {
				fmt.Fprintf(&b, " (-%.0f%%)", v.Discount)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n🛒 <a href='%s'>Ver en Amazon</a>", p.DetailURL)
	return b.String()
}

func shortTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= 40 {
		return title
	}
	return string(runes[:40]) + "..."
}
