package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/ui/theme"
)

const bannerArt = `█▀▄▀█ █ █▄ █ █▀▄ █▀ █▀▀ █▀█ █▀█ █▀▀
█ ▀ █ █ █ ▀█ █▄▀ ▄█ █▄▄ █▄█ █▀▀ ██▄`

const bannerCompact = "M I N D S C O P E"

// bannerMinWidth is the narrowest width that fits bannerArt with a margin.
var bannerMinWidth = lipgloss.Width(bannerArt) + 4

// RenderBanner draws the product name, falling back to spaced capitals
// when width cannot hold the block letters. Width 0 always gets the
// compact form.
func RenderBanner(width int) string {
	art := bannerArt
	if width < bannerMinWidth {
		art = bannerCompact
	}
	return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art)
}
