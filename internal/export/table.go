package export

import (
	"fmt"
	"strings"

	"github.com/manustarter/manustarter/internal/core/testcase"

	"github.com/muesli/reflow/wordwrap"
)

const (
	minWidth     = 40
	defaultWidth = 100
)

// RenderTable renders c as one bordered card per test case, wrapped to width.
// A width of zero uses the default terminal width.
func RenderTable(title string, c *testcase.Collection, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	width = max(width, minWidth)
	inner := width - 4

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}

	for _, tc := range c.TestCases {
		var card strings.Builder
		card.WriteString(idStyle.Render(tc.ID))
		card.WriteString("\n")
		card.WriteString(textStyle.Render(wordwrap.String(tc.Description, inner)))
		card.WriteString("\n\n")
		card.WriteString(labelStyle.Render("Preconditions"))
		card.WriteString("\n")
		card.WriteString(textStyle.Render(wordwrap.String(tc.Preconditions, inner)))
		card.WriteString("\n\n")
		card.WriteString(labelStyle.Render("Steps"))
		card.WriteString("\n")
		card.WriteString(textStyle.Render(wordwrap.String(tc.Steps, inner)))

		b.WriteString(cardStyle.Width(width - 2).Render(card.String()))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(fmt.Sprintf("%d test cases", c.TotalCount)))
	b.WriteString("\n")
	return b.String()
}
