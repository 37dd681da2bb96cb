package daily

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/timeline/internal/dimension"
)

// PlayEmojis renders each drop as ✅ (correct) or ❤️ (a life lost).
func PlayEmojis(placements []bool) string {
	var b strings.Builder
	for _, ok := range placements {
		if ok {
			b.WriteString("✅")
		} else {
			b.WriteString("❤️")
		}
	}
	return b.String()
}

// ShareText is the copyable summary of one daily result.
func ShareText(date, dimensionName string, placements []bool, url string) string {
	lines := []string{
		"📅 " + date,
		dimension.EmojiFor(dimensionName) + " " + cases.Title(language.Und, cases.NoLower).String(dimensionName),
		PlayEmojis(placements),
	}
	if url != "" {
		lines = append(lines, url)
	}
	return strings.Join(lines, "\n")
}
