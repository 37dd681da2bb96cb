package game

import (
	"strconv"
	"strings"
)

// Medal ranks a score: gold from 20, silver from 10, bronze from 1.
func Medal(score int) string {
	switch {
	case score >= 20:
		return "🥇 "
	case score >= 10:
		return "🥈 "
	case score >= 1:
		return "🥉 "
	}
	return ""
}

// ShareText formats a finished regular game for sharing.
func ShareText(score, highScore int, site string) string {
	var b strings.Builder
	if site != "" {
		b.WriteString("🎮 " + site + "\n\n")
	}
	b.WriteString(Medal(score) + "Streak: " + strconv.Itoa(score) + "\n")
	b.WriteString(Medal(highScore) + "Best Streak: " + strconv.Itoa(highScore))
	return b.String()
}
