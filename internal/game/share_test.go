package game

import "testing"

func TestShareText(t *testing.T) {
	got := ShareText(12, 25, "avi-trivia.netlify.app")
	want := "🎮 avi-trivia.netlify.app\n\n🥈 Streak: 12\n🥇 Best Streak: 25"
	if got != want {
		t.Errorf("ShareText =\n%q\nwant\n%q", got, want)
	}
}

func TestMedal(t *testing.T) {
	for score, want := range map[int]string{0: "", 1: "🥉 ", 9: "🥉 ", 10: "🥈 ", 19: "🥈 ", 20: "🥇 "} {
		if got := Medal(score); got != want {
			t.Errorf("Medal(%d) = %q, want %q", score, got, want)
		}
	}
}
