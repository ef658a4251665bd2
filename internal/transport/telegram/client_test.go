package telegram

import (
	"strings"
	"testing"
	"time"
)

func TestSplitMessageShortTextIsUntouched(t *testing.T) {
	parts := SplitMessage("hello world", 100)
	if len(parts) != 1 || parts[0] != "hello world" {
		t.Errorf("parts = %q", parts)
	}
}

func TestSplitMessagePrefersParagraphBreaks(t *testing.T) {
	text := strings.Repeat("a", 60) + "\n\n" + strings.Repeat("b", 60)
	parts := SplitMessage(text, 100)
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if !strings.HasPrefix(parts[0], "a") || strings.Contains(parts[0], "b") {
		t.Errorf("part 0 crosses the paragraph break: %q", parts[0])
	}
}

func TestSplitMessageHardCutsUnbrokenText(t *testing.T) {
	text := strings.Repeat("x", 250)
	parts := SplitMessage(text, 100)
	if len(parts) != 3 {
		t.Fatalf("parts = %d, want 3", len(parts))
	}
	total := 0
	for _, p := range parts {
		if len(p) > 100 {
			t.Errorf("part exceeds limit: %d", len(p))
		}
		total += len(p)
	}
	if total != 250 {
		t.Errorf("content lost: total = %d", total)
	}
}

func TestSplitMessageEverySentByteKept(t *testing.T) {
	paragraphs := []string{
		"First paragraph with some words in it.",
		"Second paragraph, a little longer, with more words than the first one had.",
		"Third.",
	}
	text := strings.Join(paragraphs, "\n\n")
	parts := SplitMessage(text, 50)

	joined := strings.Join(parts, " ")
	for _, word := range strings.Fields(text) {
		if !strings.Contains(joined, word) {
			t.Errorf("word %q lost in split", word)
		}
	}
}

func TestParseReminderArgs(t *testing.T) {
	cfg, err := parseReminderArgs(1, "9:00 mon wed fri")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Hour != 9 || cfg.Minute != 0 {
		t.Errorf("time = %d:%d", cfg.Hour, cfg.Minute)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(cfg.Days) != len(want) {
		t.Fatalf("days = %v", cfg.Days)
	}
	for i := range want {
		if cfg.Days[i] != want[i] {
			t.Errorf("day %d = %v, want %v", i, cfg.Days[i], want[i])
		}
	}

	cfg, err = parseReminderArgs(1, "20:30 daily")
	if err != nil {
		t.Fatalf("parse daily: %v", err)
	}
	if len(cfg.Days) != 7 {
		t.Errorf("daily days = %d, want 7", len(cfg.Days))
	}

	for _, bad := range []string{"", "mon", "25:00 mon", "9:61 mon", "9:00 blursday"} {
		if _, err := parseReminderArgs(1, bad); err == nil {
			t.Errorf("parse(%q) should fail", bad)
		}
	}
}
