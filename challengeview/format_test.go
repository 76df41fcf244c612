package challengeview

import "testing"

func TestFormatElapsed(t *testing.T) {
	now := Instant(1700000000000)

	if got := FormatElapsed(now, now); got != "Just now" {
		t.Errorf("same instant: got %q", got)
	}
	if got := FormatElapsed(now-29*1000, now); got != "Just now" {
		t.Errorf("29s: got %q", got)
	}
	if got := FormatElapsed(now-45*1000, now); got != "45 seconds ago" {
		t.Errorf("45s: got %q", got)
	}
	if got := FormatElapsed(now-60*1000, now); got != "1 minute ago" {
		t.Errorf("1m: got %q", got)
	}
	if got := FormatElapsed(now-5*60*1000, now); got != "5 minutes ago" {
		t.Errorf("5m: got %q", got)
	}
	if got := FormatElapsed(now-3*3600*1000, now); got != "3 hours ago" {
		t.Errorf("3h: got %q", got)
	}

	// Single largest unit only: 3 days 2 hours reads as "3 days ago"
	if got := FormatElapsed(now-(3*86400+2*3600)*1000, now); got != "3 days ago" {
		t.Errorf("3d2h: got %q", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	now := Instant(1700000000000)

	if got := FormatRemaining(now, now); got != "Expired" {
		t.Errorf("deadline == now: got %q", got)
	}
	if got := FormatRemaining(now-1, now); got != "Expired" {
		t.Errorf("past deadline: got %q", got)
	}
	if got := FormatRemaining(now+1, now); got == "Expired" {
		t.Errorf("future deadline reported expired")
	}

	// 90 minutes out: compound hours+minutes
	if got := FormatRemaining(now+90*60*1000, now); got != "1h 30m" {
		t.Errorf("90m: got %q", got)
	}
	// 25 minutes out: minutes only
	if got := FormatRemaining(now+25*60*1000, now); got != "25m" {
		t.Errorf("25m: got %q", got)
	}
	// 2 days 5 hours out: compound days+hours
	if got := FormatRemaining(now+(2*1440+5*60)*60*1000, now); got != "2d 5h" {
		t.Errorf("2d5h: got %q", got)
	}
}
