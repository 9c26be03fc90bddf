package preprocess

import (
	"testing"

	"github.com/pable/go-mlb-metrics/internal/model"
)

// mkEvent builds a raw pitch row with sane defaults for fields a given
// test doesn't care about.
func mkEvent(batter int, date string, ab int, events string) model.RawEvent {
	return model.RawEvent{
		Batter:       batter,
		GameDate:     date,
		AtBatNumber:  ab,
		Events:       events,
		WOBAValue:    "0.0",
		WOBADenom:    "1",
		InningTopBot: "Bot",
		HomeTeam:     "NYY",
		AwayTeam:     "BOS",
	}
}

func TestPlateAppearances_DropsMidAtBatPitches(t *testing.T) {
	raw := []model.RawEvent{
		mkEvent(1, "2024-05-01", 3, "single"),
		mkEvent(1, "2024-05-01", 3, ""),   // ball in the same at-bat
		mkEvent(1, "2024-05-01", 4, "  "), // whitespace-only marker
		mkEvent(1, "2024-05-01", 5, "strikeout"),
	}
	pas := PlateAppearances(raw)
	if len(pas) != 2 {
		t.Fatalf("expected 2 plate appearances, got %d", len(pas))
	}
}

func TestPlateAppearances_OrderedByDateThenAtBat(t *testing.T) {
	raw := []model.RawEvent{
		mkEvent(1, "2024-05-02", 1, "walk"),
		mkEvent(1, "2024-05-01", 9, "single"),
		mkEvent(1, "2024-05-01", 2, "double"),
		mkEvent(1, "2024-05-01", 11, "groundout"),
	}
	pas := PlateAppearances(raw)

	want := []struct {
		date string
		ab   int
	}{
		{"2024-05-01", 2},
		{"2024-05-01", 9},
		{"2024-05-01", 11},
		{"2024-05-02", 1},
	}
	for i, w := range want {
		if pas[i].GameDate != w.date || pas[i].AtBatNumber != w.ab {
			t.Errorf("position %d: got (%s, %d), want (%s, %d)",
				i, pas[i].GameDate, pas[i].AtBatNumber, w.date, w.ab)
		}
	}
}

func TestPlateAppearances_NumericCoercion(t *testing.T) {
	ev := mkEvent(1, "2024-05-01", 1, "single")
	ev.WOBAValue = "not-a-number"
	ev.WOBADenom = ""

	pas := PlateAppearances([]model.RawEvent{ev})
	if len(pas) != 1 {
		t.Fatalf("expected 1 PA, got %d", len(pas))
	}
	if pas[0].WOBAValue != 0 {
		t.Errorf("unparseable realized value should coerce to 0, got %f", pas[0].WOBAValue)
	}
	if pas[0].WOBADenom != 0 {
		t.Errorf("missing weight should coerce to 0, got %f", pas[0].WOBADenom)
	}
}

func TestPlateAppearances_XWOBAFallback(t *testing.T) {
	battedBall := mkEvent(1, "2024-05-01", 1, "single")
	battedBall.WOBAValue = "0.9"
	battedBall.EstimatedWOBA = "0.42"

	strikeout := mkEvent(1, "2024-05-01", 2, "strikeout")
	strikeout.WOBAValue = "0.0"
	strikeout.EstimatedWOBA = "" // no batted-ball estimate

	pas := PlateAppearances([]model.RawEvent{battedBall, strikeout})

	if pas[0].XWOBAValue != 0.42 {
		t.Errorf("batted ball should use the estimate: got %f, want 0.42", pas[0].XWOBAValue)
	}
	if pas[1].XWOBAValue != 0.0 {
		t.Errorf("strikeout should fall back to realized value: got %f, want 0", pas[1].XWOBAValue)
	}
}

func TestGroupByBatter(t *testing.T) {
	raw := []model.RawEvent{
		mkEvent(1, "2024-05-01", 1, "single"),
		mkEvent(2, "2024-05-01", 2, "walk"),
		mkEvent(1, "2024-05-01", 3, "strikeout"),
	}
	groups := GroupByBatter(PlateAppearances(raw))

	if len(groups) != 2 {
		t.Fatalf("expected 2 batters, got %d", len(groups))
	}
	if len(groups[1]) != 2 || len(groups[2]) != 1 {
		t.Errorf("unexpected group sizes: batter1=%d batter2=%d", len(groups[1]), len(groups[2]))
	}
	if groups[1][0].AtBatNumber != 1 || groups[1][1].AtBatNumber != 3 {
		t.Errorf("batter 1 group out of order: %+v", groups[1])
	}
}

func TestTeamLookup_TopBotConvention(t *testing.T) {
	top := mkEvent(1, "2024-05-01", 1, "single")
	top.InningTopBot = "Top" // batter is on the away side

	bot := mkEvent(2, "2024-05-01", 2, "walk")
	bot.InningTopBot = "Bot" // batter is on the home side

	teams := TeamLookup([]model.RawEvent{top, bot})
	if teams[1] != "BOS" {
		t.Errorf("top-of-inning batter should map to away team: got %q, want BOS", teams[1])
	}
	if teams[2] != "NYY" {
		t.Errorf("bottom-of-inning batter should map to home team: got %q, want NYY", teams[2])
	}
}

func TestTeamLookup_LastEventWinsAfterTrade(t *testing.T) {
	before := mkEvent(1, "2024-04-01", 1, "single")
	before.InningTopBot = "Top"
	before.AwayTeam = "OAK"

	after := mkEvent(1, "2024-08-01", 1, "double")
	after.InningTopBot = "Bot"
	after.HomeTeam = "LAD"

	// Input order reversed on purpose: the lookup must order by date itself.
	teams := TeamLookup([]model.RawEvent{after, before})
	if teams[1] != "LAD" {
		t.Errorf("expected most recent team LAD, got %q", teams[1])
	}
}

func TestTeamLookup_IgnoresMidAtBatPitches(t *testing.T) {
	pa := mkEvent(1, "2024-05-01", 1, "single")
	pa.InningTopBot = "Top"
	pa.AwayTeam = "BOS"

	pitch := mkEvent(1, "2024-09-01", 1, "")
	pitch.InningTopBot = "Bot"
	pitch.HomeTeam = "NYY"

	teams := TeamLookup([]model.RawEvent{pa, pitch})
	if teams[1] != "BOS" {
		t.Errorf("non-PA pitch should not set the team: got %q, want BOS", teams[1])
	}
}
