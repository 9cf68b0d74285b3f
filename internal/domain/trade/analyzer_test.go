package trade

import (
	"context"
	"fmt"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
)

// complementaryRosters builds the classic mismatch: team A hoards RBs, team B
// hoards WRs, so RB-for-WR swaps help both.
func complementaryRosters() (model.Roster, model.Roster, map[string]float64) {
	teamA := model.Roster{TeamID: "team-a", Players: []model.Player{
		{ID: "a1", Name: "Back One", Position: model.RB, Team: "SF"},
		{ID: "a2", Name: "Back Two", Position: model.RB, Team: "DAL"},
		{ID: "a3", Name: "Wideout Weak", Position: model.WR, Team: "MIA"},
	}}
	teamB := model.Roster{TeamID: "team-b", Players: []model.Player{
		{ID: "b1", Name: "Wideout One", Position: model.WR, Team: "KC"},
		{ID: "b2", Name: "Wideout Two", Position: model.WR, Team: "GB"},
		{ID: "b3", Name: "Back Weak", Position: model.RB, Team: "NYJ"},
	}}
	values := map[string]float64{
		"a1": 10, "a2": 9, "a3": 1,
		"b1": 10, "b2": 9, "b3": 1,
	}
	return teamA, teamB, values
}

func TestGenerateOneForOne(t *testing.T) {
	convey.Convey("Given complementary RB-heavy and WR-heavy rosters", t, func() {
		slots := league.Slots{RB: 1, WR: 1}
		teamA, teamB, values := complementaryRosters()
		analyzer := NewAnalyzer(slots)
		rosters := []model.Roster{teamA, teamB}

		convey.Convey("When generating 1-for-1 trades for team A", func() {
			proposals, err := analyzer.Generate(context.Background(), teamA, rosters, values, 1, false)

			convey.Convey("Then every cross-position swap of tradeable players is proposed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(proposals, convey.ShouldHaveLength, 4)
				for _, p := range proposals {
					convey.So(p.ScoreMe, convey.ShouldBeGreaterThanOrEqualTo, DefaultMinImprovement)
					convey.So(p.ScoreThem, convey.ShouldBeGreaterThanOrEqualTo, DefaultMinImprovement)
					convey.So(p.OtherTeamID, convey.ShouldEqual, "team-b")
					convey.So(p.AnalysisID, convey.ShouldNotBeEmpty)
				}
			})

			convey.Convey("Then ties break on traded player ids", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(proposals[0].Send[0].Player, convey.ShouldEqual, "Back One")
				convey.So(proposals[0].Receive[0].Player, convey.ShouldEqual, "Wideout One")
				convey.So(proposals[0].ScoreMe, convey.ShouldAlmostEqual, 8)
				convey.So(proposals[0].ScoreThem, convey.ShouldAlmostEqual, 8)
			})

			convey.Convey("Then notes explain the positional swap and balance", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(proposals[0].Notes, convey.ShouldContainSubstring, "You get WR help, they get RB depth")
				convey.So(proposals[0].Notes, convey.ShouldContainSubstring, "Balanced trade benefits both teams equally")
				convey.So(proposals[0].Notes, convey.ShouldContainSubstring, "Thin market at WR")
			})
		})

		convey.Convey("When the same analysis runs twice", func() {
			first, err1 := analyzer.Generate(context.Background(), teamA, rosters, values, 1, false)
			second, err2 := analyzer.Generate(context.Background(), teamA, rosters, values, 1, false)

			convey.Convey("Then the proposal sequences agree exactly", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(len(first), convey.ShouldEqual, len(second))
				for i := range first {
					convey.So(fingerprint(first[i]), convey.ShouldEqual, fingerprint(second[i]))
				}
			})
		})
	})
}

// fingerprint identifies a proposal minus the per-run analysis id.
func fingerprint(p Proposal) string {
	return fmt.Sprintf("%s|%v|%v|%.1f|%.1f|%s", p.OtherTeamID, p.Send, p.Receive, p.ScoreMe, p.ScoreThem, p.Notes)
}

func TestGenerateRejectsOneSidedTrades(t *testing.T) {
	convey.Convey("Given a roster that can only lose value", t, func() {
		slots := league.Slots{RB: 1, WR: 1}
		weak := model.Roster{TeamID: "team-a", Players: []model.Player{
			{ID: "a1", Name: "Weak Back", Position: model.RB},
			{ID: "a2", Name: "Weak Wideout", Position: model.WR},
		}}
		strong := model.Roster{TeamID: "team-b", Players: []model.Player{
			{ID: "b1", Name: "Stud Back", Position: model.RB},
			{ID: "b2", Name: "Stud Wideout", Position: model.WR},
		}}
		values := map[string]float64{"a1": 1, "a2": 1, "b1": 10, "b2": 10}
		analyzer := NewAnalyzer(slots)

		proposals, err := analyzer.Generate(context.Background(), weak, []model.Roster{weak, strong}, values, 1, false)

		convey.Convey("Then nothing clears the mutual-benefit threshold", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(proposals, convey.ShouldBeEmpty)
		})
	})
}

func TestGenerateSlotMismatch(t *testing.T) {
	convey.Convey("Given two thin rosters where every swap loses or strands value", t, func() {
		slots := league.Slots{QB: 1, RB: 1}
		teamA := model.Roster{TeamID: "team-a", Players: []model.Player{
			{ID: "a1", Name: "Strong Quarterback", Position: model.QB},
			{ID: "a2", Name: "Strong Back", Position: model.RB},
		}}
		teamB := model.Roster{TeamID: "team-b", Players: []model.Player{
			{ID: "b1", Name: "Lesser Quarterback", Position: model.QB},
			{ID: "b2", Name: "Lesser Back", Position: model.RB},
		}}
		values := map[string]float64{"a1": 15, "a2": 12, "b1": 10, "b2": 8}
		analyzer := NewAnalyzer(slots)

		proposals, err := analyzer.Generate(context.Background(), teamA, []model.Roster{teamA, teamB}, values, 1, false)

		convey.Convey("Then the proposal list is empty", func() {
			// Like-for-like swaps make A strictly worse; cross-position swaps
			// strand a second QB or RB behind a single slot.
			convey.So(err, convey.ShouldBeNil)
			convey.So(proposals, convey.ShouldBeEmpty)
		})
	})
}

func TestGenerateUnevenShapes(t *testing.T) {
	convey.Convey("Given a depth-for-star mismatch", t, func() {
		slots := league.Slots{RB: 1, WR: 1}
		teamA := model.Roster{TeamID: "team-a", Players: []model.Player{
			{ID: "a1", Name: "Back One", Position: model.RB},
			{ID: "a2", Name: "Back Two", Position: model.RB},
			{ID: "a3", Name: "Back Three", Position: model.RB},
			{ID: "a4", Name: "Wideout Weak", Position: model.WR},
		}}
		teamB := model.Roster{TeamID: "team-b", Players: []model.Player{
			{ID: "b1", Name: "Wideout Star", Position: model.WR},
			{ID: "b2", Name: "Wideout Depth", Position: model.WR},
			{ID: "b3", Name: "Back Weak", Position: model.RB},
		}}
		values := map[string]float64{
			"a1": 8, "a2": 7, "a3": 6, "a4": 1,
			"b1": 12, "b2": 11, "b3": 1,
		}
		analyzer := NewAnalyzer(slots)
		rosters := []model.Roster{teamA, teamB}

		convey.Convey("When uneven shapes are allowed", func() {
			proposals, err := analyzer.Generate(context.Background(), teamA, rosters, values, 2, true)

			convey.Convey("Then a 2-for-1 package appears", func() {
				convey.So(err, convey.ShouldBeNil)
				found := false
				for _, p := range proposals {
					if len(p.Send) == 2 && len(p.Receive) == 1 {
						found = true
					}
				}
				convey.So(found, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When uneven shapes are disallowed", func() {
			proposals, err := analyzer.Generate(context.Background(), teamA, rosters, values, 2, false)

			convey.Convey("Then every proposal trades equal player counts", func() {
				convey.So(err, convey.ShouldBeNil)
				for _, p := range proposals {
					convey.So(len(p.Send), convey.ShouldEqual, len(p.Receive))
				}
			})
		})
	})
}

func TestGenerateRosterLimitCheck(t *testing.T) {
	convey.Convey("Given a team whose only QB is its best trade chip", t, func() {
		slots := league.Slots{QB: 1, RB: 1}
		teamA := model.Roster{TeamID: "team-a", Players: []model.Player{
			{ID: "a1", Name: "Only Quarterback", Position: model.QB},
			{ID: "a2", Name: "Back", Position: model.RB},
		}}
		teamB := model.Roster{TeamID: "team-b", Players: []model.Player{
			{ID: "b1", Name: "Other Quarterback", Position: model.QB},
			{ID: "b2", Name: "Stud Back", Position: model.RB},
			{ID: "b3", Name: "Spare Back", Position: model.RB},
		}}
		values := map[string]float64{"a1": 10, "a2": 1, "b1": 2, "b2": 12, "b3": 11}
		rosters := []model.Roster{teamA, teamB}

		convey.Convey("When the limit check is on", func() {
			analyzer := NewAnalyzer(slots)
			proposals, err := analyzer.Generate(context.Background(), teamA, rosters, values, 1, false)

			convey.Convey("Then no proposal strips the roster below a required position", func() {
				convey.So(err, convey.ShouldBeNil)
				for _, p := range proposals {
					for _, sent := range p.Send {
						convey.So(sent.Position == model.QB && p.Receive[0].Position != model.QB, convey.ShouldBeFalse)
					}
				}
			})
		})
	})
}

func TestGenerateRequestValidation(t *testing.T) {
	convey.Convey("Given an analyzer", t, func() {
		analyzer := NewAnalyzer(league.DefaultSlots())
		teamA, teamB, values := complementaryRosters()
		rosters := []model.Roster{teamA, teamB}

		convey.Convey("Then a zero per-side bound is rejected", func() {
			_, err := analyzer.Generate(context.Background(), teamA, rosters, values, 0, false)
			convey.So(err, convey.ShouldWrap, ErrInvalidRequest)
		})

		convey.Convey("Then a per-side bound over the cap is rejected", func() {
			_, err := analyzer.Generate(context.Background(), teamA, rosters, values, MaxPlayersPerSide+1, false)
			convey.So(err, convey.ShouldWrap, ErrInvalidRequest)
		})

		convey.Convey("Then a cancelled context interrupts generation", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := analyzer.Generate(ctx, teamA, rosters, values, 1, false)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Then an invalid opposing roster is rejected", func() {
			bad := model.Roster{TeamID: "", Players: nil}
			_, err := analyzer.Generate(context.Background(), teamA, []model.Roster{teamA, bad}, values, 1, false)
			convey.So(err, convey.ShouldWrap, model.ErrInvalidRoster)
		})
	})
}

func TestGenerateResultCap(t *testing.T) {
	convey.Convey("Given an analyzer capped at three results", t, func() {
		slots := league.Slots{RB: 1, WR: 1}
		teamA, teamB, values := complementaryRosters()
		analyzer := NewAnalyzer(slots, WithMaxResults(3))

		proposals, err := analyzer.Generate(context.Background(), teamA, []model.Roster{teamA, teamB}, values, 1, false)

		convey.Convey("Then the best three proposals survive", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(proposals, convey.ShouldHaveLength, 3)
		})
	})
}
