package model

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestParsePosition(t *testing.T) {
	convey.Convey("Given raw position tags", t, func() {
		convey.Convey("Then canonical tags parse to themselves", func() {
			for _, pos := range Positions {
				parsed, err := ParsePosition(string(pos))
				convey.So(err, convey.ShouldBeNil)
				convey.So(parsed, convey.ShouldEqual, pos)
			}
		})

		convey.Convey("Then platform spellings normalize", func() {
			cases := map[string]Position{
				"def":  DST,
				"D/ST": DST,
				"pk":   K,
				" qb ": QB,
				"wr":   WR,
			}
			for raw, want := range cases {
				parsed, err := ParsePosition(raw)
				convey.So(err, convey.ShouldBeNil)
				convey.So(parsed, convey.ShouldEqual, want)
			}
		})

		convey.Convey("Then unknown tags are rejected", func() {
			_, err := ParsePosition("LB")
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err, convey.ShouldWrap, ErrUnknownPosition)
		})
	})
}

func TestPositionPredicates(t *testing.T) {
	convey.Convey("Given the closed position set", t, func() {
		convey.Convey("Then flex eligibility covers exactly RB, WR, TE", func() {
			convey.So(RB.IsFlexEligible(), convey.ShouldBeTrue)
			convey.So(WR.IsFlexEligible(), convey.ShouldBeTrue)
			convey.So(TE.IsFlexEligible(), convey.ShouldBeTrue)
			convey.So(QB.IsFlexEligible(), convey.ShouldBeFalse)
			convey.So(K.IsFlexEligible(), convey.ShouldBeFalse)
			convey.So(DST.IsFlexEligible(), convey.ShouldBeFalse)
		})

		convey.Convey("Then Valid rejects tags outside the set", func() {
			convey.So(Position("FLEX").Valid(), convey.ShouldBeFalse)
			convey.So(Position("").Valid(), convey.ShouldBeFalse)
		})
	})
}

func TestPlayerValidate(t *testing.T) {
	convey.Convey("Given a player", t, func() {
		valid := Player{ID: "p1", Name: "Test Player", Position: RB, Team: "SF"}

		convey.Convey("Then a well-formed player passes", func() {
			convey.So(valid.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then a missing id fails", func() {
			p := valid
			p.ID = "  "
			convey.So(p.Validate(), convey.ShouldWrap, ErrInvalidPlayer)
		})

		convey.Convey("Then an unknown position fails", func() {
			p := valid
			p.Position = "LB"
			convey.So(p.Validate(), convey.ShouldWrap, ErrUnknownPosition)
		})
	})
}

func TestRosterValidate(t *testing.T) {
	convey.Convey("Given a roster", t, func() {
		players := []Player{
			{ID: "p1", Name: "A", Position: QB},
			{ID: "p2", Name: "B", Position: RB},
		}
		roster := Roster{TeamID: "team-1", Players: players}

		convey.Convey("Then a well-formed roster passes", func() {
			convey.So(roster.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then a missing team id fails", func() {
			r := roster
			r.TeamID = ""
			convey.So(r.Validate(), convey.ShouldWrap, ErrInvalidRoster)
		})

		convey.Convey("Then duplicate player ids fail", func() {
			r := Roster{TeamID: "team-1", Players: []Player{
				{ID: "p1", Position: QB},
				{ID: "p1", Position: RB},
			}}
			convey.So(r.Validate(), convey.ShouldWrap, ErrInvalidRoster)
		})

		convey.Convey("Then a roster over the size cap fails", func() {
			big := Roster{TeamID: "team-1"}
			for i := 0; i < MaxRosterSize+1; i++ {
				big.Players = append(big.Players, Player{ID: string(rune('a' + i)), Position: RB})
			}
			convey.So(big.Validate(), convey.ShouldWrap, ErrInvalidRoster)
		})
	})
}

func TestProjectionValidate(t *testing.T) {
	convey.Convey("Given a projection record", t, func() {
		valid := Projection{Slug: "test-player", Name: "Test Player", Position: WR, Rank: 1, ROSPoints: 100}

		convey.Convey("Then a well-formed record passes", func() {
			convey.So(valid.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then a missing slug fails", func() {
			pr := valid
			pr.Slug = ""
			convey.So(pr.Validate(), convey.ShouldWrap, ErrInvalidProjection)
		})

		convey.Convey("Then a zero rank fails", func() {
			pr := valid
			pr.Rank = 0
			convey.So(pr.Validate(), convey.ShouldWrap, ErrInvalidProjection)
		})

		convey.Convey("Then negative points fail", func() {
			pr := valid
			pr.ROSPoints = -1
			convey.So(pr.Validate(), convey.ShouldWrap, ErrInvalidProjection)
		})
	})
}
