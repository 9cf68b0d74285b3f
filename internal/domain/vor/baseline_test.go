package vor

import (
	"fmt"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
)

// genProjections produces n ranked records at pos with points descending from
// top in fixed steps.
func genProjections(pos model.Position, n int, top, step float64) []model.Projection {
	out := make([]model.Projection, n)
	for i := 0; i < n; i++ {
		out[i] = model.Projection{
			Slug:      fmt.Sprintf("%s-%d", pos, i+1),
			Name:      fmt.Sprintf("%s Player %d", pos, i+1),
			Position:  pos,
			Team:      "SF",
			Rank:      i + 1,
			ROSPoints: top - float64(i)*step,
		}
	}
	return out
}

func TestComputeBaselines(t *testing.T) {
	convey.Convey("Given a standard 12-team league", t, func() {
		slots := league.DefaultSlots()

		convey.Convey("When RB has a deep projection pool", func() {
			// 2 fixed RB slots, 1 FLEX over 3 eligible positions gives a flex
			// share of 0, so demand is 2*12=24 and the buffered index is
			// int(24*1.1)=26.
			projections := genProjections(model.RB, 30, 300, 5)
			baselines, err := ComputeBaselines(projections, slots, 12, 0.1)

			convey.Convey("Then the baseline is the buffered-index player's points", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(baselines[model.RB], convey.ShouldAlmostEqual, 300-5*26)
			})
		})

		convey.Convey("When the pool is shallower than demand", func() {
			// QB demand is 12; buffered index 13 reaches past a 10-deep pool.
			projections := genProjections(model.QB, 10, 200, 5)
			baselines, err := ComputeBaselines(projections, slots, 12, 0.1)

			convey.Convey("Then the last player stands in for replacement level", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(baselines[model.QB], convey.ShouldAlmostEqual, 200-5*9)
			})
		})

		convey.Convey("When a position has no projections at all", func() {
			baselines, err := ComputeBaselines(genProjections(model.RB, 5, 100, 1), slots, 12, 0.1)

			convey.Convey("Then its baseline is zero", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(baselines[model.K], convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When projections arrive unsorted", func() {
			projections := genProjections(model.RB, 30, 300, 5)
			projections[0], projections[29] = projections[29], projections[0]
			baselines, err := ComputeBaselines(projections, slots, 12, 0.1)

			convey.Convey("Then ordering by points is restored before indexing", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(baselines[model.RB], convey.ShouldAlmostEqual, 300-5*26)
			})
		})
	})

	convey.Convey("Given malformed inputs", t, func() {
		slots := league.DefaultSlots()

		convey.Convey("Then a non-positive team count fails", func() {
			_, err := ComputeBaselines(nil, slots, 0, 0.1)
			convey.So(err, convey.ShouldWrap, ErrInvalidInput)
		})

		convey.Convey("Then a negative buffer fails", func() {
			_, err := ComputeBaselines(nil, slots, 12, -0.1)
			convey.So(err, convey.ShouldWrap, ErrInvalidInput)
		})

		convey.Convey("Then a malformed projection fails the batch", func() {
			bad := []model.Projection{{Slug: "", Position: model.RB, Rank: 1}}
			_, err := ComputeBaselines(bad, slots, 12, 0.1)
			convey.So(err, convey.ShouldWrap, model.ErrInvalidProjection)
		})
	})
}
