package league

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/domain/model"
)

func TestSlots(t *testing.T) {
	convey.Convey("Given the default slot configuration", t, func() {
		slots := DefaultSlots()

		convey.Convey("Then it validates", func() {
			convey.So(slots.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then fixed counts match the standard lineup", func() {
			cases := map[model.Position]int{
				model.QB: 1, model.RB: 2, model.WR: 2, model.TE: 1,
				model.K: 0, model.DST: 0,
			}
			for pos, want := range cases {
				got, err := slots.For(pos)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, want)
			}
		})

		convey.Convey("Then starters exclude the bench", func() {
			convey.So(slots.Starters(), convey.ShouldEqual, 7)
		})
	})

	convey.Convey("Given a malformed configuration", t, func() {
		convey.Convey("Then negative counts fail validation", func() {
			s := DefaultSlots()
			s.RB = -1
			convey.So(s.Validate(), convey.ShouldWrap, ErrInvalidSlots)
		})

		convey.Convey("Then an unknown position tag is an error, not zero", func() {
			_, err := DefaultSlots().For(model.Position("FLEX"))
			convey.So(err, convey.ShouldWrap, model.ErrUnknownPosition)
		})
	})
}
