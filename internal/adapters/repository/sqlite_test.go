package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/domain/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestProjectionRoundTrip(t *testing.T) {
	convey.Convey("Given an empty store", t, func() {
		store := newTestStore(t)
		ctx := context.Background()

		projections := []model.Projection{
			{Slug: "back-one", Name: "Back One", Position: model.RB, Team: "SF", Rank: 1, ROSPoints: 200},
			{Slug: "back-two", Name: "Back Two", Position: model.RB, Team: "DAL", Rank: 2, ROSPoints: 180},
		}

		convey.Convey("When projections are upserted", func() {
			err := store.UpsertProjections(ctx, projections)

			convey.Convey("Then they read back ordered by rank", func() {
				convey.So(err, convey.ShouldBeNil)
				got, err := store.Projections(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldHaveLength, 2)
				convey.So(got[0].Slug, convey.ShouldEqual, "back-one")
				convey.So(got[1].Slug, convey.ShouldEqual, "back-two")
				convey.So(got[0].ROSPoints, convey.ShouldAlmostEqual, 200)

				n, err := store.ProjectionCount(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 2)
			})

			convey.Convey("And when a slug is upserted again", func() {
				update := []model.Projection{
					{Slug: "back-one", Name: "Back One", Position: model.RB, Team: "SF", Rank: 3, ROSPoints: 150},
				}
				convey.So(store.UpsertProjections(ctx, update), convey.ShouldBeNil)

				convey.Convey("Then the record is replaced, not duplicated", func() {
					got, err := store.Projections(ctx)
					convey.So(err, convey.ShouldBeNil)
					convey.So(got, convey.ShouldHaveLength, 2)
					convey.So(got[1].Slug, convey.ShouldEqual, "back-one")
					convey.So(got[1].ROSPoints, convey.ShouldAlmostEqual, 150)
				})
			})
		})

		convey.Convey("When a batch holds a malformed record", func() {
			bad := append(projections, model.Projection{Slug: "", Position: model.RB, Rank: 1})
			err := store.UpsertProjections(ctx, bad)

			convey.Convey("Then the whole batch is rejected", func() {
				convey.So(err, convey.ShouldWrap, model.ErrInvalidProjection)
				n, err := store.ProjectionCount(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 0)
			})
		})
	})
}

func TestMappings(t *testing.T) {
	convey.Convey("Given a store with one automatic mapping", t, func() {
		store := newTestStore(t)
		ctx := context.Background()

		auto := Mapping{
			Platform:   "sleeper",
			PlatformID: "4046",
			Slug:       "patrick-mahomes",
			PlayerName: "Patrick Mahomes",
			Position:   "QB",
			Team:       "KC",
		}
		convey.So(store.SaveMapping(ctx, auto), convey.ShouldBeNil)

		convey.Convey("Then it reads back scoped by platform", func() {
			got, err := store.Mappings(ctx, "sleeper")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got["4046"], convey.ShouldEqual, "patrick-mahomes")

			other, err := store.Mappings(ctx, "espn")
			convey.So(err, convey.ShouldBeNil)
			convey.So(other, convey.ShouldBeEmpty)
		})

		convey.Convey("When a manual override lands on the same player", func() {
			manual := auto
			manual.Slug = "corrected-slug"
			manual.ManualOverride = true
			convey.So(store.SaveMapping(ctx, manual), convey.ShouldBeNil)

			convey.Convey("Then the override wins", func() {
				got, err := store.Mappings(ctx, "sleeper")
				convey.So(err, convey.ShouldBeNil)
				convey.So(got["4046"], convey.ShouldEqual, "corrected-slug")
			})

			convey.Convey("And a later automatic mapping cannot displace it", func() {
				again := auto
				again.Slug = "wrong-slug"
				convey.So(store.SaveMapping(ctx, again), convey.ShouldBeNil)

				got, err := store.Mappings(ctx, "sleeper")
				convey.So(err, convey.ShouldBeNil)
				convey.So(got["4046"], convey.ShouldEqual, "corrected-slug")
			})
		})
	})
}

func TestCache(t *testing.T) {
	convey.Convey("Given a store", t, func() {
		store := newTestStore(t)
		ctx := context.Background()

		convey.Convey("When a value is cached with a long TTL", func() {
			convey.So(store.SetCache(ctx, "k1", "v1", time.Hour), convey.ShouldBeNil)

			convey.Convey("Then it reads back", func() {
				v, err := store.GetCache(ctx, "k1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(v, convey.ShouldEqual, "v1")
			})

			convey.Convey("And overwriting replaces the value", func() {
				convey.So(store.SetCache(ctx, "k1", "v2", time.Hour), convey.ShouldBeNil)
				v, err := store.GetCache(ctx, "k1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(v, convey.ShouldEqual, "v2")
			})
		})

		convey.Convey("When a value has already expired", func() {
			convey.So(store.SetCache(ctx, "k2", "stale", -time.Minute), convey.ShouldBeNil)

			convey.Convey("Then reads miss", func() {
				_, err := store.GetCache(ctx, "k2")
				convey.So(err, convey.ShouldWrap, ErrNotFound)
			})

			convey.Convey("And a purge removes it", func() {
				convey.So(store.SetCache(ctx, "k3", "fresh", time.Hour), convey.ShouldBeNil)
				n, err := store.PurgeExpired(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 1)

				_, err = store.GetCache(ctx, "k3")
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a key was never set", func() {
			_, err := store.GetCache(ctx, "absent")
			convey.So(err, convey.ShouldWrap, ErrNotFound)
		})
	})
}
