package model

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStageChain(t *testing.T) {
	t.Run("NextStage", func(t *testing.T) {
		Convey("NextStage", t, func() {
			So(NextStage(StageHead), ShouldEqual, StageDeputy)
			So(NextStage(StageDeputy), ShouldEqual, StageDirector)
			So(NextStage(StageDirector), ShouldEqual, StageCompleted)
			So(NextStage(StageCompleted), ShouldEqual, StageCompleted)
		})
	})

	t.Run("RankForStage", func(t *testing.T) {
		Convey("RankForStage", t, func() {
			rank, ok := RankForStage(StageHead)
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, RankHead)

			rank, ok = RankForStage(StageDeputy)
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, RankDeputy)

			rank, ok = RankForStage(StageDirector)
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, RankDirector)

			_, ok = RankForStage(StageCompleted)
			So(ok, ShouldBeFalse)
		})
	})
}
