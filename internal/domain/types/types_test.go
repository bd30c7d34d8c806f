package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/playercards/internal/domain/model"
	types "github.com/okian/playercards/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReadShapes(t *testing.T) {
	Convey("Given a card view", t, func() {
		view := types.CardView{
			Card: model.Card{Number: 2, Player: model.Player{Name: "Pedri"}},
			Prev: 1,
			Next: 3,
		}

		Convey("Then it serialises neighbours next to the card", func() {
			out, err := json.Marshal(view)
			So(err, ShouldBeNil)
			So(string(out), ShouldContainSubstring, `"prev":1`)
			So(string(out), ShouldContainSubstring, `"next":3`)
			So(string(out), ShouldContainSubstring, `"name":"Pedri"`)
		})
	})

	Convey("Given deck meta", t, func() {
		meta := types.DeckMeta{SnapshotID: "abc", LoadedAt: time.Unix(0, 0).UTC(), Count: 3, PriceSource: "csv"}
		out, err := json.Marshal(meta)
		So(err, ShouldBeNil)
		So(string(out), ShouldContainSubstring, `"snapshot_id":"abc"`)
		So(string(out), ShouldContainSubstring, `"prices_merged":false`)
	})

	Convey("Given a missed logo lookup", t, func() {
		out, err := json.Marshal(types.LogoLookup{Club: "Unknown FC", Tier: "miss"})
		So(err, ShouldBeNil)
		So(string(out), ShouldNotContainSubstring, `"key"`)
		So(string(out), ShouldContainSubstring, `"found":false`)
	})
}
