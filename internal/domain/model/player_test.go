package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/playercards/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScalar(t *testing.T) {
	Convey("Given a player record with loosely typed fields", t, func() {
		raw := `{"name":"Lionel Messi","club":"PSG","ovr":91,"pot":"91","age":null,
			"stats":{"pac":"85","sho":92},"base_price":5000000}`

		var p model.Player
		err := json.Unmarshal([]byte(raw), &p)

		Convey("Then numbers and strings both decode to text", func() {
			So(err, ShouldBeNil)
			So(p.Ovr.String(), ShouldEqual, "91")
			So(p.Pot.String(), ShouldEqual, "91")
			So(p.Age.String(), ShouldEqual, "")
			So(p.Stats.Pac.Int(), ShouldEqual, 85)
			So(p.Stats.Sho.Int(), ShouldEqual, 92)
			So(p.RawBasePrice.String(), ShouldEqual, "5000000")
		})

		Convey("And numeric text is re-emitted as a number", func() {
			out, err := json.Marshal(p.Ovr)
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, "91")

			out, err = json.Marshal(model.Scalar("€10M"))
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, `"€10M"`)

			out, err = json.Marshal(model.Scalar("007"))
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, `"007"`)
		})
	})

	Convey("Given leading-integer parsing", t, func() {
		So(model.Scalar("87").Int(), ShouldEqual, 87)
		So(model.Scalar(" 87+3").Int(), ShouldEqual, 87)
		So(model.Scalar("-4").Int(), ShouldEqual, -4)
		So(model.Scalar("abc").Int(), ShouldEqual, 0)
		So(model.Scalar("").Int(), ShouldEqual, 0)
		So(model.Scalar("-").Int(), ShouldEqual, 0)
	})
}

func TestOwnPrice(t *testing.T) {
	Convey("Given a player's own base price", t, func() {
		So(model.Player{RawBasePrice: "1.2M"}.OwnPrice(), ShouldEqual, "1.2M")
		So(model.Player{RawBasePrice: "  "}.OwnPrice(), ShouldEqual, model.PriceUnknown)
		So(model.Player{}.OwnPrice(), ShouldEqual, "N/A")
	})
}

func TestCardJSON(t *testing.T) {
	Convey("Given a card", t, func() {
		card := model.Card{
			Number:     1,
			Player:     model.Player{Name: "Lionel Messi", Club: "PSG", BasePrice: "N/A"},
			TeamLogo:   "https://example.test/psg.svg",
			LogoSource: model.LogoFromClubMap,
		}

		out, err := json.Marshal(card)

		Convey("Then player fields are flattened next to the display fields", func() {
			So(err, ShouldBeNil)
			var m map[string]any
			So(json.Unmarshal(out, &m), ShouldBeNil)
			So(m["name"], ShouldEqual, "Lionel Messi")
			So(m["basePrice"], ShouldEqual, "N/A")
			So(m["teamLogo"], ShouldEqual, "https://example.test/psg.svg")
			So(m["logoSource"], ShouldEqual, "club_map")
			So(m["number"], ShouldEqual, 1)
		})
	})
}
