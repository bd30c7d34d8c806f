package naming_test

import (
	"testing"

	"github.com/okian/playercards/internal/domain/naming"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCanonicalKey(t *testing.T) {
	Convey("Given the strict canonical key", t, func() {
		Convey("When the input is empty", func() {
			So(naming.CanonicalKey(""), ShouldEqual, "")
		})

		Convey("When the input has case, spacing and punctuation", func() {
			So(naming.CanonicalKey("Paris Saint-Germain"), ShouldEqual, "parissaintgermain")
			So(naming.CanonicalKey("  MANCHESTER   CITY\t"), ShouldEqual, "manchestercity")
			So(naming.CanonicalKey("Bayer 04 Leverkusen"), ShouldEqual, "bayer04leverkusen")
			So(naming.CanonicalKey("a_b.c"), ShouldEqual, "a_bc")
		})

		Convey("When the input carries diacritics", func() {
			Convey("Then they are kept, not folded", func() {
				So(naming.CanonicalKey("FC Bayern München"), ShouldEqual, "fcbayernmünchen")
				So(naming.CanonicalKey("Grêmio"), ShouldEqual, "grêmio")
			})

			Convey("And composed and decomposed forms agree", func() {
				composed := "Atl\u00e9tico Madrid"
				decomposed := "Atle\u0301tico Madrid"
				So(naming.CanonicalKey(decomposed), ShouldEqual, naming.CanonicalKey(composed))
				So(naming.CanonicalKey(composed), ShouldEqual, "atléticomadrid")
			})
		})

		Convey("When the input is only punctuation", func() {
			So(naming.CanonicalKey("-- . !!"), ShouldEqual, "")
		})

		Convey("When dropping a separator leaves composable Hangul jamo", func() {
			So(naming.CanonicalKey("\u1100 \u1161"), ShouldEqual, "\uAC00")
			So(naming.CanonicalKey("\uAC00-\u11A8"), ShouldEqual, "\uAC01")
		})

		Convey("Then it is idempotent", func() {
			for _, s := range []string{"", "Man City", "Borussia Mönchengladbach", "LOSC Lille!", "  ", "Guangzhou Evergrande Taobao FC",
				"\u1100 \u1161", "\u1100-\u1161", "\uAC00-\u11A8"} {
				once := naming.CanonicalKey(s)
				So(naming.CanonicalKey(once), ShouldEqual, once)
			}
		})
	})
}

func TestLooseKey(t *testing.T) {
	Convey("Given the loose key", t, func() {
		So(naming.LooseKey("  Lionel Messi "), ShouldEqual, "lionel messi")
		So(naming.LooseKey("N'Golo Kanté"), ShouldEqual, "n'golo kanté")
		So(naming.LooseKey(""), ShouldEqual, "")
	})
}

func TestContains(t *testing.T) {
	Convey("Given the two-way contains check", t, func() {
		So(naming.Contains("spursfc", "spurs"), ShouldBeTrue)
		So(naming.Contains("spurs", "spursfc"), ShouldBeTrue)
		So(naming.Contains("arsenal", "chelsea"), ShouldBeFalse)

		Convey("Then empty keys never match", func() {
			So(naming.Contains("", "arsenal"), ShouldBeFalse)
			So(naming.Contains("arsenal", ""), ShouldBeFalse)
			So(naming.Contains("", ""), ShouldBeFalse)
		})
	})
}
