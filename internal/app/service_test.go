package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	service "github.com/okian/playercards/internal/app"
	"github.com/okian/playercards/internal/adapters/repository"
	"github.com/okian/playercards/internal/adapters/source"
	"github.com/okian/playercards/internal/domain/model"
	"github.com/okian/playercards/internal/domain/pricing"
	"github.com/okian/playercards/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const playersJSON = `{"players":[
 {"name":"Lionel Messi","club":"PSG","stats":{"pac":81,"sho":89,"pas":90,"dri":94,"def":34,"phy":64},"images":{"team":"https://img/team/psg.png","nation":"https://img/ar.png","headshot":"https://img/messi.png"},"base_price":90},
 {"name":"Erling Haaland","club":"MANCHESTER CITY","base_price":"120"},
 {"name":"Nobody","club":"Unknown FC"},
 {"name":"Local Hero","club":"Sunday League","images":{"team":"https://img/team/sunday.png"}}
]}`

const pricesCSV = "name,base_price\nlionel messi,95.0\nHaaland,\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over local sources", t, func() {
		svc := service.New(
			service.WithLogger(logger.Get()),
			service.WithPlayersPath(writeFile(t, "players.json", playersJSON)),
			service.WithPricesPath(writeFile(t, "prices.csv", pricesCSV)),
			service.WithPlaceholderLogo("/static/shield.svg"),
		)

		snap, err := svc.Load(ctx)
		So(err, ShouldBeNil)
		So(snap.Len(), ShouldEqual, 4)
		So(snap.PricesMerged, ShouldBeTrue)
		So(snap.Mode, ShouldEqual, string(pricing.ModeCSV))

		cards, meta, err := svc.Cards(ctx)
		So(err, ShouldBeNil)
		So(meta.Count, ShouldEqual, 4)
		So(meta.SnapshotID, ShouldEqual, snap.ID)

		Convey("Then cards are numbered in input order", func() {
			for i, c := range cards {
				So(c.Number, ShouldEqual, i+1)
			}
		})

		Convey("And the club map wins over the player's team image", func() {
			So(cards[0].LogoSource, ShouldEqual, model.LogoFromClubMap)
			So(cards[0].TeamLogo, ShouldContainSubstring, "Paris_Saint-Germain")
			So(cards[0].NationLogo, ShouldEqual, "https://img/ar.png")
			So(cards[0].Headshot, ShouldEqual, "https://img/messi.png")
			So(cards[1].LogoSource, ShouldEqual, model.LogoFromClubMap)
		})

		Convey("And unknown clubs fall back to the team image, then the placeholder", func() {
			So(cards[3].LogoSource, ShouldEqual, model.LogoFromTeamImage)
			So(cards[3].TeamLogo, ShouldEqual, "https://img/team/sunday.png")
			So(cards[2].LogoSource, ShouldEqual, model.LogoPlaceholder)
			So(cards[2].TeamLogo, ShouldEqual, "/static/shield.svg")
		})

		Convey("And the price table is authoritative", func() {
			So(cards[0].BasePrice, ShouldEqual, "95")
			So(cards[1].BasePrice, ShouldEqual, "120")
			So(cards[2].BasePrice, ShouldEqual, model.PriceUnknown)
		})

		Convey("And stats are rendered", func() {
			So(len(cards[0].StatLines), ShouldEqual, 6)
			So(cards[0].StatLines[3].Label, ShouldEqual, "DRI")
			So(cards[0].StatLines[3].Value, ShouldEqual, 94)
		})

		Convey("And single cards come with wrap-around neighbours", func() {
			view, err := svc.Card(ctx, 1)
			So(err, ShouldBeNil)
			So(view.Card.Name, ShouldEqual, "Lionel Messi")
			So(view.Prev, ShouldEqual, 4)
			So(view.Next, ShouldEqual, 2)

			prev, next, err := svc.Neighbors(ctx, 4)
			So(err, ShouldBeNil)
			So(prev, ShouldEqual, 3)
			So(next, ShouldEqual, 1)

			_, err = svc.Card(ctx, 5)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, _, err = svc.Neighbors(ctx, 0)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("And cards can be found by name", func() {
			c, err := svc.FindCard(ctx, " lionel MESSI")
			So(err, ShouldBeNil)
			So(c.Number, ShouldEqual, 1)
		})

		Convey("And stats report the load", func() {
			stats := svc.GetStats()
			So(stats["loads"], ShouldEqual, 1)
			So(stats["cards"], ShouldEqual, 4)
			So(stats["pricesMerged"], ShouldEqual, true)
		})
	})

	Convey("Given the player price mode", t, func() {
		svc := service.New(
			service.WithPlayersPath(writeFile(t, "players.json", playersJSON)),
			service.WithPricesPath(writeFile(t, "prices.csv", pricesCSV)),
			service.WithPriceMode(pricing.ModePlayerField),
		)
		_, err := svc.Load(ctx)
		So(err, ShouldBeNil)

		view, err := svc.Card(ctx, 1)
		So(err, ShouldBeNil)
		So(view.Card.BasePrice, ShouldEqual, "90")
	})

	Convey("Given a missing price table", t, func() {
		svc := service.New(
			service.WithPlayersPath(writeFile(t, "players.json", playersJSON)),
			service.WithPricesPath(filepath.Join(t.TempDir(), "missing.csv")),
		)
		snap, err := svc.Load(ctx)

		So(err, ShouldBeNil)
		So(snap.PricesMerged, ShouldBeFalse)
		So(snap.Cards[0].BasePrice, ShouldEqual, "90")
	})

	Convey("Given no price table at all", t, func() {
		svc := service.New(service.WithPlayersPath(writeFile(t, "players.json", playersJSON)))
		snap, err := svc.Load(ctx)

		So(err, ShouldBeNil)
		So(snap.PricesMerged, ShouldBeFalse)
	})

	Convey("Given a broken player list", t, func() {
		svc := service.New(service.WithPlayersPath(writeFile(t, "players.json", "{not json")))

		_, err := svc.Load(ctx)

		So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		_, _, err = svc.Cards(ctx)
		So(errors.Is(err, repository.ErrEmpty), ShouldBeTrue)
	})

	Convey("Given a custom logo map file", t, func() {
		svc := service.New(
			service.WithPlayersPath(writeFile(t, "players.json", playersJSON)),
			service.WithLogoMapPath(writeFile(t, "clubs.yaml", "- club: Sunday League\n  logo: https://x/sunday.svg\n")),
		)
		snap, err := svc.Load(ctx)
		So(err, ShouldBeNil)
		So(snap.Cards[3].TeamLogo, ShouldEqual, "https://x/sunday.svg")
		So(snap.Cards[0].LogoSource, ShouldEqual, model.LogoFromTeamImage)
	})

	Convey("Given a service with an injected store", t, func() {
		st := repository.NewMemoryStore(repository.WithIDFunc(func() string { return "deck-fixed" }))
		svc := service.New(
			service.WithStore(st),
			service.WithPlayersPath(writeFile(t, "players.json", playersJSON)),
		)

		snap, err := svc.Load(ctx)
		So(err, ShouldBeNil)
		So(snap.ID, ShouldEqual, "deck-fixed")

		Convey("Then the deck is published to that store", func() {
			cur, err := st.Current(ctx)
			So(err, ShouldBeNil)
			So(cur.ID, ShouldEqual, "deck-fixed")
			So(cur.Len(), ShouldEqual, 4)

			view, err := svc.Card(ctx, 2)
			So(err, ShouldBeNil)
			So(view.Card.Name, ShouldEqual, "Erling Haaland")
		})
	})

	Convey("Given an unreadable logo map file", t, func() {
		svc := service.New(
			service.WithPlayersPath(writeFile(t, "players.json", playersJSON)),
			service.WithLogoMapPath(filepath.Join(t.TempDir(), "none.yaml")),
		)
		_, err := svc.Load(ctx)
		So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
	})
}

func TestService_ResolveLogo(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with the built-in map", t, func() {
		svc := service.New()

		Convey("Then matches report their tier", func() {
			got := svc.ResolveLogo(ctx, "Spurs FC")
			So(got.Found, ShouldBeTrue)
			So(got.Tier, ShouldEqual, "substring")
			So(got.Key, ShouldEqual, "Spurs")
		})

		Convey("And misses are values, not errors", func() {
			got := svc.ResolveLogo(ctx, "Unknown FC")
			So(got.Found, ShouldBeFalse)
			So(got.Tier, ShouldEqual, "miss")
			So(got.URL, ShouldBeEmpty)
		})

		Convey("And punctuation-only names miss", func() {
			So(svc.ResolveLogo(ctx, "!!!").Found, ShouldBeFalse)
		})
	})

	Convey("Given the legacy empty match", t, func() {
		svc := service.New(service.WithLegacyEmptyMatch(true))

		So(svc.ResolveLogo(ctx, "!!!").Found, ShouldBeTrue)
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()

		Convey("When getting stats before loading", func() {
			stats := svc.GetStats()

			So(stats, ShouldNotBeNil)
			So(stats["loads"], ShouldEqual, 0)
			So(stats["cards"], ShouldEqual, 0)
			So(stats, ShouldNotContainKey, "snapshot")
		})
	})
}
