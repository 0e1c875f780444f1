package nba

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	var (
		ts     *httptest.Server
		client *Client
		ctx    context.Context

		gotPath   string
		gotKey    string
		respBody  string
		respCode  int
	)

	BeforeEach(func() {
		ctx = context.Background()
		respBody = "[]"
		respCode = http.StatusOK

		ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
			w.WriteHeader(respCode)
			w.Write([]byte(respBody))
		}))

		client = NewClient(Config{
			BaseURL: ts.URL,
			APIKey:  "test-key",
		})
	})

	AfterEach(func() {
		ts.Close()
	})

	Describe("GamesBySeason", func() {
		It("hits the season schedule path with the subscription key", func() {
			respBody = `[{"GameID": 1, "Season": 2023, "Status": "Scheduled", "HomeTeam": "BOS", "AwayTeam": "LAL"}]`

			games, err := client.GamesBySeason(ctx, "2023")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/scores/json/Games/2023"))
			Expect(gotKey).To(Equal("test-key"))
			Expect(games).To(HaveLen(1))
			Expect(games[0].HomeTeam).To(Equal("BOS"))
			Expect(games[0].HomeTeamScore).To(BeNil())
		})

		It("decodes final scores", func() {
			respBody = `[{"GameID": 2, "Status": "Final", "HomeTeam": "BOS", "AwayTeam": "LAL", "HomeTeamScore": 112, "AwayTeamScore": 105}]`

			games, err := client.GamesBySeason(ctx, "2023")
			Expect(err).NotTo(HaveOccurred())
			Expect(games[0].HomeTeamScore).To(HaveValue(Equal(112)))
			Expect(games[0].AwayTeamScore).To(HaveValue(Equal(105)))
		})
	})

	Describe("Teams", func() {
		It("hits the teams path", func() {
			respBody = `[{"TeamID": 1, "Key": "BOS", "City": "Boston", "Name": "Celtics", "Conference": "Eastern"}]`

			teams, err := client.Teams(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/scores/json/teams"))
			Expect(teams).To(HaveLen(1))
			Expect(teams[0].Key).To(Equal("BOS"))
		})
	})

	Describe("Players", func() {
		It("hits the players path", func() {
			respBody = `[{"PlayerID": 7, "FirstName": "Jayson", "LastName": "Tatum", "Team": "BOS", "Position": "SF", "Jersey": 0}]`

			players, err := client.Players(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/scores/json/Players"))
			Expect(players[0].FullName()).To(Equal("Jayson Tatum"))
			Expect(players[0].Jersey).To(HaveValue(Equal(0)))
		})
	})

	Describe("Standings", func() {
		It("hits the season standings path", func() {
			_, err := client.Standings(ctx, "2024")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/scores/json/Standings/2024"))
		})
	})

	Describe("PlayerSeasonStats", func() {
		It("hits the stats path", func() {
			_, err := client.PlayerSeasonStats(ctx, "2023")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/stats/json/PlayerSeasonStats/2023"))
		})
	})

	Describe("GamesByDate", func() {
		It("formats the date into the path", func() {
			d := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)
			_, err := client.GamesByDate(ctx, d)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/scores/json/GamesByDate/2023-Nov-01"))
		})
	})

	Describe("PlayersByTeam", func() {
		It("hits the roster path for the team key", func() {
			_, err := client.PlayersByTeam(ctx, "BOS")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/scores/json/Players/BOS"))
		})
	})

	Describe("BoxScore", func() {
		It("passes the payload through raw", func() {
			respBody = `{"Game": {"GameID": 42}, "PlayerGames": []}`

			raw, err := client.BoxScore(ctx, "42")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/stats/json/BoxScore/42"))
			Expect(string(raw)).To(MatchJSON(respBody))
		})
	})

	Describe("PlayerSeasonStatsByPlayer", func() {
		It("hits the per-player stats path", func() {
			_, err := client.PlayerSeasonStatsByPlayer(ctx, "20000571")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/stats/json/PlayerSeasonStatsByPlayer/20000571"))
		})
	})

	Describe("TeamSeasonStats", func() {
		It("hits the per-team stats path", func() {
			_, err := client.TeamSeasonStats(ctx, "2023")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/stats/json/TeamSeasonStats/2023"))
		})
	})

	Context("when the upstream returns a non-2xx status", func() {
		It("returns a StatusError carrying the code and body", func() {
			respCode = http.StatusUnauthorized
			respBody = "bad key"

			_, err := client.Teams(ctx)
			Expect(err).To(HaveOccurred())

			var statusErr *StatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.Code).To(Equal(http.StatusUnauthorized))
			Expect(statusErr.Body).To(Equal("bad key"))
		})
	})

	Context("when the upstream returns malformed JSON", func() {
		It("returns a decode error", func() {
			respBody = "{not json"

			_, err := client.Teams(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("decoding upstream response"))
		})
	})

	Context("when the context is cancelled", func() {
		It("aborts the request", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := client.Teams(cancelled)
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("FormatDate", func() {
	It("renders dates as SportsData path segments", func() {
		d := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)
		Expect(FormatDate(d)).To(Equal("2023-Nov-01"))
	})
})

var _ = Describe("Filters", func() {
	Describe("FilterGamesByTeam", func() {
		games := []Game{
			{HomeTeam: "BOS", AwayTeam: "LAL"},
			{HomeTeam: "MIA", AwayTeam: "NYK"},
		}

		It("matches either side case-insensitively", func() {
			Expect(FilterGamesByTeam(games, "lal")).To(HaveLen(1))
			Expect(FilterGamesByTeam(games, "MIA")).To(HaveLen(1))
		})

		It("passes everything through for an empty query", func() {
			Expect(FilterGamesByTeam(games, "")).To(HaveLen(2))
		})
	})

	Describe("FilterPlayersByName", func() {
		players := []Player{
			{FirstName: "LeBron", LastName: "James"},
			{FirstName: "Stephen", LastName: "Curry"},
		}

		It("matches on the full name", func() {
			matched := FilterPlayersByName(players, "lebron james")
			Expect(matched).To(HaveLen(1))
			Expect(matched[0].LastName).To(Equal("James"))
		})

		It("matches partial names", func() {
			Expect(FilterPlayersByName(players, "curry")).To(HaveLen(1))
		})

		It("returns nothing for no match", func() {
			Expect(FilterPlayersByName(players, "jordan")).To(BeEmpty())
		})
	})

	Describe("FilterTeams", func() {
		teams := []Team{
			{Key: "BOS", Name: "Celtics"},
			{Key: "LAL", Name: "Lakers"},
		}

		It("matches on name or key", func() {
			Expect(FilterTeams(teams, "celtics")).To(HaveLen(1))
			Expect(FilterTeams(teams, "LAL")).To(HaveLen(1))
		})
	})
})
