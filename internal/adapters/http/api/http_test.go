package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/okian/jamstats/internal/adapters/http/api"
	"github.com/okian/jamstats/internal/adapters/repository"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/numeric"
	. "github.com/smartystreets/goconvey/convey"
)

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func skater(team, number string, avtar float64, jams int) model.SkaterProcessed {
	return model.SkaterProcessed{
		SkaterTotals: model.SkaterTotals{Team: team, Number: number, Jams: jams, Vtars: []float64{}, Penalties: []string{}},
		Avtar:        numeric.Metric(avtar),
		Avg:          numeric.Metric(1),
		PPJP:         numeric.Metric(10),
		JLP:          numeric.Metric(50),
	}
}

func publishedStore() *repository.SnapshotStore {
	skaters := []model.SkaterProcessed{
		skater("Bay Bombers", "12", 3.5, 20),
		skater("Bay Bombers", "7", -1, 18),
		skater("Harbor Hellcats", "12", 1.25, 22),
	}
	store := repository.NewSnapshotStore()
	_ = store.Publish(context.Background(), "run-1", model.Output{
		Total:    model.Total{Games: 1},
		Skaters:  skaters,
		Jammers:  skaters[:1],
		Blockers: skaters[1:],
		Teams: []model.TeamProcessed{
			{TeamTotals: model.TeamTotals{Name: "Bay Bombers", Games: 1, Penalties: []string{}}, PenaltyTendencies: []model.PenaltyTendency{}},
			{TeamTotals: model.TeamTotals{Name: "Harbor Hellcats", Games: 1, Penalties: []string{}}, PenaltyTendencies: []model.PenaltyTendency{}},
		},
	})
	return store
}

func serve(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a server over a published snapshot", t, func() {
		server := api.NewServer(publishedStore(), &mockStatsProvider{stats: map[string]interface{}{"runs": 1}}, 50)
		mux := http.NewServeMux()
		server.Register(mux)

		Convey("Then health serves the metrics registry", func() {
			w := serve(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then stats come from the provider", func() {
			w := serve(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"runs":1`)
		})

		Convey("Then the full output is served", func() {
			w := serve(mux, "/output")
			So(w.Code, ShouldEqual, http.StatusOK)
			var out model.Output
			So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
			So(out.Total.Games, ShouldEqual, 1)
			So(out.Skaters, ShouldHaveLength, 3)
		})

		Convey("Then skaters can be listed by set and team", func() {
			w := serve(mux, "/skaters?set=blockers&team="+url.QueryEscape("Bay Bombers"))
			So(w.Code, ShouldEqual, http.StatusOK)
			var got []model.SkaterProcessed
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Number, ShouldEqual, "7")

			So(serve(mux, "/skaters?set=refs").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then one skater can be fetched", func() {
			w := serve(mux, "/skaters/"+url.PathEscape("Harbor Hellcats")+"/12")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"avtar":1.25`)

			So(serve(mux, "/skaters/Nobody/1").Code, ShouldEqual, http.StatusNotFound)
			So(serve(mux, "/skaters/only-team").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then teams can be listed and fetched", func() {
			So(serve(mux, "/teams").Code, ShouldEqual, http.StatusOK)
			So(serve(mux, "/teams/"+url.PathEscape("Bay Bombers")).Code, ShouldEqual, http.StatusOK)
			So(serve(mux, "/teams/Nobody").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then the leaderboard ranks by metric", func() {
			w := serve(mux, "/leaderboard?limit=2&metric=avtar")
			So(w.Code, ShouldEqual, http.StatusOK)
			var entries []repository.Entry
			So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Number, ShouldEqual, "12")
			So(entries[0].Team, ShouldEqual, "Bay Bombers")
			So(entries[1].Team, ShouldEqual, "Harbor Hellcats")
		})

		Convey("Then bad leaderboard queries are rejected", func() {
			So(serve(mux, "/leaderboard").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(mux, "/leaderboard?limit=0").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(mux, "/leaderboard?limit=51").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(mux, "/leaderboard?limit=5&metric=speed").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(mux, "/leaderboard?limit=5&set=refs").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then other methods are not found", func() {
			req := httptest.NewRequest(http.MethodPost, "/teams", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a server before the first run finished", t, func() {
		server := api.NewServer(repository.NewSnapshotStore(), &mockStatsProvider{}, 50)
		mux := http.NewServeMux()
		server.Register(mux)

		Convey("Then reads report the service as not ready", func() {
			w := serve(mux, "/output")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(w.Body.String(), ShouldContainSubstring, "not_ready")
			So(serve(mux, "/leaderboard?limit=3").Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}
