package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/pitchcard/internal/adapters/http/api"
	service "github.com/okian/pitchcard/internal/app"
	"github.com/okian/pitchcard/internal/domain/model"
	"github.com/okian/pitchcard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	ready    bool
	cardErr  error
	requests []types.CardRequest
}

func (m *mockDependencies) Levels(_ context.Context) []types.Option {
	return []types.Option{{Label: "MLB", Value: "MLB"}, {Label: "Unknown", Value: "Unknown"}}
}

func (m *mockDependencies) Teams(_ context.Context, level string) []types.Option {
	if level != "MLB" {
		return nil
	}
	return []types.Option{{Label: "Detroit Tigers", Value: "Detroit Tigers"}}
}

func (m *mockDependencies) Pitchers(_ context.Context, team string) []types.PitcherOption {
	if team != "Detroit Tigers" {
		return nil
	}
	return []types.PitcherOption{{Label: "Tarik Skubal", Value: 669373}}
}

func (m *mockDependencies) card(req types.CardRequest) (*types.Card, error) {
	m.requests = append(m.requests, req)
	if m.cardErr != nil {
		return nil, m.cardErr
	}
	return &types.Card{RenderID: "r-1", Season: 2025, Bio: model.Bio{ID: req.PitcherID, FullName: "Tarik Skubal"}}, nil
}

func (m *mockDependencies) Summary(_ context.Context, req types.CardRequest) (*types.Card, error) {
	return m.card(req)
}

func (m *mockDependencies) CardSVG(_ context.Context, req types.CardRequest) ([]byte, *types.Card, error) {
	card, err := m.card(req)
	if err != nil {
		return nil, nil, err
	}
	return []byte(`<?xml version="1.0"?><svg></svg>`), card, nil
}

func (m *mockDependencies) Ready() bool { return m.ready }

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	server.Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{ready: true}
		mux := newMux(deps)

		Convey("Then health endpoint should report readiness", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"ready":true`)
		})

		Convey("And health endpoint should serve metrics to scrapers", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set("Accept", "text/plain")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "pitchcard_service_")
		})

		Convey("And metrics endpoint should be accessible", func() {
			w := get(mux, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "pitchcard_service_")
		})

		Convey("And stats endpoint should be accessible", func() {
			w := get(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("And unknown paths are not found", func() {
			So(get(mux, "/unknown").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And every route carries a request id", func() {
			for _, path := range []string{
				"/healthz", "/metrics", "/stats", "/api/levels",
				"/api/teams?level=MLB", "/api/pitchers?team=DET", "/api/pitchers/669373/summary",
			} {
				So(get(mux, path).Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			}
		})

		Convey("And a request id set upstream is kept", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/levels", http.NoBody)
			w := httptest.NewRecorder()
			w.Header().Set("X-Request-ID", "outer")
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-ID"), ShouldEqual, "outer")
		})

		Convey("And writes are rejected", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/levels", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestDirectoryHandler(t *testing.T) {
	Convey("Given the dropdown endpoints", t, func() {
		mux := newMux(&mockDependencies{})

		Convey("When listing levels", func() {
			w := get(mux, "/api/levels")

			Convey("Then the options are returned as label/value pairs", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var opts []types.Option
				So(json.NewDecoder(w.Body).Decode(&opts), ShouldBeNil)
				So(opts, ShouldResemble, []types.Option{{Label: "MLB", Value: "MLB"}, {Label: "Unknown", Value: "Unknown"}})
			})
		})

		Convey("When listing teams of a level", func() {
			w := get(mux, "/api/teams?level=MLB")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Detroit Tigers")
		})

		Convey("When no level is chosen", func() {
			w := get(mux, "/api/teams")

			Convey("Then the list is empty rather than null", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})

		Convey("When listing pitchers of a team", func() {
			w := get(mux, "/api/pitchers?team=Detroit+Tigers")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `[{"label":"Tarik Skubal","value":669373}]`)
		})
	})
}

func TestCardHandler(t *testing.T) {
	Convey("Given the card endpoints", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When a summary is requested with a window and session", func() {
			w := get(mux, "/api/pitchers/669373/summary?start=2025-04-01&end=2025-05-01&session=tab-1")

			Convey("Then the request reaches the pipeline intact", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.requests, ShouldResemble, []types.CardRequest{
					{PitcherID: 669373, Start: "2025-04-01", End: "2025-05-01", Session: "tab-1"},
				})
				So(w.Header().Get("X-Render-ID"), ShouldEqual, "r-1")
				So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
				So(w.Body.String(), ShouldContainSubstring, `"full_name":"Tarik Skubal"`)
			})
		})

		Convey("When the SVG is requested", func() {
			w := get(mux, "/api/pitchers/669373/card.svg")

			Convey("Then an SVG document is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/svg+xml")
				So(w.Body.String(), ShouldStartWith, "<?xml")
			})
		})

		Convey("When the caller sends a request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/pitchers/1/summary", http.NoBody)
			req.Header.Set("X-Request-ID", "abc")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-ID"), ShouldEqual, "abc")
		})

		Convey("When the path is malformed", func() {
			for _, path := range []string{"/api/pitchers/abc/summary", "/api/pitchers/0/summary", "/api/pitchers/12"} {
				So(get(mux, path).Code, ShouldEqual, http.StatusBadRequest)
			}
			So(get(mux, "/api/pitchers/12/photo").Code, ShouldEqual, http.StatusNotFound)
			So(deps.requests, ShouldBeEmpty)
		})

		cases := []struct {
			err  error
			code int
			kind string
		}{
			{fmt.Errorf("%w: window", service.ErrInvalidRequest), http.StatusBadRequest, "bad_request"},
			{fmt.Errorf("%w: pitcher 9", service.ErrNoPitches), http.StatusNotFound, "not_found"},
			{service.ErrSuperseded, http.StatusConflict, "superseded"},
			{fmt.Errorf("%w: timeout", service.ErrUpstream), http.StatusBadGateway, "upstream_error"},
			{service.ErrNotStarted, http.StatusServiceUnavailable, "not_ready"},
			{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		}
		for _, c := range cases {
			Convey(fmt.Sprintf("When the pipeline fails with %v", c.err), func() {
				deps.cardErr = c.err
				w := get(mux, "/api/pitchers/1/summary")

				Convey("Then the error kind picks the status", func() {
					So(w.Code, ShouldEqual, c.code)
					var body struct {
						Code string `json:"code"`
					}
					So(json.NewDecoder(w.Body).Decode(&body), ShouldBeNil)
					So(body.Code, ShouldEqual, c.kind)
				})
			})
		}
	})
}

func TestErrors(t *testing.T) {
	Convey("Given wrapped API errors", t, func() {
		cause := errors.New("disk full")
		err := api.WrapKind("api.op", api.ErrUpstream, cause)

		Convey("Then both kind and cause are reachable", func() {
			So(errors.Is(err, api.ErrUpstream), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: upstream failure: disk full")
		})

		Convey("Then plain wraps are internal", func() {
			So(errors.Is(api.Wrap("api.op", cause), api.ErrInternal), ShouldBeTrue)
			So(api.Wrap("api.op", nil), ShouldBeNil)
			So(api.NewKind("api.op", api.ErrBadRequest).Error(), ShouldEqual, "api.op: bad request")
		})
	})
}
