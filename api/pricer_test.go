package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banachtech/swaptions/data"
	"github.com/stretchr/testify/require"
)

type pricerResponse struct {
	Status  int                `json:"status"`
	Trials  int                `json:"trials"`
	Results []swaptionResponse `json:"results"`
}

func postJSON(t *testing.T, server *Server, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	server.Handler().ServeHTTP(recorder, request)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) pricerResponse {
	t.Helper()
	var res pricerResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	return res
}

func TestPortfolio(t *testing.T) {
	server := newTestServer(t, newTestConfig())

	testCases := []struct {
		name          string
		body          any
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: map[string]any{"count": 4},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				res := decodeResponse(t, recorder)
				require.Equal(t, 512, res.Trials)
				require.Len(t, res.Results, 4)
				for i, r := range res.Results {
					require.Equal(t, i, r.ID)
					require.InDelta(t, float64(i)/4, r.Strike, 1e-12)
					require.Empty(t, r.Error)
					require.GreaterOrEqual(t, r.Price, 0.0)
				}
				require.Greater(t, res.Results[0].Price, 0.0)
				require.Greater(t, res.Results[0].StdError, 0.0)
			},
		},
		{
			name: "TrialsOverride",
			body: map[string]any{"count": 1, "trials": 64},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, 64, decodeResponse(t, recorder).Trials)
			},
		},
		{
			name: "MissingCount",
			body: map[string]any{},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "TooManySwaptions",
			body: map[string]any{"count": 9},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "TooManyTrials",
			body: map[string]any{"count": 1, "trials": 5000},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.name, func(t *testing.T) {
			tc.checkResponse(t, postJSON(t, server, "/v1/portfolio", tc.body))
		})
	}
}

func TestPricer(t *testing.T) {
	server := newTestServer(t, newTestConfig())

	good := data.Swaptions(1)[0].Spec
	bad := data.Swaptions(2)[1].Spec
	bad.Yield = bad.Yield[:3]

	t.Run("PartialFailure", func(t *testing.T) {
		recorder := postJSON(t, server, "/v1/pricer", map[string]any{
			"swaptions": []data.SwaptionSpec{good, bad},
			"trials":    128,
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		res := decodeResponse(t, recorder)
		require.Len(t, res.Results, 2)
		require.Empty(t, res.Results[0].Error)
		require.Greater(t, res.Results[0].Price, 0.0)
		require.Equal(t, 1, res.Results[1].ID)
		require.Contains(t, res.Results[1].Error, data.ErrDimension.Error())
		require.Zero(t, res.Results[1].Price)
	})

	t.Run("MatchesPortfolio", func(t *testing.T) {
		direct := decodeResponse(t, postJSON(t, server, "/v1/pricer", map[string]any{
			"swaptions": []data.SwaptionSpec{good},
		}))
		portfolio := decodeResponse(t, postJSON(t, server, "/v1/portfolio", map[string]any{"count": 1}))
		require.Equal(t, portfolio.Results[0].Price, direct.Results[0].Price)
		require.Equal(t, portfolio.Results[0].StdError, direct.Results[0].StdError)
	})

	t.Run("Overflow", func(t *testing.T) {
		spec := good
		spec.Yield = make([]float64, len(good.Yield))
		for i := range spec.Yield {
			spec.Yield[i] = 1e6
		}
		recorder := postJSON(t, server, "/v1/pricer", map[string]any{
			"swaptions": []data.SwaptionSpec{spec, good},
			"trials":    32,
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		res := decodeResponse(t, recorder)
		require.Len(t, res.Results, 2)
		require.Contains(t, res.Results[0].Error, errNotFinite.Error())
		require.Zero(t, res.Results[0].Price)
		require.Empty(t, res.Results[1].Error)
		require.Greater(t, res.Results[1].Price, 0.0)
	})

	t.Run("Empty", func(t *testing.T) {
		recorder := postJSON(t, server, "/v1/pricer", map[string]any{"swaptions": []data.SwaptionSpec{}})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("BadBinding", func(t *testing.T) {
		spec := good
		spec.Tenor = 0
		recorder := postJSON(t, server, "/v1/pricer", map[string]any{"swaptions": []data.SwaptionSpec{spec}})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/v1/pricer", bytes.NewBufferString("{"))
		server.Handler().ServeHTTP(recorder, request)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestFinite(t *testing.T) {
	require.True(t, finite(0, 1.5, -2))
	require.False(t, finite(0, math.NaN()))
	require.False(t, finite(math.Inf(1)))
	require.False(t, finite(math.Inf(-1), 0))
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, newTestConfig())
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":200}`, recorder.Body.String())
}
