package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bvggrabber/bvg-cli/internal/api"
)

const boardPage = `<html><body><div class="ivu_result_box"><table>
<tr><td>12:05</td><td>Bus  M29</td><td>Hermannplatz</td></tr>
<tr><td>12:10</td><td>Bus  M46</td><td>Britz</td></tr>
</table></div></body></html>`

const candidatesPage = `<html><body><form><select>
<option value="Zoologischer Garten">Zoologischer Garten</option>
<option value="Zoo (Berlin)">Zoo (Berlin)</option>
</select></form></body></html>`

func newServer(t *testing.T, status int) *Server {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.URL.Query().Get("input") == "Zoo" {
			_, _ = io.WriteString(w, candidatesPage)
			return
		}
		_, _ = io.WriteString(w, boardPage)
	}))
	t.Cleanup(upstream.Close)

	return &Server{
		Client: api.NewClientWithOptions(api.ClientOptions{
			ActualURL:    upstream.URL,
			ScheduledURL: upstream.URL,
		}),
		Vehicles: api.VehicleBus,
		Limit:    9,
		Version:  "test",
	}
}

func get(t *testing.T, s *Server, target string) (int, []byte) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestVersion(t *testing.T) {
	status, body := get(t, newServer(t, http.StatusOK), "/version")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"version":"test"}`, string(body))
}

func TestDepartures(t *testing.T) {
	s := newServer(t, http.StatusOK)

	status, body := get(t, s, "/departures?station="+url.QueryEscape("Hermannplatz")+"&station=Alexanderplatz")
	require.Equal(t, http.StatusOK, status, string(body))

	var groups []struct {
		Station    string           `json:"station"`
		Departures []map[string]any `json:"departures"`
	}
	require.NoError(t, json.Unmarshal(body, &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "Hermannplatz", groups[0].Station)
	assert.Equal(t, "Alexanderplatz", groups[1].Station)
	require.Len(t, groups[0].Departures, 2)
	assert.Contains(t, groups[0].Departures[0], "remaining")
	assert.NotContains(t, groups[0].Departures[0], "now_full")
}

func TestDepartures_Options(t *testing.T) {
	s := newServer(t, http.StatusOK)

	status, body := get(t, s, "/departures?station=Hermannplatz&line=M46&reference=true")
	require.Equal(t, http.StatusOK, status, string(body))

	var groups []struct {
		Departures []map[string]any `json:"departures"`
	}
	require.NoError(t, json.Unmarshal(body, &groups))
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Departures, 1)
	assert.Equal(t, "Britz", groups[0].Departures[0]["end"])
	assert.Contains(t, groups[0].Departures[0], "now_full")
}

func TestDepartures_PartialFailure(t *testing.T) {
	status, body := get(t, newServer(t, http.StatusOK), "/departures?station=Zoo&station=Hermannplatz")
	assert.Equal(t, http.StatusOK, status, string(body))
}

func TestDepartures_Errors(t *testing.T) {
	tests := []struct {
		name     string
		upstream int
		target   string
		want     int
	}{
		{"missing station", http.StatusOK, "/departures", http.StatusBadRequest},
		{"unknown vehicle", http.StatusOK, "/departures?station=Zoo&vehicle=zeppelin", http.StatusBadRequest},
		{"ambiguous", http.StatusOK, "/departures?station=Zoo", http.StatusNotFound},
		{"upstream down", http.StatusServiceUnavailable, "/departures?station=Hermannplatz", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, newServer(t, tt.upstream), tt.target)
			assert.Equal(t, tt.want, status, string(body))
		})
	}
}

func TestDepartures_FailureBodyIsErrorText(t *testing.T) {
	_, body := get(t, newServer(t, http.StatusOK), "/departures?station=Zoo")

	var text string
	require.NoError(t, json.Unmarshal(body, &text))
	assert.Contains(t, text, "ambiguous station")
	assert.Contains(t, text, "Zoo (Berlin)")
}
