package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/larsmk/crystalgraph/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	builder := pipeline.NewBuilder(nil, nil, logger)
	srv := httptest.NewServer(NewServer(builder, logger).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const csclBody = `{
	"crystal": {
		"lattice": [[4.11, 0, 0], [0, 4.11, 0], [0, 0, 4.11]],
		"fractional": [[0, 0, 0], [0.5, 0.5, 0.5]],
		"species": ["Cs", "Cl"]
	},
	"options": {"cutoff": 4.0}
}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestBuildCrystalAndGet(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/graphs", csclBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var built buildResponse
	if err := json.NewDecoder(resp.Body).Decode(&built); err != nil {
		t.Fatal(err)
	}
	if built.ID == "" || built.Nodes != 2 {
		t.Errorf("response = %+v", built)
	}
	if !bytes.Contains(built.Graph, []byte(`"element"`)) {
		t.Errorf("graph payload missing nodes: %s", built.Graph)
	}

	// The stored graph is retrievable under its assigned ID.
	got, err := http.Get(srv.URL + "/graphs/" + built.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer got.Body.Close()
	if got.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", got.StatusCode)
	}
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(got.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.ID != built.ID {
		t.Errorf("stored id = %q, want %q", doc.ID, built.ID)
	}
}

func TestBuildMolecule(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"molecule": {"species": ["O", "H", "H"], "bonds": [[0, 1], [0, 2]]},
		"options": {}
	}`
	resp := postJSON(t, srv.URL+"/graphs", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var built buildResponse
	if err := json.NewDecoder(resp.Body).Decode(&built); err != nil {
		t.Fatal(err)
	}
	if built.Nodes != 3 || built.Edges != 2 {
		t.Errorf("nodes=%d edges=%d", built.Nodes, built.Edges)
	}
}

func TestBuildValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty body", `{}`, http.StatusBadRequest},
		{"both sources", `{
			"crystal": {"lattice": [[1,0,0],[0,1,0],[0,0,1]], "fractional": [[0,0,0]], "species": ["H"]},
			"molecule": {"species": ["H"]}
		}`, http.StatusBadRequest},
		{"bad JSON", `{"crystal": `, http.StatusBadRequest},
		{"unknown decay", `{
			"molecule": {"species": ["H", "H"], "bonds": [[0, 1]]},
			"options": {"decay": "nope"}
		}`, http.StatusBadRequest},
		{"single atom molecule", `{
			"molecule": {"species": ["He"]}
		}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/graphs", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestGetUnknownID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/graphs/no-such-id")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
