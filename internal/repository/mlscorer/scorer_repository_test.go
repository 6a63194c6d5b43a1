//go:build !integration

package mlscorer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"telcoReco/domain"
)

func testSnapshot() domain.FeatureSnapshot {
	return domain.FeatureSnapshot{
		PlanType:        domain.PlanPrepaid,
		DeviceBrand:     "Samsung",
		AvgDataUsageGB:  5.5,
		PctVideoUsage:   0.4,
		AvgCallDuration: 12,
		SmsFreq:         20,
		MonthlySpend:    75000,
		TopupFreq:       3,
		TravelScore:     0.2,
		ComplaintCount:  1,
	}
}

func newTestRepo(baseURL string) *ScorerRepository {
	return NewScorerRepository(ScorerConfig{
		BaseURL:        baseURL,
		RequestTimeout: 2 * time.Second,
		HealthTimeout:  time.Second,
	})
}

func TestScore_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/predict" {
			t.Errorf("path = %q, want /api/predict", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		var got domain.FeatureSnapshot
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if got.PlanType != domain.PlanPrepaid || got.DeviceBrand != "Samsung" {
			t.Errorf("unexpected snapshot on the wire: %+v", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"prediction": {
					"recommendations": [
						{"offer": "Internet Hemat 10GB", "score": 92},
						{"offer": "Nelpon Sepuasnya", "score": 61.5}
					]
				}
			}
		}`))
	}))
	defer srv.Close()

	repo := newTestRepo(srv.URL)

	offers, err := repo.Score(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(offers))
	}
	if offers[0].Offer != "Internet Hemat 10GB" || offers[0].Score != 92 {
		t.Errorf("first offer = %+v", offers[0])
	}
	if offers[1].Offer != "Nelpon Sepuasnya" || offers[1].Score != 61.5 {
		t.Errorf("second offer = %+v", offers[1])
	}
}

func TestScore_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	repo := newTestRepo(srv.URL)

	_, err := repo.Score(context.Background(), testSnapshot())
	if !errors.Is(err, domain.ErrScoringUnavailable) {
		t.Fatalf("error = %v, want ErrScoringUnavailable", err)
	}
}

func TestScore_Non200IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := newTestRepo(srv.URL)

	_, err := repo.Score(context.Background(), testSnapshot())
	if !errors.Is(err, domain.ErrScoringUnavailable) {
		t.Fatalf("error = %v, want ErrScoringUnavailable", err)
	}
}

func TestScore_FailureStatusIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "data": {}}`))
	}))
	defer srv.Close()

	repo := newTestRepo(srv.URL)

	_, err := repo.Score(context.Background(), testSnapshot())
	if !errors.Is(err, domain.ErrScoringUnavailable) {
		t.Fatalf("error = %v, want ErrScoringUnavailable", err)
	}
}

func TestScore_MalformedResponses(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `<html>nope</html>`},
		{"missing recommendations", `{"status":"success","data":{"prediction":{}}}`},
		{"empty offer label", `{"status":"success","data":{"prediction":{"recommendations":[{"offer":"","score":50}]}}}`},
		{"score above 100", `{"status":"success","data":{"prediction":{"recommendations":[{"offer":"Paket","score":150}]}}}`},
		{"negative score", `{"status":"success","data":{"prediction":{"recommendations":[{"offer":"Paket","score":-1}]}}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			repo := newTestRepo(srv.URL)

			_, err := repo.Score(context.Background(), testSnapshot())
			if !errors.Is(err, domain.ErrScoringMalformed) {
				t.Fatalf("error = %v, want ErrScoringMalformed", err)
			}
		})
	}
}

func TestScore_TimeoutIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Stall until the client gives up. The body must be drained first:
		// until it hits EOF the server has no background read on the
		// connection, so the client's abort would never cancel r.Context()
		// and the deferred Close would block forever.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	repo := NewScorerRepository(ScorerConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 50 * time.Millisecond,
	})

	_, err := repo.Score(context.Background(), testSnapshot())
	if !errors.Is(err, domain.ErrScoringTimeout) {
		t.Fatalf("error = %v, want ErrScoringTimeout", err)
	}
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
		want bool
	}{
		{"healthy", http.StatusOK, `{"status":"healthy"}`, true},
		{"wrong status word", http.StatusOK, `{"status":"degraded"}`, false},
		{"non-200", http.StatusServiceUnavailable, `{"status":"healthy"}`, false},
		{"garbage body", http.StatusOK, `???`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("path = %q, want /health", r.URL.Path)
				}
				w.WriteHeader(tc.code)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			repo := newTestRepo(srv.URL)

			if got := repo.Health(context.Background()); got != tc.want {
				t.Fatalf("Health = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHealth_DeadScorerIsFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	repo := newTestRepo(srv.URL)

	if repo.Health(context.Background()) {
		t.Fatal("Health = true against a dead scorer")
	}
}
