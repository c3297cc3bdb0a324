package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"

	"github.com/ratebound/ratebound-go-sdk/pkg/oputil"
	"github.com/ratebound/ratebound-go-sdk/pkg/queueutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/testutil"
)

func writePlanFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plan.yaml")

	err := os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadPlan(t *testing.T) {
	path := writePlanFile(t, `
operations:
  - name: delete-user-1
    method: DELETE
    url: https://api.example.com/v1/users/1
  - name: refresh-cache
    exec: ["true"]
`)

	plan, err := LoadPlan(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.Operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(plan.Operations))
	}

	if plan.Operations[0].Method != "DELETE" {
		t.Errorf("expected method DELETE, got %q", plan.Operations[0].Method)
	}

	if len(plan.Operations[1].Exec) != 1 || plan.Operations[1].Exec[0] != "true" {
		t.Errorf("expected exec command, got %v", plan.Operations[1].Exec)
	}
}

func TestLoadPlanValidation(t *testing.T) {
	cases := []struct {
		name string
		plan string
		want string
	}{
		{
			name: "NoName",
			plan: "operations:\n  - url: https://example.com\n",
			want: "operation #1 has no name",
		},
		{
			name: "URLAndExec",
			plan: "operations:\n  - name: broken\n    url: https://example.com\n    exec: [\"true\"]\n",
			want: `operation "broken" needs either a url or an exec command`,
		},
		{
			name: "Neither",
			plan: "operations:\n  - name: empty\n",
			want: `operation "empty" needs either a url or an exec command`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadPlan(context.Background(), writePlanFile(t, tc.plan), nil)
			if err == nil {
				t.Fatal("expected an error")
			}

			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error to contain %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestSummaryRender(t *testing.T) {
	operations := []Operation{
		{Name: "user-1"},
		{Name: "user-2"},
		{Name: "user-3"},
		{Name: "user-4"},
		{Name: "user-5"},
		{Name: "user-6"},
		{Name: "user-7"},
		{Name: "user-8"},
		{Name: "user-9"},
		{Name: "user-10"},
	}

	results := []error{
		nil,
		errors.New("connection reset"),
		oputil.RetriesExhaustedError{Name: "user-3", Retries: 3, Err: errors.New("too many requests")},
		errors.New("boom"),
		nil,
		errors.New("broken pipe"),
		errors.New("no route to host"),
		errors.New("i/o timeout"),
		queueutil.AttemptsExhaustedError{Attempts: 5, Err: errors.New("slow down")},
		nil,
	}

	summary := NewSummary(operations, results)

	if summary.Succeeded != 3 {
		t.Errorf("expected 3 successes, got %d", summary.Succeeded)
	}

	if summary.Exhausted != 2 {
		t.Errorf("expected 2 exhausted operations, got %d", summary.Exhausted)
	}

	if summary.Failures() != 7 {
		t.Errorf("expected 7 failures, got %d", summary.Failures())
	}

	testutil.AssertGolden(t, "testdata/drain-summary.golden", []byte(summary.Render()))
}

func TestDrainWorker(t *testing.T) {
	var flakyHits atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
	})
	mux.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		if flakyHits.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
		}
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/busy", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	plan := &Plan{Operations: []Operation{
		{Name: "ok", URL: server.URL + "/ok"},
		{Name: "flaky", URL: server.URL + "/flaky"},
		{Name: "gone", URL: server.URL + "/gone"},
		{Name: "busy", URL: server.URL + "/busy"},
		{Name: "hello", Exec: []string{"echo", "hello"}},
	}}

	executor := oputil.NewRateLimitExecutor[string](oputil.RateLimitExecutorOptions{
		Concurrency: 4,
		Retries:     2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := &DrainWorker{
		plan:     plan,
		executor: executor,
		token:    "test-token",
		shutdown: cancel,
	}

	err := worker.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if ctx.Err() == nil {
		t.Error("expected the worker to shut the context down when the plan is drained")
	}

	if got := flakyHits.Load(); got != 3 {
		t.Errorf("expected 3 attempts on the flaky operation, got %d", got)
	}

	summary := worker.summary
	if summary.Succeeded != 3 || summary.Failed != 1 || summary.Exhausted != 1 {
		t.Errorf("unexpected summary: %d succeeded, %d failed, %d exhausted",
			summary.Succeeded, summary.Failed, summary.Exhausted)
	}
}
