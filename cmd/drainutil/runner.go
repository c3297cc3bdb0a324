package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"github.com/ratebound/ratebound-go-sdk/pkg/digutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/instutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/oputil"
	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/vaultutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/webutil"
)

type Runner struct {
	planLocation string
	concurrency  int
	interval     time.Duration
	intervalCap  int
	retries      int
	retryCodes   []int

	adminAddr       string
	tokenSecretPath string

	vault vaultutil.Params
}

func (r *Runner) Bind(cmd *cobra.Command) error {
	cmd.PersistentFlags().StringVar(
		&r.planLocation, "plan", "plan.yaml",
		`Path or s3:// URL of the drain plan.`)

	cmd.PersistentFlags().IntVar(
		&r.concurrency, "concurrency", 1,
		`Number of operations running at the same time.`)

	cmd.PersistentFlags().DurationVar(
		&r.interval, "interval", 0,
		`Length of the pacing window. Requires --interval-cap.`)

	cmd.PersistentFlags().IntVar(
		&r.intervalCap, "interval-cap", 0,
		`Number of operations that may start within one pacing window.`)

	cmd.PersistentFlags().IntVar(
		&r.retries, "retries", oputil.DefaultRetries,
		`Number of re-attempts for operations that failed transiently.`)

	cmd.PersistentFlags().IntSliceVar(
		&r.retryCodes, "retry-codes", nil,
		`Status codes that mark a failure as transient. Defaults to 429, 409 and 503.`)

	cmd.PersistentFlags().StringVar(
		&r.adminAddr, "admin-addr", "127.0.0.1:8090",
		`Listen address for metrics, health and queue statistics.`)

	cmd.PersistentFlags().StringVar(
		&r.tokenSecretPath, "token-secret-path", "",
		`Vault path of the secret containing the bearer token for HTTP operations.`)

	r.vault.Bind(cmd)

	return nil
}

// targetSecret carries the bearer token for the drain target.
type targetSecret struct {
	Token string `vault:"token"`
}

type bearerToken string

func (r *Runner) Run(ctx context.Context) error {
	instutil.InitDefaultTracer()

	ctx, shutdown := context.WithCancel(ctx)
	defer shutdown()

	c := dig.New()

	if r.vault.Token != "" {
		manager, err := vaultutil.Init(ctx, r.vault)
		if err != nil {
			return errors.WithStack(err)
		}

		err = digutil.ProvideValue(c, manager)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	provides := []any{
		func(vault digutil.Optional[vaultutil.Manager]) (*Plan, error) {
			return LoadPlan(ctx, r.planLocation, vault.Value)
		},

		func(vault digutil.Optional[vaultutil.Manager]) (bearerToken, error) {
			return r.resolveToken(vault.Value)
		},

		func() oputil.Executor[string] {
			return oputil.NewRateLimitExecutor[string](oputil.RateLimitExecutorOptions{
				Name:        "drain",
				Concurrency: r.concurrency,
				Interval:    r.interval,
				IntervalCap: r.intervalCap,
				Retries:     r.retries,
			})
		},

		func(plan *Plan, executor oputil.Executor[string], token bearerToken) *DrainWorker {
			return &DrainWorker{
				plan:       plan,
				executor:   executor,
				token:      string(token),
				retryCodes: r.retryCodes,
				shutdown:   shutdown,
			}
		},
	}

	for _, provide := range provides {
		err := c.Provide(provide)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	err := runutil.ProvideWorker(c, func(w *DrainWorker) *DrainWorker { return w })
	if err != nil {
		return errors.WithStack(err)
	}

	err = runutil.ProvideWorker(c, func() *webutil.AdminServer {
		return webutil.NewAdminServer(r.adminAddr)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = runutil.RunProvidedWorkers(ctx, c)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Invoke(func(w *DrainWorker) error {
		fmt.Print(w.summary.Render())

		if n := w.summary.Failures(); n > 0 {
			return errors.Errorf("%d operations did not succeed", n)
		}

		return nil
	})
}

func (r *Runner) resolveToken(vault *vaultutil.Manager) (bearerToken, error) {
	if vault == nil || r.tokenSecretPath == "" {
		return "", nil
	}

	secret, err := vaultutil.DecodeSecret[targetSecret](vault, r.tokenSecretPath)
	if err != nil {
		return "", errors.Wrap(err, "read bearer token")
	}

	return bearerToken(secret.Token), nil
}

// DrainWorker submits every plan operation to the executor and collects the
// outcomes. It shuts the application down once the whole plan is drained.
type DrainWorker struct {
	plan       *Plan
	executor   oputil.Executor[string]
	token      string
	retryCodes []int
	shutdown   context.CancelFunc

	summary *Summary
}

func (w *DrainWorker) Workers() []runutil.Worker {
	return []runutil.Worker{w}
}

func (w *DrainWorker) Run(ctx context.Context) error {
	defer w.shutdown()

	dumpJSON(w.plan)

	results := make([]error, len(w.plan.Operations))

	var wg sync.WaitGroup
	for i := range w.plan.Operations {
		op := &w.plan.Operations[i]

		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = w.drain(ctx, op)
		}()
	}

	wg.Wait()

	w.summary = NewSummary(w.plan.Operations, results)

	logutil.Get(ctx).Info("drain finished",
		"succeeded", w.summary.Succeeded,
		"failed", w.summary.Failed,
		"exhausted", w.summary.Exhausted,
	)

	return nil
}

func (w *DrainWorker) drain(ctx context.Context, op *Operation) error {
	opts := []oputil.RunOption{
		oputil.WithName(op.Name),
	}

	if len(w.retryCodes) > 0 {
		opts = append(opts, oputil.WithRetryStatus(w.retryCodes...))
	}

	_, err := w.executor.Run(ctx, func(ctx context.Context) (string, error) {
		return op.run(ctx, http.DefaultClient, w.token)
	}, opts...)

	return err
}
