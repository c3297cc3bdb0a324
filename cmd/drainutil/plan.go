package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ratebound/ratebound-go-sdk/pkg/executil"
	"github.com/ratebound/ratebound-go-sdk/pkg/formatutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/vaultutil"
)

// Plan is the list of operations to drain.
type Plan struct {
	Operations []Operation `yaml:"operations"`
}

// Operation is a single unit of the plan. It either describes an HTTP
// request (method and url) or a local command (exec).
type Operation struct {
	Name   string   `yaml:"name"`
	Method string   `yaml:"method,omitempty"`
	URL    string   `yaml:"url,omitempty"`
	Body   string   `yaml:"body,omitempty"`
	Exec   []string `yaml:"exec,omitempty"`
}

// LoadPlan reads the plan from a local path or an s3:// URL and validates
// it. S3 downloads use AWS credentials from Vault, if a manager is given.
func LoadPlan(ctx context.Context, location string, vault *vaultutil.Manager) (*Plan, error) {
	data, err := readPlan(ctx, location, vault)
	if err != nil {
		return nil, err
	}

	logutil.Get(ctx).Debug("loaded plan",
		"location", location,
		"size", formatutil.ByteFormatIEC(int64(len(data))),
	)

	plan := new(Plan)
	err = yaml.Unmarshal(data, plan)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal plan")
	}

	err = plan.validate()
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func readPlan(ctx context.Context, location string, vault *vaultutil.Manager) ([]byte, error) {
	if !strings.HasPrefix(location, "s3://") {
		data, err := os.ReadFile(location)
		return data, errors.Wrapf(err, "read plan from %q", location)
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, errors.Wrapf(err, "parse plan URL %q", location)
	}

	cfg, err := awsConfig(ctx, vault)
	if err != nil {
		return nil, err
	}

	buf := manager.NewWriteAtBuffer(nil)
	downloader := manager.NewDownloader(s3.NewFromConfig(*cfg))

	_, err = downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(u.Host),
		Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
	})

	return buf.Bytes(), errors.Wrapf(err, "download plan from %q", location)
}

func awsConfig(ctx context.Context, vault *vaultutil.Manager) (*aws.Config, error) {
	if vault != nil {
		return vault.AWSConfig(ctx)
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	return &cfg, errors.WithStack(err)
}

func (p *Plan) validate() error {
	for i := range p.Operations {
		op := &p.Operations[i]

		if op.Name == "" {
			return errors.Errorf("operation #%d has no name", i+1)
		}

		hasURL := op.URL != ""
		hasExec := len(op.Exec) > 0

		if hasURL == hasExec {
			return errors.Errorf("operation %q needs either a url or an exec command", op.Name)
		}
	}

	return nil
}

// run executes the operation once. Deciding whether a failure gets retried
// is up to the executor.
func (op *Operation) run(ctx context.Context, client *http.Client, token string) (string, error) {
	if len(op.Exec) > 0 {
		return op.runExec(ctx)
	}

	return op.runHTTP(ctx, client, token)
}

func (op *Operation) runHTTP(ctx context.Context, client *http.Client, token string) (string, error) {
	method := op.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if op.Body != "" {
		body = strings.NewReader(op.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, op.URL, body)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(io.Discard, resp.Body)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if resp.StatusCode >= 400 {
		return "", &responseError{response: resp}
	}

	return resp.Status, nil
}

func (op *Operation) runExec(ctx context.Context) (string, error) {
	return executil.Output(ctx, op.Exec[0], op.Exec[1:]...)
}

// responseError keeps the raw response, so the error classifier can read the
// status code from it.
type responseError struct {
	response *http.Response
}

func (e *responseError) Error() string {
	return fmt.Sprintf("request failed with %s", e.response.Status)
}

func (e *responseError) Response() *http.Response {
	return e.response
}
