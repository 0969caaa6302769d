// Package attachment resolves the opaque file references stored on
// documents and steps against the external document-hosting service.
// References are never interpreted locally.
package attachment

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/imroc/req/v3"
)

type Resolver struct {
	client  *req.Client
	baseURL string
}

func NewResolver(baseURL string, timeout time.Duration) *Resolver {
	client := req.C().
		SetTimeout(timeout).
		SetCommonRetryCount(2).
		SetCommonRetryBackoffInterval(100*time.Millisecond, time.Second)
	return &Resolver{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Resolve turns a stored reference into a displayable URL.
func (r *Resolver) Resolve(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", fmt.Errorf("empty attachment reference")
	}
	return r.baseURL + "/d/" + url.PathEscape(ref), nil
}

// Check verifies the reference is still reachable on the blob host.
func (r *Resolver) Check(ctx context.Context, ref string) error {
	target, err := r.Resolve(ref)
	if err != nil {
		return err
	}
	resp, err := r.client.R().SetContext(ctx).Head(target)
	if err != nil {
		return err
	}
	if resp.IsErrorState() {
		return fmt.Errorf("attachment %q not reachable: %s", ref, resp.Status)
	}
	return nil
}
