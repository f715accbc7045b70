package loadbalancer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"blueorgreen/internal/discovery"
	"blueorgreen/internal/domain"
)

// maxResponseBody begrenzt die gelesene Upstream-Antwort auf 1 MegaByte.
const maxResponseBody = 1 << 20

// Doer führt eine HTTP-Anfrage aus; *http.Client erfüllt das Interface.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client ist ein HTTP-Client, dessen Host ein logischer Service-Name ist.
type Client struct {
	resolver discovery.Resolver
	balancer Balancer
	http     Doer
	logger   *zap.Logger
}

// NewClient erstellt einen lastverteilenden Client.
func NewClient(resolver discovery.Resolver, balancer Balancer, httpClient Doer, logger *zap.Logger) *Client {
	return &Client{resolver: resolver, balancer: balancer, http: httpClient, logger: logger}
}

// Target löst service in die Basis-URL einer gesunden Instanz auf.
func (c *Client) Target(ctx context.Context, service string) (*url.URL, error) {
	instances, err := c.resolver.Instances(ctx, service)
	if err != nil {
		return nil, err
	}
	up := domain.FilterUp(instances)
	if len(up) == 0 {
		return nil, fmt.Errorf("service %q: %w", service, domain.ErrNoInstances)
	}
	inst, err := c.balancer.Pick(up)
	if err != nil {
		return nil, fmt.Errorf("service %q: %w", service, err)
	}
	target, err := url.Parse(inst.URL)
	if err != nil {
		return nil, fmt.Errorf("instanz %s url %q: %w", inst.ID, inst.URL, domain.ErrInvalidInput)
	}
	c.logger.Debug("instanz gewählt",
		zap.String("service", service),
		zap.String("instanz", inst.ID),
		zap.String("url", inst.URL),
	)
	return target, nil
}

// Rewrite ersetzt Schema und Host von u durch target und stellt den Pfad
// von target voran. Query-Parameter und Prozent-Kodierung von u bleiben erhalten.
func Rewrite(u, target *url.URL) *url.URL {
	out := *u
	out.Scheme = target.Scheme
	out.Host = target.Host
	out.User = target.User
	out.Path = joinPath(target.Path, u.Path)
	out.RawPath = ""
	if u.RawPath != "" {
		out.RawPath = joinPath(target.EscapedPath(), u.RawPath)
	}
	return &out
}

func joinPath(base, p string) string {
	base = strings.TrimSuffix(base, "/")
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// GetString ruft rawURL per GET auf und gibt den Body unverändert zurück.
// Der Host von rawURL wird über Discovery und Balancer aufgelöst.
func (c *Client) GetString(ctx context.Context, rawURL string) (string, error) {
	logical, err := url.Parse(rawURL)
	if err != nil || logical.Host == "" {
		return "", fmt.Errorf("ungültige url %q: %w", rawURL, domain.ErrInvalidInput)
	}

	target, err := c.Target(ctx, logical.Hostname())
	if err != nil {
		return "", err
	}
	resolved := Rewrite(logical, target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved.String(), nil)
	if err != nil {
		return "", fmt.Errorf("anfrage erstellen: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", resolved.Redacted(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return "", fmt.Errorf("antwort lesen: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("GET %s status %d: %w", resolved.Redacted(), resp.StatusCode, domain.ErrUpstream)
	}
	// eine gekürzte Antwort darf nicht als vollständige durchgereicht werden
	if len(body) > maxResponseBody {
		return "", fmt.Errorf("GET %s antwort größer als %d bytes: %w", resolved.Redacted(), maxResponseBody, domain.ErrUpstream)
	}
	return string(body), nil
}
