package proxy

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"blueorgreen/internal/handler"
	"blueorgreen/internal/loadbalancer"
)

// Targeter löst einen logischen Service-Namen in eine Instanz-URL auf.
type Targeter interface {
	Target(ctx context.Context, service string) (*url.URL, error)
}

type targetKey struct{}

// ServiceProxy leitet alle Anfragen unter prefix an eine Instanz von service weiter.
// Der Präfix wird vor dem Weiterleiten entfernt.
func ServiceProxy(prefix, service string, targeter Targeter, logger *zap.Logger) http.Handler {
	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			target := pr.In.Context().Value(targetKey{}).(*url.URL)
			out := *pr.Out.URL
			out.Path = strings.TrimPrefix(out.Path, prefix)
			if out.RawPath != "" {
				out.RawPath = strings.TrimPrefix(out.RawPath, prefix)
			}
			pr.Out.URL = loadbalancer.Rewrite(&out, target)
			pr.Out.Host = target.Host
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("weiterleitung fehlgeschlagen",
				zap.String("service", service),
				zap.String("pfad", r.URL.Path),
				zap.Error(err),
			)
			handler.WriteError(w, http.StatusInternalServerError, "interner serverfehler")
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target, err := targeter.Target(r.Context(), service)
		if err != nil {
			rp.ErrorHandler(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), targetKey{}, target)
		rp.ServeHTTP(w, r.WithContext(ctx))
	})
}
