package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth results. Keep these stable; dashboards alert on "unexpected".
const (
	ResultOK           = "ok"
	ResultInvalidToken = "invalid_token"
	ResultUnexpected   = "unexpected"
	ResultTransport    = "transport_error"
	ResultFormat       = "format_error"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	sessionAuth = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront_app",
			Subsystem: "auth",
			Name:      "session_checks_total",
			Help:      "Session token checks performed by the request authenticator.",
		},
		[]string{"result"},
	)

	platformTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront_app",
			Subsystem: "auth",
			Name:      "platform_token_checks_total",
			Help:      "Platform-signed payload checks on load and uninstall.",
		},
		[]string{"result"},
	)

	oauthExchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront_app",
			Subsystem: "install",
			Name:      "oauth_exchanges_total",
			Help:      "Authorization-code exchanges with the platform.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		sessionAuth,
		platformTokens,
		oauthExchanges,
	)
}

func ObserveSessionAuth(result string)   { sessionAuth.WithLabelValues(result).Inc() }
func ObservePlatformToken(result string) { platformTokens.WithLabelValues(result).Inc() }
func ObserveOAuthExchange(result string) { oauthExchanges.WithLabelValues(result).Inc() }

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
