// Package metrics регистрирует счётчики Prometheus жизненного цикла подписки.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics содержит счётчики операций рассылки.
type Metrics struct {
	SubscribesTotal       prometheus.Counter
	VerificationsTotal    prometheus.Counter
	UnsubscribesTotal     prometheus.Counter
	DeliveryFailuresTotal prometheus.Counter
}

// New регистрирует счётчики в реестре reg и возвращает их.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubscribesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_subscribes_total",
			Help: "Number of accepted subscribe requests.",
		}),
		VerificationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_verifications_total",
			Help: "Number of successful subscription verifications.",
		}),
		UnsubscribesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_unsubscribes_total",
			Help: "Number of deleted subscribers.",
		}),
		DeliveryFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_confirmation_delivery_failures_total",
			Help: "Number of confirmation emails that could not be delivered.",
		}),
	}
}
