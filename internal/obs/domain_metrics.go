package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ShippingQuotesTotal counts shipping cost resolutions by outcome.
	ShippingQuotesTotal *prometheus.CounterVec
	// CouponEvaluationsTotal counts coupon evaluations by outcome.
	CouponEvaluationsTotal *prometheus.CounterVec
	// StockAdjustmentsTotal counts committed stock ledger mutations by reason.
	StockAdjustmentsTotal *prometheus.CounterVec
	// LowStockAlertsTotal counts low-stock alerts enqueued after a ledger commit.
	LowStockAlertsTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ShippingQuotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipping_quotes_total",
			Help:      "Count of shipping cost resolutions by outcome.",
		}, []string{"result"})
		CouponEvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_evaluations_total",
			Help:      "Count of coupon evaluations by outcome.",
		}, []string{"result"})
		StockAdjustmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_total",
			Help:      "Count of committed stock level mutations by reason.",
		}, []string{"reason"})
		LowStockAlertsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "low_stock_alerts_total",
			Help:      "Number of low-stock alerts enqueued.",
		})

		ShippingQuotesTotal = registerOrReuse(reg, ShippingQuotesTotal)
		CouponEvaluationsTotal = registerOrReuse(reg, CouponEvaluationsTotal)
		StockAdjustmentsTotal = registerOrReuse(reg, StockAdjustmentsTotal)
		LowStockAlertsTotal = registerOrReuse(reg, LowStockAlertsTotal)
	})
}

// ObserveShippingQuote records a shipping resolution outcome when metrics are registered.
func ObserveShippingQuote(result string) {
	if ShippingQuotesTotal != nil {
		ShippingQuotesTotal.WithLabelValues(result).Inc()
	}
}

// ObserveCouponEvaluation records a coupon evaluation outcome when metrics are registered.
func ObserveCouponEvaluation(result string) {
	if CouponEvaluationsTotal != nil {
		CouponEvaluationsTotal.WithLabelValues(result).Inc()
	}
}

// ObserveStockAdjustment records a committed ledger mutation when metrics are registered.
func ObserveStockAdjustment(reason string) {
	if StockAdjustmentsTotal != nil {
		StockAdjustmentsTotal.WithLabelValues(reason).Inc()
	}
}

// ObserveLowStockAlert records an enqueued low-stock alert when metrics are registered.
func ObserveLowStockAlert() {
	if LowStockAlertsTotal != nil {
		LowStockAlertsTotal.Inc()
	}
}
