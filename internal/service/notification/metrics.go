package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// deliveryMetrics 채널별 전달 결과 카운터입니다.
type deliveryMetrics struct {
	deliveries *prometheus.CounterVec
}

// defaultMetrics 기본 레지스트리에 등록된 전역 카운터입니다. /metrics 엔드포인트로 노출됩니다.
var defaultMetrics = newDeliveryMetrics(prometheus.DefaultRegisterer)

func newDeliveryMetrics(reg prometheus.Registerer) *deliveryMetrics {
	return &deliveryMetrics{
		deliveries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "voice_notifier",
			Name:      "deliveries_total",
			Help:      "Provider별 알림 전달 결과 수",
		}, []string{"provider", "result"}),
	}
}

func (m *deliveryMetrics) observe(provider, result string) {
	m.deliveries.WithLabelValues(provider, result).Inc()
}
