package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	SlotsComputed           *prometheus.HistogramVec
	AvailabilityCalcSeconds *prometheus.HistogramVec
	BookingConflictsTotal   *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре (нужно для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		SlotsComputed: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_slots_returned",
			Help:        "Number of slots returned by an availability query",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"cache"}),

		AvailabilityCalcSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_calculation_seconds",
			Help:        "Time spent computing available slots",
			ConstLabels: constLabels,
			Buckets:     []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{}),

		BookingConflictsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Bookings rejected because the slot was taken concurrently",
			ConstLabels: constLabels,
		}, []string{}),
	}
}

// ObserveHTTP записывает метрики HTTP-запроса
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает метрики запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveAvailability записывает результат расчёта свободных слотов
func (m *Metrics) ObserveAvailability(slots int, cached bool, duration time.Duration) {
	label := "miss"
	if cached {
		label = "hit"
	}
	m.SlotsComputed.WithLabelValues(label).Observe(float64(slots))
	if !cached {
		m.AvailabilityCalcSeconds.WithLabelValues().Observe(duration.Seconds())
	}
}

// IncBookingConflict увеличивает счётчик конфликтов бронирования
func (m *Metrics) IncBookingConflict() {
	m.BookingConflictsTotal.WithLabelValues().Inc()
}

// Nop заглушка для случая, когда метрики выключены в конфиге
type Nop struct{}

func (Nop) ObserveAvailability(int, bool, time.Duration) {}

func (Nop) IncBookingConflict() {}
