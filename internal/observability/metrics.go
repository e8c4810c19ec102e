package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scrape_cycles_total",
			Help: "Total scrape cycles started",
		},
	)
	ProductsScrapedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "products_scraped_total",
			Help: "Total products merged and persisted",
		},
	)
	ScrapeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_errors_total",
			Help: "Total scrape errors by stage",
		},
		[]string{"stage"},
	)
)

func Start(port string) {
	prometheus.MustRegister(CyclesTotal, ProductsScrapedTotal, ScrapeErrorsTotal)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
