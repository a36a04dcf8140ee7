package regtree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsRenderValue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "winregfs_value_render",
			Help: "Number of times a registry value was rendered",
		})

	metricsReadDirLruHit = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "winregfs_readdir_lru_hit",
			Help: "Performance of the Read Dir Cache",
		})

	metricsReadDirLruMiss = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "winregfs_readdir_lru_miss",
			Help: "Performance of the Read Dir Cache",
		})
)
