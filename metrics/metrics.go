// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"

	"github.com/omec-project/amfcfg/context"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "amf"

// Config load outcomes
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collector groups the configuration metrics on a registry of its own.
type Collector struct {
	registry *prometheus.Registry

	configLoads     *prometheus.CounterVec
	configWarnings  prometheus.Counter
	servedTaiCount  prometheus.Gauge
	servedTaiType   prometheus.Gauge
	lastLoadSuccess prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		configLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "config",
			Name:      "loads_total",
			Help:      "Configuration loads by result.",
		}, []string{"result"}),
		configWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "config",
			Name:      "warnings_total",
			Help:      "Configuration values reported but not rejected.",
		}),
		servedTaiCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "config",
			Name:      "served_tai_entries",
			Help:      "Number of tracking areas in the served TAI list.",
		}),
		servedTaiType: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "config",
			Name:      "served_tai_list_type",
			Help:      "Type of list of the served TAI list (0 non consecutive, 1 consecutive, 2 many PLMNs).",
		}),
		lastLoadSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "config",
			Name:      "last_load_success_timestamp_seconds",
			Help:      "Time of the last successful configuration load.",
		}),
	}
	c.registry.MustRegister(c.configLoads, c.configWarnings, c.servedTaiCount, c.servedTaiType, c.lastLoadSuccess)
	return c
}

// ObserveLoad records the outcome of a load or reload.
func (c *Collector) ObserveLoad(err error, warnings int, tai context.ServedTaiList) {
	if err != nil {
		c.configLoads.WithLabelValues(ResultFailure).Inc()
		return
	}
	c.configLoads.WithLabelValues(ResultSuccess).Inc()
	c.configWarnings.Add(float64(warnings))
	c.servedTaiCount.Set(float64(len(tai.Entries)))
	c.servedTaiType.Set(float64(tai.ListType))
	c.lastLoadSuccess.SetToCurrentTime()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
