// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"os"

	sigar "github.com/elastic/gosigar"
	"github.com/prometheus/client_golang/prometheus"
)

// hostCollector reports host memory and load alongside the process collector.
// Values the platform cannot provide are left out of the scrape.
type hostCollector struct {
	pid int

	memTotal    *prometheus.Desc
	memFree     *prometheus.Desc
	residentMem *prometheus.Desc
	load        *prometheus.Desc
}

func newHostCollector() *hostCollector {
	return &hostCollector{
		pid: os.Getpid(),
		memTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "host", "memory_total_bytes"),
			"Total physical memory of the host.", nil, nil),
		memFree: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "host", "memory_available_bytes"),
			"Memory available to new allocations, page cache included.", nil, nil),
		residentMem: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "host", "process_resident_bytes"),
			"Resident set size of the process as seen by the host.", nil, nil),
		load: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "host", "load_average"),
			"System load average.", []string{"window"}, nil),
	}
}

func (c *hostCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.memTotal
	ch <- c.memFree
	ch <- c.residentMem
	ch <- c.load
}

func (c *hostCollector) Collect(ch chan<- prometheus.Metric) {
	var mem sigar.Mem
	if err := mem.Get(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.memTotal, prometheus.GaugeValue, float64(mem.Total))
		ch <- prometheus.MustNewConstMetric(c.memFree, prometheus.GaugeValue, float64(mem.ActualFree))
	}

	var proc sigar.ProcMem
	if err := proc.Get(c.pid); err == nil {
		ch <- prometheus.MustNewConstMetric(c.residentMem, prometheus.GaugeValue, float64(proc.Resident))
	}

	var load sigar.LoadAverage
	if err := load.Get(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, load.One, "1m")
		ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, load.Five, "5m")
		ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, load.Fifteen, "15m")
	}
}
