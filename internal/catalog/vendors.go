package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/nppdeals/inventory-platform/internal/models"
)

const UnknownVendor = "Unknown"

type VendorPerformance struct {
	Vendor         string  `json:"vendor"`
	TotalProducts  int     `json:"total_products"`
	ActiveProducts int     `json:"active_products"`
	OutOfStock     int     `json:"out_of_stock"`
	AverageMOQ     int64   `json:"average_moq"`
	CommonLeadTime string  `json:"common_lead_time"`
	ActiveRate     float64 `json:"active_rate"`
}

type vendorAccumulator struct {
	perf      VendorPerformance
	moqSum    int64
	moqCount  int64
	leadTimes map[string]int
	leadOrder []string
}

// VendorReport groups products by vendor, sorted by product count descending.
func VendorReport(products []*models.Product) []VendorPerformance {
	byVendor := map[string]*vendorAccumulator{}
	order := []string{}

	for _, p := range products {
		if p == nil {
			continue
		}

		name := strings.TrimSpace(p.Vendor)
		if name == "" {
			name = UnknownVendor
		}

		acc, ok := byVendor[name]
		if !ok {
			acc = &vendorAccumulator{perf: VendorPerformance{Vendor: name}, leadTimes: map[string]int{}}
			byVendor[name] = acc
			order = append(order, name)
		}

		acc.perf.TotalProducts++
		if p.OutOfStock {
			acc.perf.OutOfStock++
		} else {
			acc.perf.ActiveProducts++
		}

		if moq := p.MOQOrZero(); moq > 0 {
			acc.moqSum += moq
			acc.moqCount++
		}

		if lt := strings.TrimSpace(p.LeadTime); lt != "" {
			if acc.leadTimes[lt] == 0 {
				acc.leadOrder = append(acc.leadOrder, lt)
			}
			acc.leadTimes[lt]++
		}
	}

	report := make([]VendorPerformance, 0, len(order))

	for _, name := range order {
		acc := byVendor[name]

		if acc.moqCount > 0 {
			acc.perf.AverageMOQ = int64(math.Round(float64(acc.moqSum) / float64(acc.moqCount)))
		}

		acc.perf.CommonLeadTime = "N/A"
		best := 0
		for _, lt := range acc.leadOrder {
			if acc.leadTimes[lt] > best {
				best = acc.leadTimes[lt]
				acc.perf.CommonLeadTime = lt
			}
		}

		acc.perf.ActiveRate = math.Round(float64(acc.perf.ActiveProducts)/float64(acc.perf.TotalProducts)*1000) / 10

		report = append(report, acc.perf)
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].TotalProducts > report[j].TotalProducts
	})

	return report
}
