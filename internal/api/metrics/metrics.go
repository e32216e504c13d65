// Package metrics defines all custom Prometheus metrics for the tomato
// market API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "market"

// SignupsTotal counts account creations.
// Label:
//   - role: "customer" or "admin" (the role granted at signup)
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by granted role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProductsCreatedTotal counts new product listings.
// Label:
//   - category: the product category as submitted
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products listed, by category.",
	},
	[]string{"category"},
)

// QuotationsRequestedTotal counts quotations opened by customers.
var QuotationsRequestedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotations_requested_total",
		Help:      "Total number of quotations requested.",
	},
)

// QuotationsApprovedTotal counts quotation approvals by sellers.
var QuotationsApprovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotations_approved_total",
		Help:      "Total number of quotations approved.",
	},
)

// SellerApplicationsTotal counts seller application events.
// Label:
//   - action: "filed" or "approved"
var SellerApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seller_applications_total",
		Help:      "Total number of seller application events, by action.",
	},
	[]string{"action"},
)
