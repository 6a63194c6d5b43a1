package behavior

import (
	"math"
	"regexp"
	"strconv"

	"telcoReco/domain"
)

// Matches the data amount a product name encodes, e.g. "Internet Hemat 10GB"
// or "Paket 2.5 GB".
var dataPackPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*GB`)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// DataAmountGB extracts the "<N> GB" amount from a product name. Returns
// false when the name encodes no data pack.
func DataAmountGB(productName string) (float64, bool) {
	m := dataPackPattern.FindStringSubmatch(productName)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ApplyPurchaseEffect returns the behavior profile after buying a product.
// Spend and top-up count always move; the data fields only move when the
// product name encodes a data amount. Balance never goes below zero.
func ApplyPurchaseEffect(profile domain.UserBehavior, product domain.Product) domain.UserBehavior {
	topupBefore := profile.TopupFreq

	profile.MonthlySpend += product.Price
	profile.TopupFreq = topupBefore + 1

	if addedGB, ok := DataAmountGB(product.Name); ok {
		profile.AvgDataUsageGB = round1(
			(profile.AvgDataUsageGB*float64(topupBefore) + addedGB) / float64(topupBefore+1),
		)
		profile.DataRemainingGB = round1(profile.DataRemainingGB + addedGB)
	}

	profile.Balance = math.Max(0, profile.Balance-product.Price)

	return profile
}
