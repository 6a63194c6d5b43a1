package reco

import (
	"strings"

	"telcoReco/domain"
)

const maxReasonFragments = 3

const fallbackReason = "Berdasarkan analisis perilaku penggunaan Anda"

// GenerateReason builds the customer-facing explanation for one recommended
// offer. Pure and deterministic: the rule table is evaluated in priority
// order and at most three fragments are kept, joined into one sentence. The
// offer label gates the usage-specific fragments the same way the label
// itself was produced from usage.
func GenerateReason(offerName string, s domain.FeatureSnapshot) string {
	lower := strings.ToLower(offerName)
	fragments := []string{}

	isDataOffer := strings.Contains(lower, "data") || strings.Contains(lower, "internet") ||
		strings.Contains(lower, "kuota") || strings.Contains(lower, "gb")
	isVoiceOffer := strings.Contains(lower, "nelpon") || strings.Contains(lower, "call") ||
		strings.Contains(lower, "voice")

	if isDataOffer {
		switch {
		case s.AvgDataUsageGB > 10:
			fragments = append(fragments, "Penggunaan data Anda sangat tinggi")
		case s.AvgDataUsageGB > 3:
			fragments = append(fragments, "Penggunaan data Anda tinggi")
		}

		switch {
		case s.PctVideoUsage > 0.7:
			fragments = append(fragments, "Anda sangat sering streaming video")
		case s.PctVideoUsage > 0.5:
			fragments = append(fragments, "Anda sering streaming video")
		}
	}

	if isVoiceOffer {
		switch {
		case s.AvgCallDuration > 30:
			fragments = append(fragments, "Anda sangat sering menelepon")
		case s.AvgCallDuration > 10:
			fragments = append(fragments, "Durasi telepon Anda tinggi")
		}
	}

	if s.PlanType == domain.PlanPostpaid {
		fragments = append(fragments, "Cocok untuk pengguna postpaid")
	} else {
		fragments = append(fragments, "Cocok untuk pengguna prepaid")
	}

	switch {
	case s.MonthlySpend > 250000:
		fragments = append(fragments, "Sesuai dengan budget premium Anda")
	case s.MonthlySpend > 100000:
		fragments = append(fragments, "Sesuai dengan budget bulanan Anda")
	}

	if s.TravelScore > 0.5 {
		fragments = append(fragments, "Cocok untuk yang sering bepergian")
	}

	if s.ComplaintCount == 0 {
		fragments = append(fragments, "Terima kasih telah menjadi pelanggan setia kami")
	}

	if s.TopupFreq > 5 {
		fragments = append(fragments, "Anda rutin melakukan isi ulang")
	}

	if len(fragments) == 0 {
		return fallbackReason
	}

	if len(fragments) > maxReasonFragments {
		fragments = fragments[:maxReasonFragments]
	}

	return strings.Join(fragments, ". ")
}
