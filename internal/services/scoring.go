package services

import (
	"math"
	"regexp"
	"strings"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/providers"
)

// threatKeywords is the fixed set scanned by AnalyzeMessageForThreats.
var threatKeywords = []string{"scam", "fraud", "suspicious", "help", "emergency", "hack", "steal", "money"}

// highRiskKeywords and mediumRiskKeywords drive severity classification of
// free-text intelligence content.
var (
	highRiskKeywords   = []string{"scam", "fraud", "stolen", "fake", "phishing", "identity theft"}
	mediumRiskKeywords = []string{"suspicious", "report", "warning", "caution", "verify"}
)

// disposableDomains are throwaway email providers flagged during email
// analysis.
var disposableDomains = []string{
	"10minutemail.com", "tempmail.org", "guerrillamail.com",
	"mailinator.com", "throwaway.email", "temp-mail.org",
}

var (
	emailRegex        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	longDigitRun      = regexp.MustCompile(`[0-9]{8,}`)
	longLetterRun     = regexp.MustCompile(`[a-z]{20,}`)
	repeatedSpecials  = regexp.MustCompile(`[.\-_]{3,}`)
	sixDigitSequence  = regexp.MustCompile(`\d{6,}`)
	numericQueryGuess = regexp.MustCompile(`\d{3,}`)
)

// AnalyzeMessageForThreats scans free text for threat keywords: three or
// more matches is high (confidence 90), two is medium (80), fewer is low
// (70). Indicators name each matched keyword.
func AnalyzeMessageForThreats(message string) *models.ThreatSignal {
	lower := strings.ToLower(message)

	matches := []string{}
	for _, keyword := range threatKeywords {
		if strings.Contains(lower, keyword) {
			matches = append(matches, keyword)
		}
	}

	level := models.ThreatLevelLow
	confidence := 70

	if len(matches) >= 3 {
		level = models.ThreatLevelHigh
		confidence = 90
	} else if len(matches) >= 2 {
		level = models.ThreatLevelMedium
		confidence = 80
	}

	indicators := make([]string, len(matches))
	for i, match := range matches {
		indicators[i] = "Keyword detected: " + match
	}

	return &models.ThreatSignal{
		ThreatLevel: level,
		Confidence:  confidence,
		Indicators:  indicators,
	}
}

// CalculateReputation converts engine detection counts into a 0-100 score.
// With no data the score is a neutral 50; otherwise the harmless ratio minus
// the threat ratio, scaled and clamped.
func CalculateReputation(stats providers.DetectionStats) int {
	total := stats.Harmless + stats.Malicious + stats.Suspicious + stats.Undetected
	if total == 0 {
		return 50
	}

	safeRatio := float64(stats.Harmless) / float64(total)
	threatRatio := float64(stats.Malicious+stats.Suspicious) / float64(total)

	score := int(math.Round((safeRatio - threatRatio) * 100))
	return clampScore(score)
}

// CalculateWalletRiskScore applies three independent additive heuristics:
// bot-scale transaction volume, a large balance, and near-zero activity.
func CalculateWalletRiskScore(transactionCount int, balance float64) int {
	riskScore := 0

	// High transaction volume might indicate bot activity.
	if transactionCount > 1000 {
		riskScore += 20
	}

	// Large balances concentrate more to lose.
	if balance > 100 {
		riskScore += 10
	}

	// Very low activity might indicate an inactive or burner wallet.
	if transactionCount < 10 {
		riskScore += 15
	}

	if riskScore > 100 {
		riskScore = 100
	}
	return riskScore
}

// WalletLabels derives display labels from activity and balance.
func WalletLabels(transactionCount int, balance float64) []string {
	labels := []string{}

	if transactionCount > 1000 {
		labels = append(labels, "High Activity")
	}
	if transactionCount < 10 {
		labels = append(labels, "Low Activity")
	}
	if balance > 1000 {
		labels = append(labels, "High Value")
	}
	if balance < 0.01 {
		labels = append(labels, "Low Balance")
	}

	return labels
}

// AssessThreatSeverity classifies free-text content by keyword containment,
// case-insensitively. High-risk keywords win over medium-risk ones.
func AssessThreatSeverity(content string) models.Severity {
	lower := strings.ToLower(content)

	for _, keyword := range highRiskKeywords {
		if strings.Contains(lower, keyword) {
			return models.SeverityHigh
		}
	}
	for _, keyword := range mediumRiskKeywords {
		if strings.Contains(lower, keyword) {
			return models.SeverityMedium
		}
	}
	return models.SeverityLow
}

// CategorizeThreat maps content to a threat category, first match wins.
func CategorizeThreat(content string) string {
	lower := strings.ToLower(content)

	switch {
	case strings.Contains(lower, "romance") || strings.Contains(lower, "dating"):
		return "Romance Scam"
	case strings.Contains(lower, "financial") || strings.Contains(lower, "money"):
		return "Financial Fraud"
	case strings.Contains(lower, "identity") || strings.Contains(lower, "personal"):
		return "Identity Theft"
	case strings.Contains(lower, "phishing") || strings.Contains(lower, "email"):
		return "Phishing Attack"
	default:
		return "General Threat"
	}
}

// IsEmailSafe runs basic shape checks: a valid address with none of the
// patterns common in machine-generated accounts.
func IsEmailSafe(email string) bool {
	if !emailRegex.MatchString(email) {
		return false
	}

	if longDigitRun.MatchString(email) {
		return false
	}
	if longLetterRun.MatchString(strings.ToLower(email)) {
		return false
	}
	if repeatedSpecials.MatchString(email) {
		return false
	}

	return true
}

// CalculateEmailReputation starts at 100 and deducts for automation
// patterns: no-reply addresses, long digit sequences, very long local parts.
func CalculateEmailReputation(email string) int {
	score := 100

	if strings.Contains(email, "noreply") || strings.Contains(email, "donotreply") {
		score -= 20
	}
	if sixDigitSequence.MatchString(email) {
		score -= 15
	}
	if local, _, found := strings.Cut(email, "@"); found && len(local) > 20 {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score
}

// IsDisposableDomain reports whether the domain is a known throwaway email
// provider.
func IsDisposableDomain(domain string) bool {
	lower := strings.ToLower(domain)
	for _, disposable := range disposableDomains {
		if lower == disposable {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
