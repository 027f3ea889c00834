package models

import "time"

// ThreatLevel classifies how dangerous a signal is.
type ThreatLevel string

const (
	ThreatLevelLow      ThreatLevel = "low"
	ThreatLevelMedium   ThreatLevel = "medium"
	ThreatLevelHigh     ThreatLevel = "high"
	ThreatLevelCritical ThreatLevel = "critical"
)

// Severity is the three-level classification used by the web-intelligence
// feed. Unlike ThreatLevel it has no critical tier.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ChatRole identifies who authored a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn in an assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      ChatRole  `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// ThreatSignal is the keyword-based analysis attached to assistant replies.
type ThreatSignal struct {
	ThreatLevel ThreatLevel `json:"threatLevel"`
	Confidence  int         `json:"confidence"`
	Indicators  []string    `json:"indicators"`
}

// AIResponse is the assistant's answer to a single message.
type AIResponse struct {
	Message     string        `json:"message"`
	Suggestions []string      `json:"suggestions,omitempty"`
	Analysis    *ThreatSignal `json:"analysis,omitempty"`
}

// URLAnalysis is the normalized result of a URL reputation lookup.
type URLAnalysis struct {
	Safe             bool     `json:"safe"`
	Categories       []string `json:"categories"`
	Reputation       int      `json:"reputation"`
	MalwareDetected  bool     `json:"malwareDetected"`
	PhishingDetected bool     `json:"phishingDetected"`
}

// IPAnalysis is the normalized result of an IP reputation lookup.
type IPAnalysis struct {
	Reputation  int      `json:"reputation"`
	Country     string   `json:"country"`
	ISP         string   `json:"isp"`
	ThreatTypes []string `json:"threatTypes"`
	Blacklisted bool     `json:"blacklisted"`
}

// EmailAnalysis is the normalized result of an email safety check.
type EmailAnalysis struct {
	Safe       bool   `json:"safe"`
	Disposable bool   `json:"disposable"`
	Reputation int    `json:"reputation"`
	Domain     string `json:"domain"`
}

// FileAnalysis is the normalized result of a file scan.
type FileAnalysis struct {
	Safe           bool      `json:"safe"`
	DetectionRatio string    `json:"detectionRatio"`
	ThreatTypes    []string  `json:"threatTypes"`
	ScanDate       time.Time `json:"scanDate"`
}

// ThreatAnalysis carries exactly one populated analysis, matching the kind
// of input the caller submitted.
type ThreatAnalysis struct {
	URL   *URLAnalysis   `json:"url,omitempty"`
	IP    *IPAnalysis    `json:"ip,omitempty"`
	Email *EmailAnalysis `json:"email,omitempty"`
	File  *FileAnalysis  `json:"file,omitempty"`
}

// BlockchainData is a snapshot of one network's market and chain state.
// GasPrice is only set for networks that have a gas market.
type BlockchainData struct {
	Price       float64 `json:"price"`
	Change      float64 `json:"change"`
	Volume      string  `json:"volume"`
	MarketCap   string  `json:"marketCap"`
	Network     string  `json:"network"`
	BlockHeight int64   `json:"blockHeight"`
	GasPrice    *int64  `json:"gasPrice,omitempty"`
}

// VerificationStatus is the lifecycle state of an identity verification.
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationPending  VerificationStatus = "pending"
	VerificationFailed   VerificationStatus = "failed"
)

// VerificationRequest is the caller's input to identity verification.
type VerificationRequest struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Network string `json:"network,omitempty"`
}

// VerificationResult records an identity verification anchored to a chain.
// Value is always masked before it leaves the service.
type VerificationResult struct {
	TrustScore     int                `json:"trustScore"`
	BlockchainHash string             `json:"blockchainHash"`
	Network        string             `json:"network"`
	BlockHeight    int64              `json:"blockHeight"`
	Timestamp      string             `json:"timestamp"`
	Status         VerificationStatus `json:"status"`
	Type           string             `json:"type"`
	Value          string             `json:"value"`
	Confidence     int                `json:"confidence"`
}

// WalletAnalysis profiles a single on-chain address.
type WalletAnalysis struct {
	Address          string    `json:"address"`
	Balance          string    `json:"balance"`
	TransactionCount int       `json:"transactionCount"`
	FirstSeen        time.Time `json:"firstSeen"`
	LastActivity     time.Time `json:"lastActivity"`
	RiskScore        int       `json:"riskScore"`
	Labels           []string  `json:"labels"`
	IsContract       bool      `json:"isContract"`
}

// TransactionStatus is the confirmation state of a chain transaction.
type TransactionStatus string

const (
	TransactionConfirmed TransactionStatus = "confirmed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is one observed chain transaction.
type Transaction struct {
	Hash      string            `json:"hash"`
	Block     int64             `json:"block"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Value     string            `json:"value"`
	Timestamp time.Time         `json:"timestamp"`
	Status    TransactionStatus `json:"status"`
}

// WebIntelThreat is a single signal from the web-intelligence search.
type WebIntelThreat struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Timestamp   string   `json:"timestamp"`
}

// WebIntelResult aggregates web-intelligence signals with a clamped risk
// score and a human-readable summary.
type WebIntelResult struct {
	Threats   []WebIntelThreat `json:"threats"`
	RiskScore int              `json:"riskScore"`
	Summary   string           `json:"summary"`
}

// FeedItem is one entry in the live threat feed shown on the dashboard.
type FeedItem struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Severity  Severity `json:"severity"`
	Timestamp string   `json:"timestamp"`
	Category  string   `json:"category"`
}

// ThreatData is one recent threat in the dashboard aggregate.
type ThreatData struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Severity    ThreatLevel `json:"severity"`
	Timestamp   time.Time   `json:"timestamp"`
	Source      string      `json:"source"`
	Indicators  []string    `json:"indicators"`
}

// ThreatStatistics summarizes platform-wide threat activity.
type ThreatStatistics struct {
	TotalThreats   int     `json:"totalThreats"`
	BlockedAttacks int     `json:"blockedAttacks"`
	ActiveUsers    int     `json:"activeUsers"`
	GlobalCoverage float64 `json:"globalCoverage"`
}

// CategoryCount is the per-category threat count with week-over-week change.
type CategoryCount struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Change int    `json:"change"`
}

// CountryThreats ranks a country by observed threat volume.
type CountryThreats struct {
	Country string `json:"country"`
	Threats int    `json:"threats"`
	Flag    string `json:"flag"`
}

// LiveThreatData is the dashboard aggregate of recent threat activity.
type LiveThreatData struct {
	RecentThreats     []ThreatData     `json:"recentThreats"`
	Statistics        ThreatStatistics `json:"statistics"`
	ThreatsByCategory []CategoryCount  `json:"threatsByCategory"`
	TopCountries      []CountryThreats `json:"topCountries"`
}
