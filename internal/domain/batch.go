package domain

import "time"

type BatchStatus string

const (
	BatchPendingApproval BatchStatus = "PENDING_APPROVAL"
	BatchApproved        BatchStatus = "APPROVED"
	BatchDispatched      BatchStatus = "DISPATCHED"
)

// BatchItem is one generated outreach waiting for the approval gate.
type BatchItem struct {
	Customer  CustomerRecord `json:"customer"`
	Score     ScoreResult    `json:"score"`
	Offer     Offer          `json:"offer"`
	Template  string         `json:"template"`
	Message   string         `json:"message"`
	VariantID string         `json:"variantId,omitempty"`
}

type SelectionStats struct {
	Total                int          `json:"total"`
	Eligible             int          `json:"eligible"`
	ExcludedBlacklist    int          `json:"excludedBlacklist"`
	ExcludedCooldown     int          `json:"excludedCooldown"`
	ExcludedScore        int          `json:"excludedScore"`
	ExcludedInvalidPhone int          `json:"excludedInvalidPhone"`
	ExcludedDuplicate    int          `json:"excludedDuplicate"`
	Selected             int          `json:"selected"`
	TierDistribution     map[Tier]int `json:"tierDistribution"`
	MeanScore            int          `json:"meanScore"`
}

// ApprovalSummary is what the approval dashboard shows above the batch.
type ApprovalSummary struct {
	Date                string       `json:"date"`
	TotalLeads          int          `json:"totalLeads"`
	Distribution        map[Tier]int `json:"distribution"`
	MeanScore           int          `json:"meanScore"`
	ExpectedConversions int          `json:"expectedConversions"`
	ExpectedRevenue     int          `json:"expectedRevenue"`
	ROIPercent          int          `json:"roiPercent"`
}

type Batch struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Status    BatchStatus     `json:"status"`
	Items     []BatchItem     `json:"items"`
	Stats     SelectionStats  `json:"stats"`
	Summary   ApprovalSummary `json:"summary"`
}

type SendStatus string

const (
	SendOK     SendStatus = "SENT"
	SendFailed SendStatus = "FAILED"
)

type SendResult struct {
	Phone  string     `json:"phone"`
	Name   string     `json:"name,omitempty"`
	Stage  Stage      `json:"stage"`
	Status SendStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
	At     time.Time  `json:"at"`
}

type DispatchResult struct {
	BatchID string       `json:"batchId,omitempty"`
	Total   int          `json:"total"`
	Sent    int          `json:"sent"`
	Failed  int          `json:"failed"`
	Results []SendResult `json:"results"`
}

func (r *DispatchResult) Add(res SendResult) {
	r.Total++
	if res.Status == SendOK {
		r.Sent++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, res)
}
