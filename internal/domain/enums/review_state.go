package enums

type ReviewState string

const (
	ReviewStatePending  ReviewState = "pending"
	ReviewStateApproved ReviewState = "approved"
	ReviewStateRejected ReviewState = "rejected"
)
