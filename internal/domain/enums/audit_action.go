package enums

type AuditAction string

const (
	AuditActionSubmissionApproved AuditAction = "submission_approved"
	AuditActionSubmissionRejected AuditAction = "submission_rejected"
	AuditActionReviewFinalized    AuditAction = "review_finalized"
	AuditActionBalanceCredited    AuditAction = "balance_credited"
	AuditActionAccessToggled      AuditAction = "access_toggled"
)
