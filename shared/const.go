package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	AttemptStatusCompleted = "completed"

	ReferenceTypePDF = "pdf"
	ReferenceTypeDoc = "doc"

	DefaultDisplayName = "Cadet"
)
