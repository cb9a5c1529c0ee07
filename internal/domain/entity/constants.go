package entity

// Proposal state constants
const (
	ProposalDraft    = "DRAFT"
	ProposalPending  = "PENDING"
	ProposalDone     = "DONE"
	ProposalRejected = "REJECTED"
)

// Approval line state constants
const (
	LinePending  = "PENDING"
	LineApproved = "APPROVED"
	LineRejected = "REJECTED"
)

// Approval line order ranks
const (
	OrderTeamLead = 2
	OrderFinance  = 3
	OrderGM       = 4
)

// Proposal category constants
const (
	CategoryGeneralExpense = "GENERAL_EXPENSE"
	CategoryProject        = "PROJECT"
	CategoryEducation      = "EDUCATION"
	CategoryPurchase       = "PURCHASE"
)

// User role constants
const (
	RoleUser    = "USER"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

// Notification type constants
const (
	NotiApprovalRequest = "APPROVAL_REQUEST"
	NotiApproved        = "APPROVED"
	NotiRejected        = "REJECTED"
	NotiCompleted       = "COMPLETED"
)

// Expense kind constants
const (
	ExpenseGeneral = "GENERAL"
	ExpenseProject = "PROJECT"
)

// Estimate status constants
const (
	EstimateDraft    = "DRAFT"
	EstimateSent     = "SENT"
	EstimateAccepted = "ACCEPTED"
)

// Invoice status constants
const (
	InvoiceDraft = "DRAFT"
	InvoiceSent  = "SENT"
	InvoicePaid  = "PAID"
)

// Book request state constants
const (
	BookRequested = "REQUESTED"
	BookOrdered   = "ORDERED"
	BookReceived  = "RECEIVED"
)

// Device state constants
const (
	DeviceInStock  = "IN_STOCK"
	DeviceAssigned = "ASSIGNED"
	DeviceRetired  = "RETIRED"
)

// Schedule kind constants
const (
	ScheduleEvent    = "EVENT"
	ScheduleVacation = "VACATION"
)
