package models

// Status, priority, and role vocabularies shared across the data-access
// layer. The strings match the rows the web client renders; changing one
// is a data migration, not a refactor.

// Project statuses.
const (
	ProjectPlanning   = "Planning"
	ProjectInProgress = "In Progress"
	ProjectOnHold     = "On Hold"
	ProjectCompleted  = "Completed"
)

// Task statuses.
const (
	TaskNotStarted = "Not Started"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
	TaskDelayed    = "Delayed"
)

// Task priorities.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// Resource types and derived stock statuses.
const (
	ResourceMaterial  = "Material"
	ResourceEquipment = "Equipment"
	ResourceLabor     = "Labor"

	StockAvailable = "Available"
	StockLow       = "Low Stock"
	StockOut       = "Out of Stock"
)

// Issue statuses.
const (
	IssueOpen       = "Open"
	IssueInProgress = "In Progress"
	IssueResolved   = "Resolved"
	IssueClosed     = "Closed"
)

// Invoice statuses.
const (
	InvoiceDraft = "Draft"
	InvoiceSent  = "Sent"
	InvoicePaid  = "Paid"
	InvoiceVoid  = "Void"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []string{ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted}

// TaskStatuses lists every valid task status.
var TaskStatuses = []string{TaskNotStarted, TaskInProgress, TaskCompleted, TaskDelayed}

// TaskPriorities lists every valid task priority.
var TaskPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ResourceTypes lists every valid resource type.
var ResourceTypes = []string{ResourceMaterial, ResourceEquipment, ResourceLabor}

// IssueStatuses lists every valid issue status.
var IssueStatuses = []string{IssueOpen, IssueInProgress, IssueResolved, IssueClosed}

// InvoiceStatuses lists every valid invoice status.
var InvoiceStatuses = []string{InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceVoid}

// TeamRoles is the fixed role vocabulary for project membership.
var TeamRoles = []string{
	"project_manager",
	"site_engineer",
	"architect",
	"foreman",
	"contractor",
	"surveyor",
	"safety_officer",
}

// ValidStatus reports whether s appears in the given vocabulary.
func ValidStatus(vocab []string, s string) bool {
	for _, v := range vocab {
		if v == s {
			return true
		}
	}
	return false
}
