package domain

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleWorker  = "WORKER"
)

const (
	PhaseStatusPending    = "PENDING"
	PhaseStatusInProgress = "IN_PROGRESS"
	PhaseStatusDone       = "DONE"
)

const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

const (
	RushOrderStatusOpen       = "OPEN"
	RushOrderStatusInProgress = "IN_PROGRESS"
	RushOrderStatusCompleted  = "COMPLETED"
	RushOrderStatusCancelled  = "CANCELLED"
)

const (
	PartStatusReported = "REPORTED"
	PartStatusOrdered  = "ORDERED"
	PartStatusResolved = "RESOLVED"
)

const (
	SupplyOrderStatusPlaced    = "PLACED"
	SupplyOrderStatusShipped   = "SHIPPED"
	SupplyOrderStatusInTransit = "IN_TRANSIT"
	SupplyOrderStatusDelivered = "DELIVERED"
	SupplyOrderStatusDelayed   = "DELAYED"
)
