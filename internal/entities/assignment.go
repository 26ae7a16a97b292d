package entities

type AssignmentStatus string

const (
	AssignmentAssigned AssignmentStatus = "assigned"
	AssignmentQueued   AssignmentStatus = "queued"
)

func (s AssignmentStatus) String() string {
	return string(s)
}

type AssignmentResult struct {
	OrderID       string
	DriverID      int64
	DriverName    string
	Status        AssignmentStatus
	QueuePosition *int32
}

type DeliveryCompletion struct {
	OrderID         string
	DriverID        int64
	DriverStatus    DriverStatusType
	PromotedOrderID *string
}

type NotificationKind string

const (
	NotificationDeliveryOffered NotificationKind = "delivery_offered"
	NotificationDeliveryQueued  NotificationKind = "delivery_queued"
	NotificationStopCompleted   NotificationKind = "stop_completed"
)

type DriverNotification struct {
	Kind          NotificationKind
	DriverID      int64
	OrderID       string
	QueuePosition *int32
}
