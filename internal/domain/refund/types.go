package refund

type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsFinal() bool {
	return s == StatusRejected || s == StatusCompleted
}
