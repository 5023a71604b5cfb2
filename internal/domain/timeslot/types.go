package timeslot

type Status string

const (
	StatusOnSale  Status = "on_sale"
	StatusSoldOut Status = "sold_out"
	StatusClosed  Status = "closed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOnSale, StatusSoldOut, StatusClosed:
		return true
	default:
		return false
	}
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatReserved  SeatStatus = "reserved"
	SeatSold      SeatStatus = "sold"
	SeatLocked    SeatStatus = "locked"
)

func (s SeatStatus) String() string {
	return string(s)
}

func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatAvailable, SeatReserved, SeatSold, SeatLocked:
		return true
	default:
		return false
	}
}
