package models

// Train is a bookable vehicle (train or bus) holding the total seat pool.
type Train struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Number     string `json:"number"`
	Type       string `json:"type"` // train / bus
	TotalSeats int    `json:"total_seats"`
	Status     string `json:"status"` // active / inactive / maintenance
}

// Route is one scheduled run of a train. AvailableSeats is the inventory
// counter for that run and is mutated only through conditional updates.
type Route struct {
	ID              int64  `json:"id"`
	TrainID         int64  `json:"train_id"`
	Source          string `json:"source"`
	Destination     string `json:"destination"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	Duration        string `json:"duration"`
	Fare            int64  `json:"fare"`
	AvailableSeats  int    `json:"available_seats"`
	DaysOfOperation string `json:"days_of_operation"`
	Status          string `json:"status"` // active / cancelled / delayed

	// Populated on detail reads.
	Train *Train `json:"train,omitempty"`
}
