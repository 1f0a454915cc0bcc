package utils

import "time"

// ComputeTotalFare returns the fare owed for a booking. The result is fixed
// at booking time and never recomputed afterwards.
func ComputeTotalFare(farePerSeat int64, seats int) int64 {
	if farePerSeat < 0 || seats <= 0 {
		return 0
	}
	return farePerSeat * int64(seats)
}

// ComputeLateFee derives the late fee for a returned loan. Days overdue use
// a calendar-day ceiling: any positive overdue duration, however small,
// counts as one full day.
func ComputeLateFee(dueDate, returnDate time.Time, feePerDay int64) (amount int64, daysOverdue int) {
	if !returnDate.After(dueDate) {
		return 0, 0
	}

	overdue := returnDate.Sub(dueDate)
	daysOverdue = int(overdue / (24 * time.Hour))
	if overdue%(24*time.Hour) > 0 {
		daysOverdue++
	}

	return int64(daysOverdue) * feePerDay, daysOverdue
}
