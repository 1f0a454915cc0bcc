package services

import (
	"testing"
	"time"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

func TestDocsServiceGenerate(t *testing.T) {
	svc := DocsService{}

	ticket := models.Ticket{
		ID:              7,
		TicketCode:      "TKT1A2B3C4D5E",
		PassengerName:   "Asha",
		PassengerAge:    29,
		PassengerGender: "female",
		TravelDate:      "2025-04-01",
		NumberOfSeats:   2,
		TotalFare:       500,
		Status:          models.TicketBooked,
		Route: &models.Route{
			Source:      "Mumbai",
			Destination: "Pune",
			Train:       &models.Train{Name: "Deccan Express", Number: "11007"},
		},
	}

	pdf, filename, err := svc.GenerateETicket(ticket)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}

	paid := time.Now()
	payment := models.Payment{
		ID:            9,
		Amount:        200,
		PaymentType:   models.PayTypeLateFee,
		PaymentMethod: models.PayMethodUPI,
		Status:        models.PaymentCompleted,
		TransactionID: "TXN-abc",
		PaidDate:      &paid,
		Description:   "Late fee",
	}

	receipt, recName, err := svc.GenerateReceipt(payment)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if len(receipt) == 0 || recName == "" {
		t.Fatalf("GenerateReceipt returned empty data")
	}
}
