package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

// DocsService renders e-tickets and payment receipts as PDFs.
type DocsService struct {
	RequestID string
}

func (s DocsService) GenerateETicket(ticket models.Ticket) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticket.ID))
	return buildETicketPDF(ticket)
}

func (s DocsService) GenerateReceipt(payment models.Payment) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("payment_id=%d", payment.ID))
	return buildReceiptPDF(payment)
}

func buildETicketPDF(t models.Ticket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	source, destination, trainName := "-", "-", "-"
	if t.Route != nil {
		source = t.Route.Source
		destination = t.Route.Destination
		if t.Route.Train != nil {
			trainName = fmt.Sprintf("%s (%s)", t.Route.Train.Name, t.Route.Train.Number)
		}
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket Code    : %s", safe(t.TicketCode, "-")),
		fmt.Sprintf("Passenger      : %s", safe(t.PassengerName, "-")),
		fmt.Sprintf("Age / Gender   : %d / %s", t.PassengerAge, safe(t.PassengerGender, "-")),
		fmt.Sprintf("Train          : %s", trainName),
		fmt.Sprintf("Route          : %s -> %s", safe(source, "-"), safe(destination, "-")),
		fmt.Sprintf("Travel Date    : %s", safe(t.TravelDate, "-")),
		fmt.Sprintf("Seats          : %d", t.NumberOfSeats),
		fmt.Sprintf("Total Fare     : %s", utils.FormatRupee(t.TotalFare)),
		fmt.Sprintf("Status         : %s", safe(t.Status, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket along with a valid ID at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("eticket-%s.pdf", safe(t.TicketCode, fmt.Sprint(t.ID)))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(p models.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	paidDate := "-"
	if p.PaidDate != nil {
		paidDate = utils.FormatDateTime(*p.PaidDate)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Transaction ID : %s", safe(p.TransactionID, "-")),
		fmt.Sprintf("Amount         : %s", utils.FormatRupee(p.Amount)),
		fmt.Sprintf("Type           : %s", safe(p.PaymentType, "-")),
		fmt.Sprintf("Method         : %s", safe(p.PaymentMethod, "-")),
		fmt.Sprintf("Status         : %s", safe(p.Status, "-")),
		fmt.Sprintf("Paid Date      : %s", paidDate),
		fmt.Sprintf("Description    : %s", safe(p.Description, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("receipt-%s.pdf", safe(p.TransactionID, fmt.Sprint(p.ID)))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
