// Command demo builds a small hotel in memory and prints its summaries.
package main

import (
	"fmt"
	"io"
	"os"

	"hotel_reservation/internal/domain"
)

func run(w io.Writer) error {
	hotel := domain.NewHotel("Grand Plaza")
	hotel.AddRoom(domain.NewRoom(101, "Double", "WiFi"))
	hotel.AddRoom(domain.NewRoom(102, "Single"))

	guest := domain.NewGuest(1, "Alice", "alice@example.com", "555-0100", false)

	payment := domain.NewCreditCardPayment(200, "1234567890123456")
	invoice := domain.NewInvoice(101, payment, domain.Charges{})
	room, _ := hotel.Room(101)
	reservation := domain.NewReservation(1, guest, room, "2025-01-01", "2025-01-03", invoice)

	guest.AddPayment(payment)
	feedback := domain.NewFeedback(1, guest, "Great stay!")
	guest.AddFeedback(feedback)

	for _, v := range []fmt.Stringer{hotel, guest, reservation, feedback} {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
