package domain

import "fmt"

// Charges are the optional price components of an invoice. Omitted fields are zero.
type Charges struct {
	NightlyRate  float64
	ExtraCharges float64
	Discount     float64
}

type Invoice struct {
	ID           int
	Payment      Payment
	NightlyRate  float64
	ExtraCharges float64
	Discount     float64
	// TotalAmount is fixed at construction; later edits to the components do not change it.
	TotalAmount float64
}

// NewInvoice computes the total as rate + extra - discount. A discount larger
// than the rest yields a negative total.
func NewInvoice(id int, p Payment, c Charges) *Invoice {
	return &Invoice{
		ID:           id,
		Payment:      p,
		NightlyRate:  c.NightlyRate,
		ExtraCharges: c.ExtraCharges,
		Discount:     c.Discount,
		TotalAmount:  c.NightlyRate + c.ExtraCharges - c.Discount,
	}
}

func (i *Invoice) GetPayment() Payment { return i.Payment }

func (i *Invoice) String() string {
	return fmt.Sprintf("Invoice %d - %v", i.ID, i.Payment)
}
