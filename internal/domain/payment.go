package domain

import (
	"fmt"
	"strconv"
)

// Payment is the closed set of ways a guest can settle a reservation.
// Amounts are not validated; zero and negative values are accepted.
type Payment interface {
	Amount() float64
	SetAmount(amount float64)
	Method() string
	String() string

	payment()
}

const (
	MethodCreditCard = "credit_card"
	MethodCash       = "cash"
)

type amount struct{ value float64 }

func (a *amount) Amount() float64     { return a.value }
func (a *amount) SetAmount(v float64) { a.value = v }
func (a *amount) payment()            {}
func (a *amount) formatted() string   { return strconv.FormatFloat(a.value, 'f', -1, 64) }

type CreditCardPayment struct {
	amount
	CardNumber string
}

func NewCreditCardPayment(value float64, cardNumber string) *CreditCardPayment {
	return &CreditCardPayment{amount: amount{value: value}, CardNumber: cardNumber}
}

func (p *CreditCardPayment) Method() string { return MethodCreditCard }

// LastFour returns the trailing four digits used on receipts.
func (p *CreditCardPayment) LastFour() string {
	if len(p.CardNumber) <= 4 {
		return p.CardNumber
	}
	return p.CardNumber[len(p.CardNumber)-4:]
}

func (p *CreditCardPayment) String() string {
	return fmt.Sprintf("Credit Card Payment - Amount: %s, Card: ****%s", p.formatted(), p.LastFour())
}

type CashPayment struct {
	amount
	Currency string // ISO code, e.g. USD
}

func NewCashPayment(value float64, currency string) *CashPayment {
	return &CashPayment{amount: amount{value: value}, Currency: currency}
}

func (p *CashPayment) Method() string { return MethodCash }

func (p *CashPayment) String() string {
	return fmt.Sprintf("Cash Payment - Amount: %s %s", p.formatted(), p.Currency)
}

// NewPayment builds a payment from its method name and variant-specific detail
// (card number or currency code).
func NewPayment(method string, value float64, detail string) (Payment, error) {
	switch method {
	case MethodCreditCard, "card":
		return NewCreditCardPayment(value, detail), nil
	case MethodCash:
		return NewCashPayment(value, detail), nil
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidPayment, method)
	}
}
