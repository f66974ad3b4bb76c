// Package checkout turns the session cart into a placed order, with a
// simulated payment step in between.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/store"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expirationRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

// Service places orders against a session store.
type Service struct {
	paymentDelay time.Duration
	now          func() time.Time
	logger       *log.Logger
}

// New creates a Service. paymentDelay simulates the payment provider round
// trip; tests pass zero.
func New(paymentDelay time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		paymentDelay: paymentDelay,
		now:          time.Now,
		logger:       logger,
	}
}

// Input carries the shipping address and card details from the checkout
// form.
type Input struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	CardHolder string `json:"cardHolder"`
	CardNumber string `json:"cardNumber"`
	Expiration string `json:"expiration"`
	CVV        string `json:"cvv"`
}

func (in Input) validate(now time.Time) error {
	required := []struct {
		field string
		value string
	}{
		{"street", in.Street},
		{"city", in.City},
		{"state", in.State},
		{"postalCode", in.PostalCode},
		{"country", in.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.field)
		}
	}
	if len(strings.TrimSpace(in.CardHolder)) < 2 {
		return errors.New("cardholder name is required")
	}
	if !cardNumberRe.MatchString(in.CardNumber) {
		return errors.New("card number must be 16 digits")
	}
	if !expirationRe.MatchString(in.Expiration) {
		return errors.New("expiration must be in MM/YY format")
	}
	if cardExpired(in.Expiration, now) {
		return errors.New("card is expired")
	}
	if !cvvRe.MatchString(in.CVV) {
		return errors.New("cvv must be 3 or 4 digits")
	}
	return nil
}

// cardExpired treats a card as valid through the last day of its MM/YY.
func cardExpired(expiration string, now time.Time) bool {
	exp, err := time.Parse("01/06", expiration)
	if err != nil {
		return true
	}
	endOfMonth := exp.AddDate(0, 1, 0)
	return !now.Before(endOfMonth)
}

// PlaceOrder validates the form, simulates payment, creates the order from
// a snapshot of the cart and clears the cart. The cart is re-checked after
// the payment delay: state captured before a suspension point cannot be
// trusted afterwards.
func (s *Service) PlaceOrder(ctx context.Context, st *store.Store, userID string, in Input) (*domain.Order, error) {
	if err := in.validate(s.now()); err != nil {
		return nil, err
	}
	if st.ItemCount() == 0 {
		return nil, domain.ErrEmptyCart
	}

	payment, err := s.processPayment(ctx)
	if err != nil {
		return nil, err
	}

	items := st.Items()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := st.CreateOrder(store.OrderDraft{
		UserID: userID,
		Items:  items,
		Total:  st.Total(),
		ShippingAddress: domain.Address{
			Street:     strings.TrimSpace(in.Street),
			City:       strings.TrimSpace(in.City),
			State:      strings.TrimSpace(in.State),
			PostalCode: strings.TrimSpace(in.PostalCode),
			Country:    strings.TrimSpace(in.Country),
		},
		PaymentInfo: payment,
	})
	st.ClearCart()

	s.logger.Printf("checkout: order %s placed for user %s (%s)", order.ID, userID, order.Total)
	return &order, nil
}

// processPayment stands in for a payment provider call. It always succeeds
// after the configured delay.
func (s *Service) processPayment(ctx context.Context) (domain.PaymentInfo, error) {
	if s.paymentDelay > 0 {
		select {
		case <-ctx.Done():
			return domain.PaymentInfo{}, ctx.Err()
		case <-time.After(s.paymentDelay):
		}
	}
	return domain.PaymentInfo{
		Method:        "credit_card",
		TransactionID: fmt.Sprintf("tr_%d", s.now().UnixMilli()),
		Status:        domain.PaymentCompleted,
	}, nil
}
