package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"modahaus/internal/domain"
	"modahaus/internal/repos"
)

type CheckoutStep int

const (
	StepDelivery CheckoutStep = iota
	StepReceipt
	StepReview
	StepPlaced
)

var (
	ErrWrongStep        = errors.New("action not allowed at this checkout step")
	ErrDeliveryRequired = errors.New("choose a delivery method first")
	ErrShippingRequired = errors.New("shipping details are required for delivery orders")
	ErrReceiptRequired  = errors.New("upload a payment receipt to continue")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoCheckout       = errors.New("no checkout in progress")
)

// ShippingInfo is collected on the delivery step for rider and park
// orders. Pickup orders skip it.
type ShippingInfo struct {
	Name    string `validate:"required,max=60"`
	Phone   string `validate:"required,min=7,max=15"`
	Address string `validate:"required,max=120"`
	City    string `validate:"required,max=40"`
	State   string `validate:"required,max=40"`
}

// Draft accumulates the checkout form data across steps. It is never
// persisted; cancelling the flow throws it away and leaves the cart
// untouched.
type Draft struct {
	DeliveryMethod domain.DeliveryMethod
	Shipping       ShippingInfo
	ReceiptPath    string
}

type flow struct {
	step  CheckoutStep
	draft Draft
}

// CheckoutService runs the three-step checkout: delivery method, payment
// receipt, review. Forward transitions are gated per step, so an invalid
// state (review without a receipt) is unreachable rather than merely
// rejected later.
type CheckoutService struct {
	Cart   *CartService
	Orders *repos.OrderRepo

	mu       sync.Mutex
	flows    map[string]*flow // userID -> active checkout
	validate *validator.Validate
}

func NewCheckoutService(cart *CartService, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{
		Cart:     cart,
		Orders:   orders,
		flows:    map[string]*flow{},
		validate: validator.New(),
	}
}

// Start opens a fresh flow at the delivery step, discarding any draft
// left over from an abandoned checkout.
func (s *CheckoutService) Start(userID string) error {
	if userID == "" {
		return ErrSignInRequired
	}
	if len(s.Cart.Items(userID)) == 0 {
		return ErrEmptyCart
	}
	s.mu.Lock()
	s.flows[userID] = &flow{step: StepDelivery}
	s.mu.Unlock()
	return nil
}

func (s *CheckoutService) Step(userID string) (CheckoutStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return 0, ErrNoCheckout
	}
	return f.step, nil
}

// Current returns the active flow's step and draft, so re-entering the
// checkout resumes where the user left off instead of resetting it.
func (s *CheckoutService) Current(userID string) (CheckoutStep, Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return 0, Draft{}, ErrNoCheckout
	}
	return f.step, f.draft, nil
}

// SelectDelivery applies the method to the draft immediately; the user
// still confirms with an explicit continue.
func (s *CheckoutService) SelectDelivery(userID string, m domain.DeliveryMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return ErrNoCheckout
	}
	if f.step != StepDelivery {
		return ErrWrongStep
	}
	f.draft.DeliveryMethod = m
	return nil
}

func (s *CheckoutService) SetShipping(userID string, info ShippingInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return ErrNoCheckout
	}
	if f.step != StepDelivery {
		return ErrWrongStep
	}
	if err := s.validate.Struct(info); err != nil {
		return fmt.Errorf("shipping details: %w", err)
	}
	f.draft.Shipping = info
	return nil
}

// ContinueToReceipt confirms the delivery step. Rider and park orders
// must carry valid shipping details by now.
func (s *CheckoutService) ContinueToReceipt(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return ErrNoCheckout
	}
	if f.step != StepDelivery {
		return ErrWrongStep
	}
	if f.draft.DeliveryMethod == "" {
		return ErrDeliveryRequired
	}
	if f.draft.DeliveryMethod != domain.DeliveryPickup {
		if err := s.validate.Struct(f.draft.Shipping); err != nil {
			return ErrShippingRequired
		}
	}
	f.step = StepReceipt
	return nil
}

// AttachReceipt records the uploaded payment receipt on the draft.
func (s *CheckoutService) AttachReceipt(userID, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return ErrNoCheckout
	}
	if f.step != StepReceipt {
		return ErrWrongStep
	}
	if path == "" {
		return ErrReceiptRequired
	}
	f.draft.ReceiptPath = path
	return nil
}

// ContinueToReview gates on the receipt: the review step cannot be
// reached without one.
func (s *CheckoutService) ContinueToReview(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return ErrNoCheckout
	}
	if f.step != StepReceipt {
		return ErrWrongStep
	}
	if f.draft.ReceiptPath == "" {
		return ErrReceiptRequired
	}
	f.step = StepReview
	return nil
}

// Back steps backwards without losing anything already entered.
func (s *CheckoutService) Back(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return ErrNoCheckout
	}
	switch f.step {
	case StepReceipt:
		f.step = StepDelivery
	case StepReview:
		f.step = StepReceipt
	default:
		return ErrWrongStep
	}
	return nil
}

// Review returns the draft plus the totals breakdown for the current
// cart. Only valid on the review step.
func (s *CheckoutService) Review(userID string) (Draft, Totals, error) {
	s.mu.Lock()
	f, ok := s.flows[userID]
	if !ok || f.step != StepReview {
		s.mu.Unlock()
		if !ok {
			return Draft{}, Totals{}, ErrNoCheckout
		}
		return Draft{}, Totals{}, ErrWrongStep
	}
	draft := f.draft
	s.mu.Unlock()

	items := s.Cart.Items(userID)
	return draft, CalculateTotals(items, draft.DeliveryMethod), nil
}

// PlaceOrder persists the order and clears the cart. On a store failure
// the flow stays on the review step with the draft intact, so the user
// can retry; nothing is lost and nothing is double-charged from the
// flow's point of view. When the order lands but the remote cart
// delete-all does not, the order id is returned together with an
// ErrCartUnsynced warning so the caller can surface it.
func (s *CheckoutService) PlaceOrder(userID string) (string, error) {
	draft, totals, err := s.Review(userID)
	if err != nil {
		return "", err
	}
	items := s.Cart.Items(userID)
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	orderID := uuid.NewString()
	ship := repos.ShippingFields{
		Name:    draft.Shipping.Name,
		Phone:   draft.Shipping.Phone,
		Address: draft.Shipping.Address,
		City:    draft.Shipping.City,
		State:   draft.Shipping.State,
	}
	if err := s.Orders.Create(orderID, userID, string(draft.DeliveryMethod), ship,
		draft.ReceiptPath, totals.Subtotal, totals.VAT, totals.DeliveryFee, totals.GrandTotal); err != nil {
		return "", fmt.Errorf("place order: %w", err)
	}
	for _, it := range items {
		if err := s.Orders.InsertItem(orderID, it.ProductID, it.Name, it.Quantity, it.UnitPrice); err != nil {
			return "", fmt.Errorf("place order: %w", err)
		}
	}

	clearErr := s.Cart.Clear(userID)

	s.mu.Lock()
	if f, ok := s.flows[userID]; ok {
		f.step = StepPlaced
	}
	delete(s.flows, userID)
	s.mu.Unlock()

	return orderID, clearErr
}

// Cancel discards the draft at any non-terminal step. The cart is not
// touched.
func (s *CheckoutService) Cancel(userID string) {
	s.mu.Lock()
	delete(s.flows, userID)
	s.mu.Unlock()
}
