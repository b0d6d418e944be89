package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"modahaus/internal/config"
	"modahaus/internal/domain"
	applog "modahaus/internal/log"
	"modahaus/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Cfg      config.Config
}

// Start shows the delivery step. A flow already in progress is resumed
// with its draft intact (this is where Back lands); only when no flow
// exists does a fresh one open.
func (h *CheckoutHandler) Start(c *fiber.Ctx) error {
	uid := currentUserID(c)
	step, draft, err := h.Checkout.Current(uid)
	switch {
	case errors.Is(err, services.ErrNoCheckout):
		if err := h.Checkout.Start(uid); err != nil {
			if errors.Is(err, services.ErrEmptyCart) {
				return c.Redirect("/cart")
			}
			return c.Redirect("/login")
		}
	case step == services.StepReceipt:
		return c.Redirect("/checkout/receipt")
	case step == services.StepReview:
		return c.Redirect("/checkout/review")
	}
	return render(c, "checkout_delivery", fiber.Map{
		"Items":      h.Cart.Items(uid),
		"TotalPrice": h.Cart.TotalPrice(uid),
		"Draft":      draft,
	})
}

// SelectDelivery applies the chosen method (and shipping details for
// non-pickup methods) to the draft, then confirms the step.
func (h *CheckoutHandler) SelectDelivery(c *fiber.Ctx) error {
	uid := currentUserID(c)
	method, ok := domain.ParseDeliveryMethod(c.FormValue("method"))
	if !ok {
		return c.Status(400).SendString("choose a delivery method")
	}
	if err := h.Checkout.SelectDelivery(uid, method); err != nil {
		return h.flowError(c, err)
	}
	if method != domain.DeliveryPickup {
		info := services.ShippingInfo{
			Name:    strings.TrimSpace(c.FormValue("name")),
			Phone:   strings.TrimSpace(c.FormValue("phone")),
			Address: strings.TrimSpace(c.FormValue("address")),
			City:    strings.TrimSpace(c.FormValue("city")),
			State:   strings.TrimSpace(c.FormValue("state")),
		}
		if err := h.Checkout.SetShipping(uid, info); err != nil {
			_, draft, _ := h.Checkout.Current(uid)
			return render(c, "checkout_delivery", fiber.Map{
				"Err": "Fill in your delivery details", "Draft": draft,
				"Items": h.Cart.Items(uid), "TotalPrice": h.Cart.TotalPrice(uid),
			})
		}
	}
	if err := h.Checkout.ContinueToReceipt(uid); err != nil {
		return h.flowError(c, err)
	}
	return c.Redirect("/checkout/receipt")
}

func (h *CheckoutHandler) ReceiptForm(c *fiber.Ctx) error {
	return render(c, "checkout_receipt", fiber.Map{})
}

// UploadReceipt stores the payment receipt and gates the review step on
// it. No receipt, no review.
func (h *CheckoutHandler) UploadReceipt(c *fiber.Ctx) error {
	uid := currentUserID(c)
	f, err := c.FormFile("receipt")
	if err != nil || f == nil || f.Size == 0 {
		applog.Security(c, "checkout.receipt.missing", nil)
		return c.Status(400).Render("checkout_receipt", fiber.Map{"Err": "Upload your payment receipt to continue"})
	}

	name := uuid.NewString() + filepath.Ext(f.Filename)
	dst := filepath.Join(h.Cfg.ReceiptDir, name)
	if err := c.SaveFile(f, dst); err != nil {
		applog.Error(c, "checkout.receipt.save", err, nil)
		return c.Status(500).Render("checkout_receipt", fiber.Map{"Err": "Could not save receipt. Try again."})
	}

	if err := h.Checkout.AttachReceipt(uid, "receipts/"+name); err != nil {
		return h.flowError(c, err)
	}
	if err := h.Checkout.ContinueToReview(uid); err != nil {
		return h.flowError(c, err)
	}
	applog.Audit(c, "checkout.receipt", map[string]any{"file": name})
	return c.Redirect("/checkout/review")
}

func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	uid := currentUserID(c)
	if err := h.Checkout.Back(uid); err != nil {
		return h.flowError(c, err)
	}
	step, _ := h.Checkout.Step(uid)
	if step == services.StepDelivery {
		return c.Redirect("/checkout")
	}
	return c.Redirect("/checkout/receipt")
}

func (h *CheckoutHandler) Review(c *fiber.Ctx) error {
	uid := currentUserID(c)
	draft, totals, err := h.Checkout.Review(uid)
	if err != nil {
		return h.flowError(c, err)
	}
	return render(c, "checkout_review", fiber.Map{
		"Items":  h.Cart.Items(uid),
		"Draft":  draft,
		"Totals": totals,
	})
}

// Place is terminal for the flow: the order is persisted and the cart
// cleared. A failure re-enters review with the draft intact.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	uid := currentUserID(c)
	orderID, err := h.Checkout.PlaceOrder(uid)
	if err != nil && orderID != "" && errors.Is(err, services.ErrCartUnsynced) {
		// Order placed; only the remote cart cleanup failed. The next
		// load reconciles.
		applog.Warn(c, "checkout.place.cart_clear", err, map[string]any{"order_id": orderID})
		err = nil
	}
	if err != nil {
		applog.Error(c, "checkout.place.fail", err, nil)
		draft, totals, rerr := h.Checkout.Review(uid)
		if rerr != nil {
			return h.flowError(c, rerr)
		}
		return c.Status(fiber.StatusBadRequest).Render("checkout_review", fiber.Map{
			"Items": h.Cart.Items(uid), "Draft": draft, "Totals": totals,
			"Err": "Could not place your order. Please try again.",
		})
	}
	applog.Audit(c, "checkout.place", map[string]any{"order_id": orderID})
	return c.Redirect("/order/" + orderID)
}

// Cancel abandons the flow; the draft is gone, the cart is untouched.
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	uid := currentUserID(c)
	h.Checkout.Cancel(uid)
	applog.Info(c, "checkout.cancel", nil)
	return c.Redirect("/cart")
}

func (h *CheckoutHandler) flowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSignInRequired):
		return c.Redirect("/login")
	case errors.Is(err, services.ErrNoCheckout), errors.Is(err, services.ErrEmptyCart):
		return c.Redirect("/cart")
	case errors.Is(err, services.ErrReceiptRequired):
		return c.Status(400).Render("checkout_receipt", fiber.Map{"Err": "Upload your payment receipt to continue"})
	case errors.Is(err, services.ErrDeliveryRequired), errors.Is(err, services.ErrShippingRequired):
		_, draft, _ := h.Checkout.Current(currentUserID(c))
		return c.Status(400).Render("checkout_delivery", fiber.Map{"Err": err.Error(), "Draft": draft})
	case errors.Is(err, services.ErrWrongStep):
		return c.Redirect("/checkout")
	}
	applog.Error(c, "checkout.flow", err, nil)
	return c.Status(500).Render("notfound", fiber.Map{"Message": "Checkout is unavailable right now"})
}
