package domain

// DeliveryMethod selects how a placed order reaches the buyer.
type DeliveryMethod string

const (
	DeliveryPickup DeliveryMethod = "pickup"
	DeliveryRider  DeliveryMethod = "dispatch-rider"
	DeliveryPark   DeliveryMethod = "park-delivery"
)

// ParseDeliveryMethod maps a form value onto a known method.
func ParseDeliveryMethod(s string) (DeliveryMethod, bool) {
	switch DeliveryMethod(s) {
	case DeliveryPickup, DeliveryRider, DeliveryPark:
		return DeliveryMethod(s), true
	}
	return "", false
}

func (m DeliveryMethod) Label() string {
	switch m {
	case DeliveryPickup:
		return "Store Pickup"
	case DeliveryRider:
		return "Dispatch Rider"
	case DeliveryPark:
		return "Park Delivery"
	}
	return string(m)
}

// Fee returns the nominal delivery surcharge. Rider and park delivery
// carry a 1-naira placeholder fee: the actual logistics cost is agreed
// with the courier out of band, not computed here.
func (m DeliveryMethod) Fee() float64 {
	if m == DeliveryPickup {
		return 0
	}
	return 1
}
