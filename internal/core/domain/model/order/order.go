package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemIsNotConstructed is returned when an Item was not created via
	// NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrAddressIsNotConstructed is returned when an Address was not created
	// via NewAddress.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")
)

// Item is a single order line: dish name, quantity, and unit price in cents.
// Immutable value object.
type Item struct { //nolint:recvcheck //using for validation
	name      string
	quantity  int
	unitPrice int64

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line.
// Name must be non-empty, quantity positive, unit price non-negative cents.
func NewItem(name string, quantity int, unitPriceCents int64) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPriceCents),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the dish name.
func (i Item) Name() string { return i.name }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the per-unit price in cents.
func (i Item) UnitPrice() int64 { return i.unitPrice }

// LineTotal returns quantity times unit price in cents.
func (i Item) LineTotal() int64 { return int64(i.quantity) * i.unitPrice }

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPriceCents int64) error {
	if unitPriceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%d is negative", unitPriceCents))
	}
	i.unitPrice = unitPriceCents
	return nil
}

// Address is the delivery destination: free street text plus coordinates.
// Immutable value object.
type Address struct { //nolint:recvcheck //using for validation
	street   string
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a validated delivery address.
func NewAddress(street string, location kernel.GeoPoint) (Address, error) {
	address := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setStreet(street),
		address.setLocation(location),
	); err != nil {
		return Address{}, err
	}

	return address, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the free-text street line.
func (a Address) Street() string { return a.street }

// Location returns the destination coordinates.
func (a Address) Location() kernel.GeoPoint { return a.location }

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	a.location = location
	return nil
}

// Order is the aggregate root for a food order. The core never creates or
// deletes orders; the checkout flow hands them over already in Placed, and
// the only field the core mutates is the status, through AttemptTransition.
//
// Invariants:
//   - deliveryFee and totalAmount are immutable once set
//   - status only ever advances along the transition table or jumps to the
//     terminal Cancelled; no backward transitions
//   - driver assignment is consistent with the status
//     (Status.ValidateCanHaveDriver)
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	restaurantID    kernel.UUID
	driverID        *kernel.UUID
	customerContact string
	items           []Item
	address         Address
	paymentMethod   string
	deliveryFee     int64
	totalAmount     int64
	instructions    string
	status          Status
	createdAt       time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Order fresh out of checkout, in Placed status with no
// driver. totalAmount is derived from the line totals plus the delivery fee
// and never changes afterwards.
//
// Parameters:
//   - id, customerID, restaurantID: valid UUIDs
//   - customerContact: notification target (phone or push token), non-empty
//   - items: at least one validated line
//   - address: validated delivery address
//   - paymentMethod: payment method tag, non-empty
//   - deliveryFeeCents: non-negative fee in cents
//   - instructions: free-text special instructions, may be empty
//   - createdAt: order creation time, non-zero
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	customerContact string,
	items []Item,
	address Address,
	paymentMethod string,
	deliveryFeeCents int64,
	instructions string,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Placed,
		instructions:  instructions,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setRestaurantID(restaurantID),
		order.setCustomerContact(customerContact),
		order.setItems(items),
		order.setAddress(address),
		order.setPaymentMethod(paymentMethod),
		order.setDeliveryFee(deliveryFeeCents),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	order.totalAmount = order.subtotal() + order.deliveryFee
	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its current
// status and optional driver assignment. Used by repositories only.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	customerContact string,
	items []Item,
	address Address,
	paymentMethod string,
	deliveryFeeCents int64,
	instructions string,
	createdAt time.Time,
	status Status,
	driverID *kernel.UUID,
) (*Order, error) {
	order, err := NewOrder(id, customerID, restaurantID, customerContact, items,
		address, paymentMethod, deliveryFeeCents, instructions, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err = driverID.Validate(); err != nil {
			return nil, err
		}
		id := *driverID
		order.driverID = &id
	}

	order.status = status
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// RestaurantID returns the preparing restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// Driver returns the assigned driver's ID, or nil before assignment.
func (o *Order) Driver() *kernel.UUID { return o.driverID }

// CustomerContact returns the notification target contact.
func (o *Order) CustomerContact() string { return o.customerContact }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Address returns the delivery address.
func (o *Order) Address() Address { return o.address }

// PaymentMethod returns the payment method tag.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// DeliveryFee returns the delivery fee in cents. Immutable once set.
func (o *Order) DeliveryFee() int64 { return o.deliveryFee }

// TotalAmount returns the subtotal-derived total in cents. Immutable once set.
func (o *Order) TotalAmount() int64 { return o.totalAmount }

// Instructions returns the free-text special instructions.
func (o *Order) Instructions() string { return o.instructions }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// AttemptTransition applies the requested status transition for the given
// actor role. On success the order's status advances and exactly one
// NotificationIntent for the new status is returned; sequencing the side
// effects (persistence, dispatch) is the caller's responsibility.
//
// On failure the error wraps ErrIllegalTransition and the order is unchanged.
//
// Example:
//
//	intent, err := o.AttemptTransition(order.Accepted, order.RoleRestaurant)
//	if err != nil {
//	    return err // order untouched, nothing to notify
//	}
//	// persist o.Status(), then dispatch intent
func (o *Order) AttemptTransition(target Status, role ActorRole) (NotificationIntent, error) {
	newStatus, err := o.status.TransitionTo(target, role)
	if err != nil {
		return NotificationIntent{}, err
	}

	intent, err := NewNotificationIntent(o.id, o.customerContact, newStatus)
	if err != nil {
		return NotificationIntent{}, err
	}

	o.status = newStatus
	return intent, nil
}

// AssignDriver records the driver assigned by the backend when the order
// became ready for pickup. Rejected on terminal orders and on orders that
// have not reached ReadyForPickup.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() || o.status == Placed || o.status == Accepted || o.status == Preparing {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign a driver", o.status))
	}

	id := driverID
	o.driverID = &id
	return nil
}

// subtotal sums the line totals in cents.
func (o *Order) subtotal() int64 {
	var sum int64
	for _, item := range o.items {
		sum += item.LineTotal()
	}
	return sum
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setCustomerContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("customer contact")
	}
	o.customerContact = contact
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setDeliveryFee(deliveryFeeCents int64) error {
	if deliveryFeeCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee",
			fmt.Errorf("%d is negative", deliveryFeeCents))
	}
	o.deliveryFee = deliveryFeeCents
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}
