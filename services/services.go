// Package services holds the commerce core: the cart ledger, coupon
// validation, order compilation and the order lifecycle, plus the catalog,
// wishlist, notification and payment-record features around them.
package services

import (
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
)

// Services bundles every service over one store.
type Services struct {
	Catalog   *Catalog
	Cart      *CartLedger
	Wishlist  *Wishlist
	Coupons   *CouponValidator
	CouponAdm *CouponService
	Compiler  *OrderCompiler
	Checkout  *Checkout
	Orders    *Orders
	Lifecycle *OrderLifecycle
	Inbox     *NotificationInbox
	Payments  *PaymentRecorder
	Addresses *AddressBook
	Taxonomy  *Taxonomy
}

// New wires the services. A nil mailer keeps notifications in the inbox
// only.
func New(st store.Store, mailer utils.Mailer) *Services {
	catalog := NewCatalog(st)
	cart := NewCartLedger(st)
	coupons := NewCouponValidator(st)
	compiler := NewOrderCompiler(st, cart)
	inbox := NewNotificationInbox(st)

	var notifier Notifier = inbox
	if mailer != nil {
		notifier = NewMailNotifier(inbox, mailer)
	}

	return &Services{
		Catalog:   catalog,
		Cart:      cart,
		Wishlist:  NewWishlist(st, cart),
		Coupons:   coupons,
		CouponAdm: NewCouponService(st),
		Compiler:  compiler,
		Checkout:  NewCheckout(catalog, cart, coupons, compiler),
		Orders:    NewOrders(st),
		Lifecycle: NewOrderLifecycle(st, notifier),
		Inbox:     inbox,
		Payments:  NewPaymentRecorder(st),
		Addresses: NewAddressBook(st),
		Taxonomy:  NewTaxonomy(st),
	}
}
