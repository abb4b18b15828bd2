package model

import "errors"

// Form validation errors. They are shown to the operator as-is.
var (
	// ErrTooShort is wrapped with the offending field name.
	ErrTooShort = errors.New("must be at least 2 characters")

	ErrDiscountOutOfRange = errors.New("discount must be between 0 and 100")
	ErrInvalidPhoneNumber = errors.New("phone number must be exactly 10 characters")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidEmail       = errors.New("you must enter a valid email")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrNonPositivePrice   = errors.New("must be a positive number")
	ErrUnknownSize        = errors.New("unknown size")
	ErrNegativeQuantity   = errors.New("quantity cannot be negative")
)

// ErrLastPhoto rejects a photo removal that would leave a product without photos.
var ErrLastPhoto = errors.New("Can't remove all the photo, keep atleast one")

// CheckPhotoRemoval rejects removing every photo of a product. Duplicate
// URLs and URLs the product does not carry are not counted.
func CheckPhotoRemoval(product Product, remove []Photo) error {
	owned := make(map[string]bool, len(product.Photos))
	for _, p := range product.Photos {
		owned[p.SecureURL] = true
	}
	removed := make(map[string]bool, len(remove))
	for _, p := range remove {
		if owned[p.SecureURL] {
			removed[p.SecureURL] = true
		}
	}
	if len(removed) > 0 && len(removed) >= len(owned) {
		return ErrLastPhoto
	}
	return nil
}
