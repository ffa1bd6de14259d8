package service

import "errors"

// Domain failures surfaced to callers. Message texts are part of the API
// contract and are returned verbatim in error responses.
var (
	ErrRecipientNotFound     = errors.New("Recipient not found")
	ErrSpecialOfferNotFound  = errors.New("Special offer not found")
	ErrInvalidVoucherCode    = errors.New("Invalid voucher code")
	ErrInvalidRecipientEmail = errors.New("Invalid recipient email")
	ErrVoucherAlreadyUsed    = errors.New("Voucher code has already been used")
	ErrVoucherExpired        = errors.New("Voucher code has expired")

	// ErrCodeSpaceExhausted is a system fault, not a caller mistake: the
	// generator gave up retrying after repeated code collisions.
	ErrCodeSpaceExhausted = errors.New("Unable to allocate a unique voucher code")
)
