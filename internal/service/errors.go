package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure for the transport layer.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindBusinessRule
	KindAssetStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule"
	case KindAssetStore:
		return "asset_store"
	default:
		return "unexpected"
	}
}

// Error is a classified failure with a stable code and a user facing
// message. Two errors match under errors.Is when their codes are equal, so
// sentinels still match after a cause has been attached.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// withCause returns a copy of e carrying err.
func (e *Error) withCause(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// withMessage returns a copy of e with a more specific message.
func (e *Error) withMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Submission
var (
	ErrIncompleteProfile    = newError(KindValidation, "IncompleteProfile", "Please update your profile with a Phone number and WhatsApp number before posting a pet.")
	ErrMissingFields        = newError(KindValidation, "MissingFields", "Missing required fields.")
	ErrMissingImages        = newError(KindValidation, "MissingImages", "At least one image is required.")
	ErrTooManyImages        = newError(KindValidation, "TooManyImages", "You can upload a maximum of 5 images.")
	ErrUnsupportedMediaType = newError(KindValidation, "UnsupportedMediaType", "Only image files (jpg, jpeg, png, webp, gif) are allowed.")
	ErrFileTooLarge         = newError(KindValidation, "FileTooLarge", "Each image must be less than 5MB.")
	ErrInvalidGender        = newError(KindValidation, "InvalidGender", "Gender must be Male or Female.")
)

// Moderation and lookups
var (
	ErrInvalidStatus    = newError(KindValidation, "InvalidStatus", "Invalid status")
	ErrInvalidInput     = newError(KindValidation, "InvalidInput", "Invalid input.")
	ErrMissingCategory  = newError(KindBusinessRule, "MissingCategory", "categoryId is required for accepted pets")
	ErrPetNotFound      = newError(KindNotFound, "PetNotFound", "Pet not found")
	ErrCategoryNotFound = newError(KindNotFound, "CategoryNotFound", "Category not found.")
	ErrBannerNotFound   = newError(KindNotFound, "BannerNotFound", "Banner not found.")
	ErrUserNotFound     = newError(KindNotFound, "UserNotFound", "User not found.")
)

// Catalogue
var (
	ErrCategoryExists = newError(KindBusinessRule, "CategoryExists", "Category already exists.")
	ErrCategoryInUse  = newError(KindBusinessRule, "CategoryInUse", "Category is still assigned to pets.")
)

// Favourites and accounts
var (
	ErrPetNotPublic     = newError(KindNotFound, "PetNotPublic", "Pet not found or not public")
	ErrAlreadyFavourite = newError(KindBusinessRule, "AlreadyFavourite", "Pet already in favourites")
	ErrNotFavourite     = newError(KindBusinessRule, "NotFavourite", "Pet is not in your favourites list")
	ErrEmailTaken       = newError(KindBusinessRule, "EmailTaken", "User with this email already exists.")
)

// Asset store
var (
	ErrAssetUploadFailed = newError(KindAssetStore, "AssetUploadFailed", "Failed to upload image.")
	ErrAssetDeleteFailed = newError(KindAssetStore, "AssetDeleteFailed", "Failed to delete image.")
)
