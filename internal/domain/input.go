package domain

import "strings"

// PhoneInput is a phone entry supplied by the caller. Child ids are
// assigned by the store and are not stable across updates.
type PhoneInput struct {
	Label  string `json:"label"`
	Number string `json:"number"`
}

// EmailInput is an email entry supplied by the caller.
type EmailInput struct {
	Label   string `json:"label"`
	Address string `json:"address"`
}

// AddressInput is a postal address entry supplied by the caller.
type AddressInput struct {
	Label   string `json:"label"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	Postal  string `json:"postal"`
}

// CardInput carries the caller-supplied fields for creating or fully
// replacing a card aggregate. An update replaces every child collection
// and the tag-link set wholesale; nothing is diffed.
type CardInput struct {
	Name      string         `json:"name"`
	Title     string         `json:"title"`
	Company   string         `json:"company"`
	Website   string         `json:"website"`
	Notes     string         `json:"notes"`
	Phones    []PhoneInput   `json:"phones"`
	Emails    []EmailInput   `json:"emails"`
	Addresses []AddressInput `json:"addresses"`
	Tags      []string       `json:"tags"`
}

// Validate checks the required fields. It is called before any store
// mutation so a failing input leaves the store untouched.
func (in *CardInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	return nil
}
