package domain

// Phone is a single phone entry owned by a card.
type Phone struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Number string `json:"number"`
}

// Email is a single email entry owned by a card.
type Email struct {
	ID      int64  `json:"id"`
	Label   string `json:"label"`
	Address string `json:"address"`
}

// Address is a single postal address entry owned by a card.
type Address struct {
	ID      int64  `json:"id"`
	Label   string `json:"label"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	Postal  string `json:"postal"`
}

// Card is the full contact aggregate: the scalar root plus its owned
// child collections and linked tag names. A Card returned by the
// repository is always fully hydrated.
type Card struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Website   string    `json:"website"`
	Notes     string    `json:"notes"`
	PhotoURL  string    `json:"photo_url"`
	Phones    []Phone   `json:"phones"`
	Emails    []Email   `json:"emails"`
	Addresses []Address `json:"addresses"`
	Tags      []string  `json:"tags"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// TagCount is a tag name with the number of cards currently linked to it.
// Tags with zero linked cards are still reported.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
