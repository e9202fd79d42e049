package domain

import "fmt"

// CategoryAll is the sentinel category that matches every product.
const CategoryAll = "All"

type Product struct {
	ID         int    `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	PriceCents int64  `db:"price_cents" json:"priceCents"`
	ImageURL   string `db:"image_url" json:"imageUrl"`
	Category   string `db:"category" json:"category"`
}

// Price renders the cents amount as a decimal string ("180.00").
// All arithmetic stays in integer cents; formatting happens only here.
func (p Product) Price() string { return FormatCents(p.PriceCents) }

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Source is a web citation attached to a grounded assistant reply.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type ChatMessage struct {
	ID      int64    `json:"id"`
	Sender  Sender   `json:"sender"`
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}

// AssistantReply is what the remote assistant collaborator returns:
// generated text plus zero or more already-deduplicated citations.
type AssistantReply struct {
	Text    string
	Sources []Source
}
