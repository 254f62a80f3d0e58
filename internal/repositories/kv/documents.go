package kv

import (
	"time"

	domain "github.com/supreme-labs/storefront/internal/domain"
)

// Storage buckets. One value per client key in each bucket, mirroring the
// original client-local storage keys.
const (
	cartBucket        = "carts"
	orderBucket       = "orders"
	preferenceBucket  = "preferences"
	attributionBucket = "attribution"
)

type cartLineDocument struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type addressDocument struct {
	CEP        string `json:"cep"`
	Street     string `json:"logradouro"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"localidade"`
	State      string `json:"uf"`
	IBGE       string `json:"ibge"`
	DDD        string `json:"ddd"`
}

type orderDocument struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"createdAt"`
	Status    string             `json:"status"`
	Items     []cartLineDocument `json:"items"`
	Subtotal  int64              `json:"subtotal"`
	Shipping  int64              `json:"shipping"`
	Total     int64              `json:"total"`
	Address   *addressDocument   `json:"address"`
}

type preferenceDocument struct {
	Locale string `json:"locale"`
}

type attributionDocument struct {
	Source   string `json:"utm_source,omitempty"`
	Medium   string `json:"utm_medium,omitempty"`
	Campaign string `json:"utm_campaign,omitempty"`
	Term     string `json:"utm_term,omitempty"`
	Content  string `json:"utm_content,omitempty"`
}

func cartLinesToDocuments(lines []domain.CartLine) []cartLineDocument {
	docs := make([]cartLineDocument, 0, len(lines))
	for _, line := range lines {
		docs = append(docs, cartLineDocument{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return docs
}

func cartLinesFromDocuments(docs []cartLineDocument) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, domain.CartLine{ProductID: doc.ProductID, Quantity: doc.Quantity})
	}
	return lines
}

func addressToDocument(addr *domain.Address) *addressDocument {
	if addr == nil {
		return nil
	}
	return &addressDocument{
		CEP:        addr.CEP,
		Street:     addr.Street,
		Complement: addr.Complement,
		District:   addr.District,
		City:       addr.City,
		State:      addr.State,
		IBGE:       addr.IBGE,
		DDD:        addr.DDD,
	}
}

func addressFromDocument(doc *addressDocument) *domain.Address {
	if doc == nil {
		return nil
	}
	return &domain.Address{
		CEP:        doc.CEP,
		Street:     doc.Street,
		Complement: doc.Complement,
		District:   doc.District,
		City:       doc.City,
		State:      doc.State,
		IBGE:       doc.IBGE,
		DDD:        doc.DDD,
	}
}

func orderToDocument(order domain.Order) orderDocument {
	items := make([]cartLineDocument, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, cartLineDocument{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return orderDocument{
		ID:        order.ID,
		CreatedAt: order.CreatedAt.UTC(),
		Status:    string(order.Status),
		Items:     items,
		Subtotal:  order.Subtotal,
		Shipping:  order.Shipping,
		Total:     order.Total,
		Address:   addressToDocument(order.Address),
	}
}

func orderFromDocument(doc orderDocument) domain.Order {
	lines := make([]domain.OrderLine, 0, len(doc.Items))
	for _, item := range doc.Items {
		lines = append(lines, domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return domain.Order{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		Status:    domain.OrderStatus(doc.Status),
		Lines:     lines,
		Subtotal:  doc.Subtotal,
		Shipping:  doc.Shipping,
		Total:     doc.Total,
		Address:   addressFromDocument(doc.Address),
	}
}
