package domain

import "time"

type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`
	SellerID    string  `json:"seller,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

type CartItem struct {
	ID       string  `json:"_id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
}

type Order struct {
	ID         string      `json:"_id"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"totalAmount"`
	Status     string      `json:"status"`
	BuyerName  string      `json:"buyerName,omitempty"`
	SellerName string      `json:"sellerName,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type Expert struct {
	ID             string   `json:"_id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Available      bool     `json:"available"`
	Languages      []string `json:"languages,omitempty"`
}

type Company struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Location string `json:"location,omitempty"`
}

type ConsultOrder struct {
	ID          string    `json:"_id"`
	FarmerID    string    `json:"farmer,omitempty"`
	ExpertID    string    `json:"expert"`
	Subject     string    `json:"subject"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FarmerVisit struct {
	ID          string    `json:"_id"`
	FarmerID    string    `json:"farmer,omitempty"`
	ExpertID    string    `json:"expert,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

type Farm struct {
	ID       string  `json:"_id,omitempty"`
	Name     string  `json:"name"`
	Location string  `json:"location,omitempty"`
	AreaDunn float64 `json:"area,omitempty"`
	Crop     string  `json:"crop,omitempty"`
}
