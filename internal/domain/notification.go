package domain

import "time"

// Notification is consumed read-only by this client; all mutation happens
// server-side.
type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	FromUser  string    `json:"fromUser,omitempty"`
	OrderID   string    `json:"order,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatRoom struct {
	ID           string    `json:"_id"`
	Participants []string  `json:"participants"`
	LastMessage  string    `json:"lastMessage,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ChatMessage struct {
	ID        string    `json:"_id"`
	RoomID    string    `json:"room"`
	SenderID  string    `json:"sender"`
	Text      string    `json:"text,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type DashboardStats struct {
	Users    int     `json:"users"`
	Products int     `json:"products"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

type AdminUser struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserType  Role      `json:"userType"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"createdAt"`
}
