package models

// Product is a catalog item. Prices are integer kopecks. Dimension fields
// are pointers: nil means the manufacturer did not publish the value, and
// the catalog filter treats it as matching any range.
type Product struct {
	ID          int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Brand       string  `gorm:"not null;index"           json:"brand"`
	Type        string  `gorm:"not null;index"           json:"type"`
	Description string  `json:"description,omitempty"`
	Price       int64   `gorm:"not null"                 json:"price"`
	Image       string  `json:"image"`
	InStock     bool    `gorm:"default:true"             json:"in_stock"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`

	HasRemote       bool `gorm:"default:false" json:"has_remote"`
	IsDimmable      bool `gorm:"default:false" json:"is_dimmable"`
	HasColorChange  bool `gorm:"default:false" json:"has_color_change"`
	IsSale          bool `gorm:"default:false" json:"is_sale"`
	IsNew           bool `gorm:"default:false" json:"is_new"`
	PickupAvailable bool `gorm:"default:false" json:"pickup_available"`

	Style    *string `json:"style,omitempty"`
	Color    *string `json:"color,omitempty"`
	Category string  `gorm:"index" json:"category,omitempty"`

	Height      *float64 `json:"height,omitempty"`
	Length      *float64 `json:"length,omitempty"`
	Width       *float64 `json:"width,omitempty"`
	Depth       *float64 `json:"depth,omitempty"`
	Diameter    *float64 `json:"diameter,omitempty"`
	ChainLength *float64 `json:"chain_length,omitempty"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	FirstName    string `gorm:"not null"                 json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Order struct {
	ID              uint   `gorm:"primaryKey"     json:"id"`
	UserID          uint   `gorm:"index;not null" json:"user_id"`
	CustomerName    string `gorm:"not null"       json:"customer_name"`
	CustomerEmail   string `gorm:"not null"       json:"customer_email"`
	CustomerPhone   string `gorm:"not null"       json:"customer_phone"`
	CustomerAddress string `gorm:"not null"       json:"customer_address"`
	Total           int64  `gorm:"not null"       json:"total"`
	Status          string `gorm:"not null"       json:"status"`
	PaymentMethod   string `json:"payment_method"`
	TrackingNumber  string `json:"tracking_number,omitempty"`
	CreatedAt       int64  `json:"created_at"`
}

// OrderItem carries the price the customer saw at checkout, not a reference
// to the live product row.
type OrderItem struct {
	ID           uint   `gorm:"primaryKey"     json:"id"`
	OrderID      uint   `gorm:"index;not null" json:"order_id"`
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	ProductID    int    `gorm:"not null"       json:"product_id"`
	ProductName  string `gorm:"not null"       json:"product_name"`
	ProductImage string `json:"product_image,omitempty"`
	Quantity     int    `gorm:"not null"       json:"quantity"`
	Price        int64  `gorm:"not null"       json:"price"`
}

type ChatSession struct {
	ID          string `gorm:"primaryKey" json:"id"`
	UserName    string `json:"user_name"`
	UnreadCount int    `gorm:"default:0"  json:"unread_count"`
	CreatedAt   int64  `json:"created_at"`
}

type ChatMessage struct {
	ID        uint   `gorm:"primaryKey"     json:"id"`
	SessionID string `gorm:"index;not null" json:"session_id"`
	Sender    string `gorm:"not null"       json:"sender"`
	Text      string `gorm:"not null"       json:"text"`
	Read      bool   `gorm:"default:false"  json:"read"`
	CreatedAt int64  `json:"created_at"`
}

// Blob is one serialized store snapshot (cart lines, favorite ids) keyed by
// its owning store instance.
type Blob struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value []byte `json:"value"`
}
