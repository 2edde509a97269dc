package models

import (
	"fmt"
	"time"
)

// Сущность Пользователя
type User struct {
	ID          int       `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	Password    string    `db:"password" json:"-"`
	Company     string    `db:"company" json:"company"`
	UserType    Role      `db:"user_type" json:"userType"`
	FullName    string    `db:"full_name" json:"fullName"`
	CreatedDate time.Time `db:"created_date" json:"createdDate"`
}

// Сущность Адреса (принадлежит создателю)
type Location struct {
	ID          int       `db:"id" json:"id"`
	CreatedBy   int       `db:"created_by" json:"createdBy"`
	Name        string    `db:"name" json:"name"`
	Street      string    `db:"street" json:"street"`
	City        string    `db:"city" json:"city"`
	Country     string    `db:"country" json:"country"`
	Zipcode     string    `db:"zipcode" json:"zipcode"`
	CreatedDate time.Time `db:"created_date" json:"createdDate"`
}

// FullAddress - текст, который копируется в заявку при её создании.
func (l Location) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s", l.Name, l.Street, l.City, l.Country, l.Zipcode)
}

// Сущность Заявки на перевозку.
// Адреса хранятся текстом, без ссылки на location.
type Request struct {
	ID                int           `db:"id" json:"id"`
	CreatedBy         int           `db:"created_by" json:"createdBy"`
	CollectionDate    time.Time     `db:"collection_date" json:"collectionDate"`
	DeliveryDate      time.Time     `db:"delivery_date" json:"deliveryDate"`
	CollectionAddress string        `db:"collection_address" json:"collectionAddress"`
	DeliveryAddress   string        `db:"delivery_address" json:"deliveryAddress"`
	Pallets           int           `db:"pallets" json:"pallets"`
	Weight            int           `db:"weight" json:"weight"`
	Company           string        `db:"company" json:"company"`
	Status            RequestStatus `db:"request_status" json:"status"`
	CreatedDate       time.Time     `db:"created_date" json:"createdDate"`
}

// Сущность Предложения (ставки поставщика)
type Bid struct {
	ID          int       `db:"id" json:"id"`
	RequestID   int       `db:"request_id" json:"requestId"`
	CreatedBy   int       `db:"created_by" json:"createdBy"`
	Amount      float64   `db:"bid_amount" json:"amount"`
	Status      BidStatus `db:"bid_status" json:"status"`
	CreatedDate time.Time `db:"created_date" json:"createdDate"`
}

// BidView - ставка вместе с компанией поставщика (для заказчика)
type BidView struct {
	Bid
	Company string `db:"company" json:"company"`
}

// RequestBid - заявка и ставка компании по ней (для поставщика)
type RequestBid struct {
	Request
	BidID int `db:"bid_id" json:"bidId"`
}
