package domain

import "time"

type InquiryStatus string

const (
	InquiryNew     InquiryStatus = "new"
	InquiryRead    InquiryStatus = "read"
	InquiryReplied InquiryStatus = "replied"
	InquiryClosed  InquiryStatus = "closed"
)

var InquiryStatusOptions = []Option{
	{Value: string(InquiryNew), Label: "New"},
	{Value: string(InquiryRead), Label: "Read"},
	{Value: string(InquiryReplied), Label: "Replied"},
	{Value: string(InquiryClosed), Label: "Closed"},
}

type Inquiry struct {
	ID            string
	PropertyID    string
	PropertyTitle string
	PropertyImage string
	Name          string
	Email         string
	Phone         string
	Message       string
	Status        InquiryStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StatusUpdate - переход в любой статус из любого.
type StatusUpdate struct {
	Status InquiryStatus `json:"status" validate:"required,oneof=new read replied closed"`
}
