package domain

import (
	"fmt"
	"time"
)

type InquiryStatus string

const (
	InquiryNew     InquiryStatus = "new"
	InquiryRead    InquiryStatus = "read"
	InquiryReplied InquiryStatus = "replied"
	InquiryClosed  InquiryStatus = "closed"
)

type Inquiry struct {
	ID         string
	PropertyID string
	Name       string
	Email      string
	Phone      string
	Message    string
	Status     InquiryStatus
	CreatedAt  time.Time
}

type InquiryForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" validate:"required"`
}

// DefaultInquiryMessage - текст, которым форма заполняется до ввода пользователя.
func DefaultInquiryMessage(propertyTitle string) string {
	return fmt.Sprintf("Hi, I am interested in \"%s\". Please provide more details.", propertyTitle)
}
