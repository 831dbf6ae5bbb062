// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice payment states.
type InvoiceStatus string

const (
	InvoiceStatusPaid   InvoiceStatus = "Paid"
	InvoiceStatusUnpaid InvoiceStatus = "Unpaid"
)

// Valid reports whether the status is a known payment state.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusUnpaid:
		return true
	default:
		return false
	}
}

// Invoice represents a customer invoice. Monetary amounts are integer cents.
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID      `gorm:"column:user_id;not null;index" json:"-"`
	InvoiceNumber string            `gorm:"column:invoice_number;type:text;not null" json:"invoiceNumber"`
	ClientName    string            `gorm:"column:client_name;type:text;not null" json:"clientName"`
	ClientEmail   string            `gorm:"column:client_email;type:text" json:"clientEmail"`
	ClientAddress string            `gorm:"column:client_address;type:text" json:"clientAddress"`
	Status        InvoiceStatus     `gorm:"type:text;not null;default:'Unpaid'" json:"status"`
	Total         int64             `gorm:"not null;default:0" json:"total"`
	InvoiceDate   *time.Time        `gorm:"column:invoice_date" json:"invoiceDate"`
	DueDate       *time.Time        `gorm:"column:due_date" json:"dueDate"`
	Notes         string            `gorm:"type:text" json:"notes"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	Items         []InvoiceItem     `gorm:"foreignKey:InvoiceID" json:"items"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem represents a line on an invoice.
type InvoiceItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID `gorm:"column:invoice_id;not null;index" json:"-"`
	Description string       `gorm:"type:text" json:"description"`
	Quantity    int64        `gorm:"not null" json:"quantity"`
	UnitAmount  int64        `gorm:"column:unit_amount;not null" json:"unitAmount"`
	Amount      int64        `gorm:"not null" json:"amount"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
