package model

import (
	"rental/internal/domains/booking/conflict"
	"rental/shared/constant"
	"rental/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldUnitID         = "unit_id"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldCustomerName   = "customer_name"
	FieldCustomerPhone  = "customer_phone"
	FieldNotes          = "notes"
	FieldPricePerDay    = "price_per_day"
	FieldCashAmount     = "cash_amount"
	FieldTransferAmount = "transfer_amount"
	FieldIsOwnerBooking = "is_owner_booking"
	FieldUserID         = "user_id"

	UnitTableName    = "units"
	FieldUnitOwnerID = "owner_id"
)

// SortableFields are the columns a client may order listings by.
var SortableFields = []string{
	TableName + "." + FieldStartDate,
	TableName + "." + FieldCustomerName,
	TableName + "." + constant.FieldCreatedAt,
}

const (
	EventCreated   = "booking.created"
	EventUpdated   = "booking.updated"
	EventCancelled = "booking.cancelled"
)

type Booking struct {
	ID             string              `db:"id"`
	UnitID         string              `db:"unit_id"`
	StartDate      time.Time           `db:"start_date"`
	EndDate        time.Time           `db:"end_date"`
	CustomerName   string              `db:"customer_name"`
	CustomerPhone  string              `db:"customer_phone"`
	Notes          string              `db:"notes"`
	PricePerDay    decimal.NullDecimal `db:"price_per_day"`
	CashAmount     decimal.Decimal     `db:"cash_amount"`
	TransferAmount decimal.Decimal     `db:"transfer_amount"`
	IsOwnerBooking bool                `db:"is_owner_booking"`
	UserID         *string             `db:"user_id"`
	UnitName       string              `db:"unit_name"     table:"units" column:"name"`
	UnitOwnerID    *string             `db:"unit_owner_id" table:"units" column:"owner_id"`
	model.Metadata
}

// GetJoinQuery joins the unit so listings carry its name and owner.
func (Booking) GetJoinQuery() string {
	return "LEFT JOIN units ON units.id = bookings.unit_id"
}

func (b Booking) Range() conflict.Range {
	return conflict.Range{ID: b.ID, Start: b.StartDate, End: b.EndDate}
}

// Days counts the calendar days of the booking, bounds included.
func (b Booking) Days() int {
	return int(b.EndDate.Sub(b.StartDate).Hours()/24) + 1
}

// TotalAmount is what was actually paid, cash plus transfer.
func (b Booking) TotalAmount() decimal.Decimal {
	return b.CashAmount.Add(b.TransferAmount)
}

// Revenue is the paid total, or the expected price for the stay when nothing was paid.
func (b Booking) Revenue() decimal.Decimal {
	if total := b.TotalAmount(); !total.IsZero() {
		return total
	}

	if !b.PricePerDay.Valid {
		return decimal.Zero
	}

	return b.PricePerDay.Decimal.Mul(decimal.NewFromInt(int64(b.Days())))
}

func (b Booking) Owner() string {
	if b.UnitOwnerID == nil {
		return ""
	}

	return *b.UnitOwnerID
}

func (b Booking) CreatedByUser() string {
	if b.UserID == nil {
		return ""
	}

	return *b.UserID
}
