package dto

import (
	"mime/multipart"
	"rental/internal/domains/expense/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	OwnerID     string                `json:"owner_id"    validate:"omitempty,uuid"`
	Category    string                `json:"category"    validate:"required,oneof=maintenance cleaning utilities furnishing supplies marketing other"`
	Amount      string                `json:"amount"      validate:"required,decimal"`
	Description string                `json:"description" validate:"omitempty,max=500"`
	Invoice     *multipart.FileHeader `json:"invoice"     validate:"omitempty,mimetypes=application/pdf image/png image/jpeg,maxfilesize=10"`
	InvoiceFile multipart.File        `json:"-"`
}

// ToModel builds the expense. ownerID is the resolved owner, the request owner or the unit owner.
func (c *CreateExpenseRequest) ToModel(user, unitID, ownerID, invoiceURL string) model.Expense {
	expense := model.Expense{
		ID:          uuid.NewString(),
		UnitID:      unitID,
		Category:    c.Category,
		Amount:      decimal.RequireFromString(c.Amount),
		Description: c.Description,
		Invoice:     invoiceURL,
		Metadata:    gModel.NewMetadata(user),
	}

	if ownerID != constant.Empty {
		expense.OwnerID = &ownerID
	}

	return expense
}

type UpdateExpenseRequest struct {
	Category    string                `db:"category"    json:"category"    validate:"omitempty,oneof=maintenance cleaning utilities furnishing supplies marketing other"`
	Amount      string                `json:"amount"      validate:"omitempty,decimal"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=500"`
	Invoice     *multipart.FileHeader `json:"invoice"     validate:"omitempty,mimetypes=application/pdf image/png image/jpeg,maxfilesize=10"`
	InvoiceFile multipart.File        `json:"-"`
}

func (u *UpdateExpenseRequest) IsEmpty() bool {
	return u.Category == constant.Empty && u.Amount == constant.Empty && u.Description == constant.Empty && u.Invoice == nil
}

// ToFields returns the columns to update, invoiceURL is set only when a new file was stored.
func (u *UpdateExpenseRequest) ToFields(user, invoiceURL string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.Amount != constant.Empty {
		fields[model.FieldAmount] = decimal.RequireFromString(u.Amount)
	}

	if invoiceURL != constant.Empty {
		fields[model.FieldInvoice] = invoiceURL
	}

	return fields
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	UnitID      string          `json:"unit_id"`
	UnitName    string          `json:"unit_name"`
	OwnerID     *string         `json:"owner_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Invoice     string          `json:"invoice"`
	gDto.Metadata
}

func (r *ExpenseResponse) FromModel(m model.Expense) {
	r.ID = m.ID
	r.UnitID = m.UnitID
	r.UnitName = m.UnitName
	r.OwnerID = m.OwnerID
	r.Category = m.Category
	r.Amount = m.Amount
	r.Description = m.Description
	r.Invoice = m.Invoice
	r.Metadata.FromModel(m.Metadata)
}

type GetExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	Total     decimal.Decimal   `json:"total"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

// FromModels fills the page. Total sums the amounts of the returned page only.
func (g *GetExpensesResponse) FromModels(models []model.Expense, totalData, limit int) {
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)
	g.TotalData = totalData
	g.Total = decimal.Zero
	g.Expenses = make([]ExpenseResponse, 0, len(models))

	for _, m := range models {
		var res ExpenseResponse

		res.FromModel(m)
		g.Expenses = append(g.Expenses, res)
		g.Total = g.Total.Add(m.Amount)
	}
}
