package dto

import (
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string                    `json:"entryID"`
	EntryNumber     string                    `json:"entryNumber"`
	AccrualID       string                    `json:"accrualID"`
	EntryType       domain.JournalEntryType   `json:"entryType"`
	EntryDate       time.Time                 `json:"entryDate"`
	Description     string                    `json:"description"`
	DebitAccountID  string                    `json:"debitAccountID"`
	CreditAccountID string                    `json:"creditAccountID"`
	DebitAmount     decimal.Decimal           `json:"debitAmount"`
	CreditAmount    decimal.Decimal           `json:"creditAmount"`
	PeriodYear      int                       `json:"periodYear"`
	PeriodMonth     int                       `json:"periodMonth"`
	ReversesEntryID *string                   `json:"reversesEntryID,omitempty"`
	Status          domain.JournalEntryStatus `json:"status"`
	CreatedAt       time.Time                 `json:"createdAt"`
	CreatedBy       string                    `json:"createdBy"`
}

// ListEntriesResponse is the journal entry listing for one accrual.
type ListEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		AccrualID:       e.AccrualID,
		EntryType:       e.EntryType,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		DebitAccountID:  e.DebitAccountID,
		CreditAccountID: e.CreditAccountID,
		DebitAmount:     e.DebitAmount,
		CreditAmount:    e.CreditAmount,
		PeriodYear:      e.PeriodYear,
		PeriodMonth:     e.PeriodMonth,
		ReversesEntryID: e.ReversesEntryID,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries to response DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
