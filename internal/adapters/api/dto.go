package api

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyumbanet/portal-cli/internal/domain"
)

// apiDate handles the backend's date-only fields ("2006-01-02") which the
// default time.Time decoder rejects.
type apiDate time.Time

func (d *apiDate) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*d = apiDate(time.Time{})
		return nil
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return err
		}
	}

	*d = apiDate(parsed)
	return nil
}

type subscriptionDTO struct {
	ID            int64           `json:"id"`
	Package       int64           `json:"package"`
	PackageName   string          `json:"package_name"`
	Speed         int             `json:"speed"`
	Price         decimal.Decimal `json:"price"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	IsActive      bool            `json:"is_active"`
	DaysRemaining int             `json:"days_remaining"`
}

func (d subscriptionDTO) toDomain() domain.Subscription {
	return domain.Subscription{
		ID:            d.ID,
		PackageID:     d.Package,
		PackageName:   d.PackageName,
		SpeedMbps:     d.Speed,
		Price:         d.Price,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		IsActive:      d.IsActive,
		DaysRemaining: d.DaysRemaining,
	}
}

type paymentDTO struct {
	ID                 int64           `json:"id"`
	Amount             decimal.Decimal `json:"amount"`
	PhoneNumber        string          `json:"phone_number"`
	MpesaReceiptNumber string          `json:"mpesa_receipt_number"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
}

func (d paymentDTO) toDomain() domain.Payment {
	return domain.Payment{
		ID:            d.ID,
		Amount:        d.Amount,
		PhoneNumber:   d.PhoneNumber,
		ReceiptNumber: d.MpesaReceiptNumber,
		Status:        domain.ParsePaymentStatus(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}

type usageDTO struct {
	DownloadMB decimal.Decimal `json:"download_mb"`
	UploadMB   decimal.Decimal `json:"upload_mb"`
}

func (d usageDTO) toDomain() domain.UsageSnapshot {
	return domain.UsageSnapshot{
		DownloadMB: d.DownloadMB.InexactFloat64(),
		UploadMB:   d.UploadMB.InexactFloat64(),
	}
}

type usageSampleDTO struct {
	Date       apiDate         `json:"date"`
	DownloadMB decimal.Decimal `json:"download_mb"`
	UploadMB   decimal.Decimal `json:"upload_mb"`
}

func (d usageSampleDTO) toDomain() domain.UsageSample {
	return domain.UsageSample{
		Date: time.Time(d.Date),
		UsageSnapshot: domain.UsageSnapshot{
			DownloadMB: d.DownloadMB.InexactFloat64(),
			UploadMB:   d.UploadMB.InexactFloat64(),
		},
	}
}

type planDTO struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	DurationDays     int             `json:"duration_days"`
	MaxDownloadSpeed int             `json:"max_download_speed"`
	MaxUploadSpeed   int             `json:"max_upload_speed"`
	DataCapMB        int64           `json:"data_cap_mb"`
}

func (d planDTO) toDomain() domain.Plan {
	return domain.Plan{
		ID:               d.ID,
		Name:             d.Name,
		Price:            d.Price,
		DurationDays:     d.DurationDays,
		MaxDownloadSpeed: d.MaxDownloadSpeed,
		MaxUploadSpeed:   d.MaxUploadSpeed,
		DataCapMB:        d.DataCapMB,
	}
}

type ticketUpdateDTO struct {
	Note              string    `json:"note"`
	IsPublic          bool      `json:"is_public"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedByUsername string    `json:"updated_by_username"`
}

type ticketDTO struct {
	ID            int64             `json:"id"`
	Subject       string            `json:"subject"`
	Category      string            `json:"category"`
	Description   string            `json:"description"`
	Priority      string            `json:"priority"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	AdminResponse *string           `json:"admin_response"`
	Updates       []ticketUpdateDTO `json:"updates"`
}

func (d ticketDTO) toDomain() domain.Ticket {
	updates := make([]domain.TicketUpdate, 0, len(d.Updates))
	for _, update := range d.Updates {
		updates = append(updates, domain.TicketUpdate{
			Note:      update.Note,
			Public:    update.IsPublic,
			Author:    update.UpdatedByUsername,
			CreatedAt: update.CreatedAt,
		})
	}

	ticket := domain.Ticket{
		ID:          d.ID,
		Subject:     d.Subject,
		Category:    domain.TicketCategory(d.Category),
		Description: d.Description,
		Priority:    d.Priority,
		Status:      domain.TicketStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		Updates:     updates,
	}
	if d.AdminResponse != nil {
		ticket.AdminResponse = *d.AdminResponse
	}
	return ticket
}

type stkPushDTO struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}
