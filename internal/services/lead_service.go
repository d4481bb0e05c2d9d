package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/notify"
	"github.com/ozanatli/microsite-backend/internal/store"
)

// LeadService handles the public inquiry intake and the dashboard's lead
// inbox.
type LeadService struct {
	store    store.Store
	notifier *notify.Notifier
}

func NewLeadService(st store.Store, n *notify.Notifier) *LeadService {
	return &LeadService{store: st, notifier: n}
}

// Submit validates and stores an inquiry from a tenant's public contact form.
// Validation failures never reach the store.
func (s *LeadService) Submit(ctx context.Context, tenant *models.Tenant, req *dto.SubmitLeadRequest) (*models.Lead, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	if req.Email == "" && req.Phone == "" {
		return nil, fmt.Errorf("%w: an email or phone number is required", ErrValidation)
	}

	lead := &models.Lead{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
		Status:   models.LeadStatusNew,
	}
	if err := s.store.CreateLead(ctx, lead); err != nil {
		return nil, err
	}

	// Best-effort owner notification; the visitor never waits on it.
	go s.notifier.NewLead(tenant, lead)

	return lead, nil
}

func (s *LeadService) List(ctx context.Context, tenantID uuid.UUID) ([]models.Lead, error) {
	return s.store.ListLeads(ctx, tenantID)
}

func (s *LeadService) UpdateStatus(ctx context.Context, tenantID, leadID uuid.UUID, status string) error {
	if !models.ValidLeadStatus(status) {
		return fmt.Errorf("%w: unknown lead status %q", ErrValidation, status)
	}
	return s.store.UpdateLeadStatus(ctx, tenantID, leadID, status)
}

var leadExportHeader = []string{"Received", "Name", "Email", "Phone", "Message", "Status"}

// Export renders the tenant's leads as an XLSX workbook.
func (s *LeadService) Export(ctx context.Context, tenantID uuid.UUID) (*bytes.Buffer, error) {
	leads, err := s.store.ListLeads(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	for col, header := range leadExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("header style: %w", err)
		}
	}

	for i, lead := range leads {
		row := i + 2
		values := []interface{}{
			lead.CreatedAt.Format("2006-01-02 15:04"),
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Message,
			lead.Status,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("row cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &buf, nil
}
