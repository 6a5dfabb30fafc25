package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
	"github.com/avistalabs/ledger_backend/internal/middleware"
)

// documentService records document-derived drafts from the ingestion
// collaborator and turns them into journal entries. Extraction happens
// upstream; this service only sees the structured result.
type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	journalSvc   portssvc.JournalSvcFacade
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, journalSvc portssvc.JournalSvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{documentRepo: documentRepo, journalSvc: journalSvc}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) CreateDocument(ctx context.Context, entityID int64, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Total.IsNegative() {
		return nil, fmt.Errorf("%w: document total cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		EntityID:    entityID,
		Kind:        req.Kind,
		Vendor:      req.Vendor,
		Total:       req.Total,
		DocDate:     req.DocDate,
		DueDate:     req.DueDate,
		Status:      domain.DocOpen,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Document recorded",
		slog.String("document_id", doc.DocumentID), slog.String("kind", string(doc.Kind)))
	return &doc, nil
}

// CreateEntryFromDocument drafts a two-line entry on the document's total and
// links it back. The entry is system-derived (approved and posted) so the
// document immediately clears the unposted-totals close gate.
func (s *documentService) CreateEntryFromDocument(ctx context.Context, entityID int64, documentID string, req dto.CreateEntryFromDocumentRequest, userID string) (*domain.JournalEntry, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	if doc.JournalEntryID != nil {
		return nil, fmt.Errorf("%w: document %s already has a journal entry", apperrors.ErrDuplicate, documentID)
	}
	if !doc.Total.IsPositive() {
		return nil, fmt.Errorf("%w: document %s has no total to post", apperrors.ErrValidation, documentID)
	}

	ref := "DOC-" + doc.DocumentID
	description := fmt.Sprintf("%s from %s", doc.Kind, doc.Vendor)
	entryReq := dto.CreateEntryRequest{
		Date:        doc.DocDate,
		Description: description,
		Reference:   &ref,
		Lines: []dto.CreateLineRequest{
			{AccountID: req.DebitAccountID, Description: description, Debit: doc.Total},
			{AccountID: req.CreditAccountID, Description: description, Credit: doc.Total},
		},
	}
	entry, err := s.journalSvc.CreateSystemEntry(ctx, entityID, entryReq, userID)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.LinkJournalEntry(ctx, documentID, entry.EntryID, domain.DocPosted, userID, time.Now()); err != nil {
		return nil, err
	}
	return entry, nil
}
