package usecase

import (
	"go.uber.org/fx"

	"github.com/miccroten/quoteportal/internal/config"
	"github.com/miccroten/quoteportal/internal/domain/repository"
)

func newFileAccessBroker(quotations repository.QuotationRepository, contacts repository.ContactRepository, store ObjectStore, cfg *config.Config) *FileAccessBroker {
	return NewFileAccessBroker(quotations, contacts, store, cfg.SignedURLTTL)
}

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAccountUseCase,
	NewContactUseCase,
	NewQuotationLifecycle,
	NewPricingEditor,
	NewPaymentOrchestrator,
	newFileAccessBroker,
)
