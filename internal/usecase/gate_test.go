package usecase

import (
	"testing"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
)

func TestRequireRole(t *testing.T) {
	if err := requireRole(model.Claims{}, model.RoleCustomer); err != domainErrors.ErrUnauthorized {
		t.Fatalf("anonymous caller: expected unauthorized, got %v", err)
	}
	if err := requireRole(model.Claims{UserID: 7, Role: "root"}, model.RoleCustomer); err != domainErrors.ErrUnauthorized {
		t.Fatalf("unknown role: expected unauthorized, got %v", err)
	}
	if err := requireRole(customerClaims, model.RoleAdmin); err != domainErrors.ErrForbidden {
		t.Fatalf("customer on admin gate: expected forbidden, got %v", err)
	}
	if err := requireRole(customerClaims, model.RoleCustomer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := requireRole(adminClaims, model.RoleCustomer); err != nil {
		t.Fatalf("admins pass customer gates, got %v", err)
	}
}
