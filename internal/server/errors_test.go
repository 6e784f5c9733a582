package server

import (
	"errors"
	"net/http"
	"testing"

	accountdomain "github.com/onebase/onebase/internal/account/domain"
	authdomain "github.com/onebase/onebase/internal/auth/domain"
	contactdomain "github.com/onebase/onebase/internal/contact/domain"
	dealdomain "github.com/onebase/onebase/internal/deal/domain"
	invoicedomain "github.com/onebase/onebase/internal/invoice/domain"
	invoicecustomerdomain "github.com/onebase/onebase/internal/invoicecustomer/domain"
	"gorm.io/gorm"
)

func TestMapErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"invalid credentials", authdomain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"expired session", authdomain.ErrSessionExpired, http.StatusUnauthorized, "unauthorized"},
		{"inactive user", authdomain.ErrUserInactive, http.StatusUnauthorized, "unauthorized"},
		{"number conflict", invoicedomain.ErrNumberConflict, http.StatusConflict, "conflict"},
		{"customer in use", invoicecustomerdomain.ErrCustomerInUse, http.StatusConflict, "conflict"},
		{"foreign key violation", gorm.ErrForeignKeyViolated, http.StatusConflict, "conflict"},
		{"account not found", accountdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"deal not found", dealdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"nil error", nil, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := mapError(tt.err)
			if status != tt.status {
				t.Fatalf("status = %d, want %d", status, tt.status)
			}
			if payload.Type != tt.typ {
				t.Fatalf("type = %q, want %q", payload.Type, tt.typ)
			}
		})
	}
}

func TestMapErrorValidation(t *testing.T) {
	status, payload := mapError(contactdomain.ErrInvalidFirstName)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if payload.Type != "validation_error" {
		t.Fatalf("type = %q, want validation_error", payload.Type)
	}
	if len(payload.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(payload.Errors))
	}
	if payload.Errors[0].Field != "first_name" || payload.Errors[0].Code != "invalid_first_name" {
		t.Fatalf("unexpected validation detail: %+v", payload.Errors[0])
	}

	status, payload = mapError(invoicedomain.ErrNoItems)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if payload.Errors[0].Message != "at least one item is required" {
		t.Fatalf("message = %q", payload.Errors[0].Message)
	}

	status, payload = mapError(invoicedomain.ErrInvalidNumber)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if payload.Errors[0].Field != "invoice_number" {
		t.Fatalf("field = %q, want invoice_number", payload.Errors[0].Field)
	}

	status, payload = mapError(newValidationError("name", "invalid_name", "name is required"))
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if payload.Errors[0].Message != "name is required" {
		t.Fatalf("message = %q", payload.Errors[0].Message)
	}
}

func TestClassifyErrorForLog(t *testing.T) {
	class, typ := classifyErrorForLog(errors.New("boom"))
	if class != "server_error" || typ != "internal_error" {
		t.Fatalf("got %q/%q", class, typ)
	}

	class, typ = classifyErrorForLog(accountdomain.ErrInvalidName)
	if class != "client_error" || typ != "validation_error" {
		t.Fatalf("got %q/%q", class, typ)
	}
}
