package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := map[Code]int{
		CodeValidation:          http.StatusBadRequest,
		CodeInvalidFormat:       http.StatusBadRequest,
		CodeNotFound:            http.StatusNotFound,
		CodeForbidden:           http.StatusForbidden,
		CodeInsufficientStock:   http.StatusConflict,
		CodeInsufficientPayment: http.StatusUnprocessableEntity,
		CodeEmptyCart:           http.StatusUnprocessableEntity,
		CodeCustomerRequired:    http.StatusUnprocessableEntity,
		CodeStorage:             http.StatusServiceUnavailable,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("code %s: expected status %d, got %d", code, status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("disk on fire")
	err := Wrap(CodeStorage, cause, "commit failed")

	if err.Unwrap() != cause {
		t.Fatal("expected cause to be preserved")
	}
	if !IsCode(err, CodeStorage) {
		t.Fatalf("expected storage code, got %s", err.Code())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := New(CodeInsufficientStock, "only 2 left")
	outer := fmt.Errorf("processing sale: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeInsufficientStock {
		t.Fatalf("expected typed error through wrap, got %v", typed)
	}
}

func TestDumpChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeStorage, fmt.Errorf("connection reset"), "insert transaction")
	dump := Dump(err)

	if dump.Code != CodeStorage {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
