package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Predicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"column type", NewDomainError(ModuleColumn, ErrorCodeColumnType, "bad"), IsColumnType, true},
		{"wrapped empty input", fmt.Errorf("score: %w", NewDomainError(ModuleAggregate, ErrorCodeEmptyInput, "empty")), IsEmptyInput, true},
		{"analyzer", WrapDomainError(ModuleAnalysis, ErrorCodeAnalyzerUnavailable, "down", errors.New("dial")), IsAnalyzerUnavailable, true},
		{"wrong code", NewDomainError(ModuleColumn, ErrorCodeColumnType, "bad"), IsEmptyInput, false},
		{"plain error", errors.New("x"), IsColumnType, false},
		{"nil", nil, IsNotFound, false},
		{"store not found", ErrStoreNotFound, IsNotFound, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDomainError_UnwrapCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapDomainError(ModuleAnalysis, ErrorCodeAnalyzerUnavailable, "analyzer unavailable", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is should reach the cause")
	}
	if got, want := err.Error(), "analyzer unavailable: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if GetDomainError(fmt.Errorf("outer: %w", err)).Module != ModuleAnalysis {
		t.Errorf("GetDomainError should find the wrapped error")
	}
}

func TestDocument_Field(t *testing.T) {
	var nilDoc *Document
	if _, ok := nilDoc.Field("title"); ok {
		t.Errorf("nil document should have no fields")
	}
	doc := &Document{ID: "d1"}
	doc.PutField("title", "hello")
	if v, ok := doc.Field("title"); !ok || v != "hello" {
		t.Errorf("Field(title) = %v, %v", v, ok)
	}
	if _, ok := doc.Field("body"); ok {
		t.Errorf("missing field reported present")
	}
}
