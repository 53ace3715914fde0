package models

import (
	"encoding/json"
	"testing"
)

func TestCustomerRefUnmarshalShapes(t *testing.T) {
	var withObject Comment
	if err := json.Unmarshal([]byte(`{"id":1,"customer":{"id":7,"name":"Asel"}}`), &withObject); err != nil {
		t.Fatalf("populated customer: %v", err)
	}
	if !withObject.Customer.IsPopulated() || withObject.Customer.ID != 7 || withObject.Customer.User.Name != "Asel" {
		t.Fatalf("unexpected populated customer: %#v", withObject.Customer)
	}

	var withNumber Comment
	if err := json.Unmarshal([]byte(`{"id":2,"customer":9}`), &withNumber); err != nil {
		t.Fatalf("numeric customer: %v", err)
	}
	if withNumber.Customer.Kind != CustomerRefOnly || withNumber.Customer.ID != 9 {
		t.Fatalf("unexpected ref customer: %#v", withNumber.Customer)
	}

	var withString Comment
	if err := json.Unmarshal([]byte(`{"id":3,"customer":"11"}`), &withString); err != nil {
		t.Fatalf("string customer: %v", err)
	}
	if withString.Customer.Kind != CustomerRefOnly || withString.Customer.ID != 11 {
		t.Fatalf("unexpected ref customer: %#v", withString.Customer)
	}

	var missing Comment
	if err := json.Unmarshal([]byte(`{"id":4}`), &missing); err != nil {
		t.Fatalf("missing customer: %v", err)
	}
	if missing.Customer.Kind != "" {
		t.Fatalf("expected empty customer, got %#v", missing.Customer)
	}
}

func TestCustomerRefRejectsGarbageID(t *testing.T) {
	var c CustomerRef
	if err := json.Unmarshal([]byte(`"not-a-number"`), &c); err == nil {
		t.Fatal("expected error for non numeric id")
	}
}

func TestCustomerRefMarshal(t *testing.T) {
	out, err := json.Marshal(RefCustomer(5))
	if err != nil {
		t.Fatalf("marshal ref: %v", err)
	}
	if string(out) != "5" {
		t.Fatalf("expected 5, got %s", out)
	}

	out, err = json.Marshal(PopulatedCustomer(UserSummary{ID: 5, Name: "Dana"}))
	if err != nil {
		t.Fatalf("marshal populated: %v", err)
	}
	if string(out) != `{"id":5,"name":"Dana"}` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestValidateReview(t *testing.T) {
	if err := ValidateReview("great", 0); err != ErrInvalidRating {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if err := ValidateReview("great", 6); err != ErrInvalidRating {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if err := ValidateReview("   ", 4); err != ErrEmptyText {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if err := ValidateReview("great", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateReply("\n"); err != ErrEmptyText {
		t.Fatalf("expected ErrEmptyText for reply, got %v", err)
	}
}
