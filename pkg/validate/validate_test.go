package validate_test

import (
	"testing"

	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/validate"
)

type intakeInput struct {
	CustomerName string `json:"customer_name" validate:"required,min=2,max=255"`
	Phone        string `json:"phone"         validate:"required,digits=11"`
	DeliveryType string `json:"delivery_type" validate:"required,in=delivery,pickup"`
	Address      string `json:"address"       validate:"nullable,max=500"`
	Quantity     int    `json:"quantity"      validate:"required,numeric,gte=1"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(intakeInput{
		CustomerName: "João Pereira",
		Phone:        "11988887777",
		DeliveryType: "delivery",
		Address:      "Rua das Flores, 123",
		Quantity:     2,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(intakeInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["customer_name"]; !ok {
		t.Error("expected customer_name to be required")
	}
	if _, ok := errs["phone"]; !ok {
		t.Error("expected phone to be required")
	}
}

func TestDigitsRule(t *testing.T) {
	errs := validate.Struct(intakeInput{
		CustomerName: "Ana",
		Phone:        "not-digits",
		DeliveryType: "pickup",
		Quantity:     1,
	})
	if _, ok := errs["phone"]; !ok {
		t.Error("expected digits error for phone")
	}

	errs = validate.Struct(intakeInput{
		CustomerName: "Ana",
		Phone:        "119999",
		DeliveryType: "pickup",
		Quantity:     1,
	})
	if _, ok := errs["phone"]; !ok {
		t.Error("expected length error for short phone")
	}
}

func TestInRuleWithMultipleValues(t *testing.T) {
	in := intakeInput{CustomerName: "Ana", Phone: "11988887777", Quantity: 1}

	in.DeliveryType = "pickup"
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("pickup should be allowed: %v", errs)
	}

	in.DeliveryType = "drone"
	errs := validate.Struct(in)
	if _, ok := errs["delivery_type"]; !ok {
		t.Error("expected in error for unknown delivery type")
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(intakeInput{
		CustomerName: "Ana",
		Phone:        "11988887777",
		DeliveryType: "pickup",
		Address:      "",
		Quantity:     1,
	})
	if _, ok := errs["address"]; ok {
		t.Error("nullable empty address must not error")
	}
}

func TestGteOnNumbers(t *testing.T) {
	errs := validate.Struct(intakeInput{
		CustomerName: "Ana",
		Phone:        "11988887777",
		DeliveryType: "pickup",
		Quantity:     0,
	})
	// Zero quantity trips required before gte; both are acceptable outcomes
	// as long as an error is reported.
	if _, ok := errs["quantity"]; !ok {
		t.Error("expected error for zero quantity")
	}
}

type intakeLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,numeric,gte=1"`
}

type nestedIntake struct {
	CustomerName string       `json:"customer_name" validate:"required,min=2"`
	Items        []intakeLine `json:"items"         validate:"required"`
}

func TestNestedSliceRules(t *testing.T) {
	errs := validate.Struct(nestedIntake{
		CustomerName: "Ana",
		Items: []intakeLine{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-2", Quantity: -3},
			{Quantity: 1},
		},
	})

	if _, ok := errs["items.0.quantity"]; ok {
		t.Error("valid line must not error")
	}
	if _, ok := errs["items.1.quantity"]; !ok {
		t.Errorf("expected gte error for negative quantity, got: %v", errs)
	}
	if _, ok := errs["items.2.product_id"]; !ok {
		t.Errorf("expected required error for missing product_id, got: %v", errs)
	}
}

func TestNestedSliceRequired(t *testing.T) {
	errs := validate.Struct(nestedIntake{CustomerName: "Ana"})
	if _, ok := errs["items"]; !ok {
		t.Errorf("expected required error for empty items, got: %v", errs)
	}
}

func TestNestedStructRules(t *testing.T) {
	type address struct {
		Street string `json:"street" validate:"required"`
	}
	type form struct {
		Name    string  `json:"name" validate:"required"`
		Address address `json:"address"`
	}

	errs := validate.Struct(form{Name: "Ana"})
	if _, ok := errs["address.street"]; !ok {
		t.Errorf("expected nested required error, got: %v", errs)
	}
}

func TestStatusInRule(t *testing.T) {
	type statusBody struct {
		Status string `json:"status" validate:"required,in=pending,accepted,preparing,delivering,completed"`
	}

	for _, s := range []string{"pending", "accepted", "preparing", "delivering", "completed"} {
		if errs := validate.Struct(statusBody{Status: s}); validate.HasErrors(errs) {
			t.Errorf("status %q should be valid: %v", s, errs)
		}
	}

	errs := validate.Struct(statusBody{Status: "burnt"})
	if _, ok := errs["status"]; !ok {
		t.Error("expected error for unknown status")
	}
}
