package validate

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestInstanceReturnsSameValidator(t *testing.T) {
	t.Parallel()

	first := Instance()
	second := Instance()
	if first != second {
		t.Fatal("expected Instance to return the identical validator on repeated calls")
	}
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(signupRequest{Email: "not-an-email", Password: "pw"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("unexpected error type: %T", err)
	}
	var fields []string
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	joined := strings.Join(fields, ",")
	if !strings.Contains(joined, "email") || !strings.Contains(joined, "password") {
		t.Fatalf("expected wire field names, got %q", joined)
	}
}

func TestUseWithGinSharesEngine(t *testing.T) {
	UseWithGin()

	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatalf("unexpected engine type: %T", binding.Validator.Engine())
	}
	if engine != Instance() {
		t.Fatal("gin binding does not share the provisioned validator")
	}

	if err := binding.Validator.ValidateStruct(&signupRequest{}); err == nil {
		t.Fatal("expected binding validation to fail for empty struct")
	}
}
