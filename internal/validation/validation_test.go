package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"productsvc/internal/models"
	"productsvc/internal/validation"
)

func intPtr(i int) *int         { return &i }
func strPtr(s string) *string   { return &s }
func fltPtr(f float64) *float64 { return &f }

func fields(errs validation.FieldErrors) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateCreate_Valid(t *testing.T) {
	v := validation.New()

	errs := v.Validate(&models.ProductCreate{
		Name:          "Apple Laptop",
		Description:   "High performance laptop",
		Price:         999.99,
		StockQuantity: intPtr(10),
	})
	assert.Nil(t, errs)

	// Boundary values that must be accepted: price 0.01, stock 0, no description.
	errs = v.Validate(&models.ProductCreate{
		Name:          "A",
		Price:         0.01,
		StockQuantity: intPtr(0),
	})
	assert.Nil(t, errs)
}

func TestValidateCreate_Boundaries(t *testing.T) {
	v := validation.New()

	// Price 0 is rejected, stock -1 is rejected, empty name is rejected.
	errs := v.Validate(&models.ProductCreate{
		Name:          "",
		Price:         0,
		StockQuantity: intPtr(-1),
	})
	assert.ElementsMatch(t, []string{"name", "price", "stock_quantity"}, fields(errs))

	// Omitting stock_quantity fails despite the column default of 0.
	errs = v.Validate(&models.ProductCreate{
		Name:  "Widget",
		Price: 1.0,
	})
	assert.Equal(t, []string{"stock_quantity"}, fields(errs))

	// Length limits: name over 255, description over 2000.
	errs = v.Validate(&models.ProductCreate{
		Name:          strings.Repeat("x", 256),
		Description:   strings.Repeat("y", 2001),
		Price:         1.0,
		StockQuantity: intPtr(1),
	})
	assert.ElementsMatch(t, []string{"name", "description"}, fields(errs))
}

func TestValidateUpdate_OmittedVersusExplicit(t *testing.T) {
	v := validation.New()

	// Everything omitted is a valid (no-op) partial update.
	assert.Nil(t, v.Validate(&models.ProductUpdate{}))

	// Omitted price passes; explicitly provided price 0 fails.
	assert.Nil(t, v.Validate(&models.ProductUpdate{Name: strPtr("Renamed")}))

	errs := v.Validate(&models.ProductUpdate{Price: fltPtr(0)})
	assert.Equal(t, []string{"price"}, fields(errs))

	// An explicitly empty name is present and invalid, not "omitted".
	errs = v.Validate(&models.ProductUpdate{Name: strPtr("")})
	assert.Equal(t, []string{"name"}, fields(errs))

	errs = v.Validate(&models.ProductUpdate{StockQuantity: intPtr(-1)})
	assert.Equal(t, []string{"stock_quantity"}, fields(errs))

	assert.Nil(t, v.Validate(&models.ProductUpdate{StockQuantity: intPtr(0)}))
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	v := validation.New()

	errs := v.Validate(&models.ProductUpdate{
		Name:  strPtr(""),
		Price: fltPtr(-5),
	})
	assert.Len(t, errs, 2)
	for _, e := range errs {
		assert.NotEmpty(t, e.Message)
	}
}
