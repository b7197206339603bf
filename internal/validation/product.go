package validation

import (
	"strconv"
	"strings"

	"github.com/ashimkarki/inventory-service/internal/models"
)

const (
	maxProductNameLen = 100
	maxDescriptionLen = 500
)

// ProductInput carries the raw, untrusted form fields of the add and
// edit flows. Price and Quantity stay strings so that "not a number"
// can be reported instead of silently becoming zero.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       string
	Quantity    string
}

// Product checks in against the product field rules and returns the
// validated fields together with an ordered message list. The fields
// value is only meaningful when the list is empty.
func Product(in ProductInput) (models.ProductFields, Errors) {
	var errs Errors

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, "Product name is required")
	} else if len(name) > maxProductNameLen {
		errs = append(errs, "Product name must be less than 100 characters")
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		errs = append(errs, "Description is required")
	} else if len(description) > maxDescriptionLen {
		errs = append(errs, "Description must be less than 500 characters")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		errs = append(errs, "Category is required")
	} else if !models.IsValidCategory(category) {
		errs = append(errs, "Category is not valid")
	}

	var price float64
	priceStr := strings.TrimSpace(in.Price)
	if priceStr == "" {
		errs = append(errs, "Price is required")
	} else {
		p, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || p < 0 {
			errs = append(errs, "Price must be a valid positive number")
		} else {
			price = p
		}
	}

	var quantity int64
	quantityStr := strings.TrimSpace(in.Quantity)
	if quantityStr == "" {
		errs = append(errs, "Quantity is required")
	} else {
		q, err := strconv.ParseInt(quantityStr, 10, 64)
		if err != nil || q < 0 {
			errs = append(errs, "Quantity must be a valid positive integer")
		} else {
			quantity = q
		}
	}

	if len(errs) > 0 {
		return models.ProductFields{}, errs
	}

	return models.ProductFields{
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
	}, nil
}
