package ocr

import (
	"encoding/json"
	"fmt"
	"strings"

	"faktura-ocr/pkg/models"
)

// ParseAnnotation decodes a document annotation JSON string and validates it
// against the Invoice shape. A *AnnotationError is returned when the payload
// decodes but violates the schema, so callers can inspect individual field
// violations.
func ParseAnnotation(annotation string) (*models.Invoice, error) {
	var invoice models.Invoice
	decoder := json.NewDecoder(strings.NewReader(annotation))
	if err := decoder.Decode(&invoice); err != nil {
		return nil, WrapOCRError("ParseAnnotation", err, "document annotation is not valid JSON")
	}

	if err := validateInvoice(&invoice); err != nil {
		return nil, err
	}

	return &invoice, nil
}

// validateInvoice enforces the structural rules the annotation schema
// promises: workLists present, every work item attributable to an employee
// and a page, and item ids unique within the chunk.
func validateInvoice(invoice *models.Invoice) error {
	var errs []FieldError

	if invoice.WorkLists == nil {
		errs = append(errs, FieldError{
			Field:   "workLists",
			Message: "required, use an empty array when no work items were found",
		})
	}

	seen := make(map[int]bool, len(invoice.WorkLists))
	for i, item := range invoice.WorkLists {
		prefix := fmt.Sprintf("workLists[%d]", i)

		if strings.TrimSpace(item.Employee) == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".employee",
				Message: "must not be empty",
				Value:   item.Employee,
			})
		}
		if item.ID < 1 {
			errs = append(errs, FieldError{
				Field:   prefix + ".id",
				Message: "must be a positive integer",
				Value:   item.ID,
			})
		} else if seen[item.ID] {
			errs = append(errs, FieldError{
				Field:   prefix + ".id",
				Message: "duplicate id within chunk",
				Value:   item.ID,
			})
		} else {
			seen[item.ID] = true
		}
		if item.PageNumber < 1 {
			errs = append(errs, FieldError{
				Field:   prefix + ".pageNumber",
				Message: "must be a positive integer",
				Value:   item.PageNumber,
			})
		}
	}

	if len(errs) > 0 {
		return &AnnotationError{Errors: errs}
	}
	return nil
}
