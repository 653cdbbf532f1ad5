package ocr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotationValid(t *testing.T) {
	annotation := `{
		"workLists": [
			{
				"department": "Drift",
				"employee": "Ola Nordmann",
				"project": "Prosjekt 42",
				"activity": "Graving",
				"fromPeriod": "07:00",
				"toPeriod": "15:00",
				"fromDate": "02.06.2025",
				"toDate": "02.06.2025",
				"payType": null,
				"extras": "",
				"total": "7,5",
				"machineHours": "",
				"pageNumber": 2,
				"id": 1
			}
		],
		"lineItems": null,
		"invoice": {"number": "1201", "date": "01.06.2025", "dueDate": "15.06.2025", "kid": ""},
		"recipient": null,
		"reference": null,
		"totals": null,
		"sender": null
	}`

	invoice, err := ParseAnnotation(annotation)
	require.NoError(t, err)
	require.NotNil(t, invoice)

	require.Len(t, invoice.WorkLists, 1)
	item := invoice.WorkLists[0]
	assert.Equal(t, "Ola Nordmann", item.Employee)
	assert.Equal(t, "7,5", item.Total)
	assert.Equal(t, 2, item.PageNumber)
	assert.Nil(t, item.PayType)
	assert.Equal(t, "1201", invoice.InvoiceNumber())
}

func TestParseAnnotationEmptyWorkLists(t *testing.T) {
	invoice, err := ParseAnnotation(`{"workLists": [], "invoice": null}`)
	require.NoError(t, err)
	assert.Empty(t, invoice.WorkLists)
	assert.Equal(t, "", invoice.InvoiceNumber())
}

func TestParseAnnotationInvalidJSON(t *testing.T) {
	invoice, err := ParseAnnotation(`{"workLists": [`)
	assert.Nil(t, invoice)
	require.Error(t, err)

	var annErr *AnnotationError
	assert.False(t, errors.As(err, &annErr), "truncated JSON is a decode failure, not a schema violation")
}

func TestParseAnnotationMissingWorkLists(t *testing.T) {
	_, err := ParseAnnotation(`{"invoice": {"number": "1201", "date": null, "dueDate": null, "kid": ""}}`)
	require.Error(t, err)

	var annErr *AnnotationError
	require.True(t, errors.As(err, &annErr))
	require.Len(t, annErr.Errors, 1)
	assert.Equal(t, "workLists", annErr.Errors[0].Field)
}

func TestParseAnnotationFieldViolations(t *testing.T) {
	annotation := `{
		"workLists": [
			{"employee": "  ", "fromPeriod": "07:00", "toPeriod": "15:00",
			 "fromDate": "02.06.2025", "toDate": "02.06.2025",
			 "extras": "", "total": "7.5", "machineHours": "", "pageNumber": 0, "id": 1},
			{"employee": "Kari Nordmann", "fromPeriod": "07:00", "toPeriod": "15:00",
			 "fromDate": "02.06.2025", "toDate": "02.06.2025",
			 "extras": "", "total": "8", "machineHours": "", "pageNumber": 1, "id": 1}
		]
	}`

	_, err := ParseAnnotation(annotation)
	require.Error(t, err)

	var annErr *AnnotationError
	require.True(t, errors.As(err, &annErr))

	fields := make([]string, len(annErr.Errors))
	for i, fe := range annErr.Errors {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "workLists[0].employee")
	assert.Contains(t, fields, "workLists[0].pageNumber")
	assert.Contains(t, fields, "workLists[1].id")
}
