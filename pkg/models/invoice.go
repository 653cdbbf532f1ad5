package models

// Invoice is the structured extraction result for one PDF chunk, as returned
// by the OCR provider's document annotation. Optional blocks are pointers and
// are only present when the provider recognized at least one of their fields.
type Invoice struct {
	// WorkLists holds the timesheet rows attached to the invoice.
	// Always present as a list, possibly empty.
	WorkLists []WorkItem `json:"workLists"`

	// LineItems holds the invoiced products or services, nil when none
	// were recognized.
	LineItems []LineItem `json:"lineItems"`

	// Header holds the invoice number, dates and KID reference.
	Header *InvoiceHeader `json:"invoice"`

	Recipient *Recipient `json:"recipient"`
	Reference *Reference `json:"reference"`
	Totals    *Totals    `json:"totals"`
	Sender    *Sender    `json:"sender"`
}

// WorkItem is one timesheet row from an invoice's attached time list.
//
// Date fields use the DD.MM.YYYY format and period fields HH:mm, exactly as
// printed on the scanned timesheet. Total and MachineHours are free-text
// decimal strings (comma or period separator) and may be empty when the OCR
// could not read the column.
type WorkItem struct {
	Department   *string `json:"department"`
	Employee     string  `json:"employee"`
	Project      *string `json:"project"`
	Activity     *string `json:"activity"`
	FromPeriod   string  `json:"fromPeriod"`
	ToPeriod     string  `json:"toPeriod"`
	FromDate     string  `json:"fromDate"`
	ToDate       string  `json:"toDate"`
	PayType      *string `json:"payType"`
	Extras       string  `json:"extras"`
	Total        string  `json:"total"`
	MachineHours string  `json:"machineHours"`

	// PageNumber is the page within the chunk where the row was found.
	PageNumber int `json:"pageNumber"`

	// ID is a 1-based sequence number, unique within the chunk.
	ID int `json:"id"`
}

// LineItem is one invoiced product or service line.
type LineItem struct {
	ProductNumber string `json:"productNumber"`
	Description   string `json:"description"`
	Quantity      string `json:"quantity"`
	Unit          string `json:"unit"`
	UnitPrice     string `json:"unitPrice"`
	TotalPrice    string `json:"totalPrice"`
}

// InvoiceHeader holds the invoice identification block.
type InvoiceHeader struct {
	Number  *string `json:"number"`
	Date    *string `json:"date"`
	DueDate *string `json:"dueDate"`
	KID     string  `json:"kid"`
}

// Recipient holds the customer address block.
type Recipient struct {
	Name          *string `json:"name"`
	StreetAddress *string `json:"streetAddress"`
	PostalCode    *string `json:"postalCode"`
	City          *string `json:"city"`
}

// Reference holds the our/their reference block.
type Reference struct {
	OurReference   string `json:"ourReference"`
	TheirReference string `json:"theirReference"`
}

// Totals holds the invoice amount block. Amounts are decimal strings with a
// period separator, empty when not printed on the invoice.
type Totals struct {
	ExcludingMVA string `json:"excludingMva"`
	MVAAmount    string `json:"mvaAmount"`
	IncludingMVA string `json:"includingMva"`
}

// Sender holds the issuing company block.
type Sender struct {
	Name                 string `json:"name"`
	StreetAddress        string `json:"streetAddress"`
	OrgNumber            string `json:"orgNumber"`
	BusinessRegistration string `json:"businessRegistration"`
	EURegistration       string `json:"euRegistration"`
	MVARegistration      string `json:"mvaRegistration"`
	PostalCode           string `json:"postalCode"`
	City                 string `json:"city"`
	PhoneNumber          string `json:"phoneNumber"`
	Email                string `json:"email"`
	Website              string `json:"website"`
}

// InvoiceNumber returns the invoice number from the header block, or an empty
// string when the header or the number is absent.
func (i *Invoice) InvoiceNumber() string {
	if i == nil || i.Header == nil || i.Header.Number == nil {
		return ""
	}
	return *i.Header.Number
}
