package domain

// DocumentType classifies the kind of source document an OCR text came from.
type DocumentType string

const (
	DocumentTypeUnknown    DocumentType = "unknown"
	DocumentTypeTaxInvoice DocumentType = "tax_invoice"
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeReceipt    DocumentType = "receipt"
)

// ReferenceType classifies a free-form reference number found on a document.
type ReferenceType string

const (
	ReferenceTypeUnknown      ReferenceType = "unknown"
	ReferenceTypeOrderID      ReferenceType = "order_id"
	ReferenceTypeBookingID    ReferenceType = "booking_id"
	ReferenceTypeConfirmation ReferenceType = "confirmation_number"
	ReferenceTypeTransaction  ReferenceType = "transaction_id"
)

// OutputFormat is the export format for batch extraction results.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatXLSX OutputFormat = "xlsx"
)

// AllowedOutputFormats maps format strings to OutputFormat.
var AllowedOutputFormats = map[string]OutputFormat{
	"json": OutputFormatJSON,
	"csv":  OutputFormatCSV,
	"xlsx": OutputFormatXLSX,
}
