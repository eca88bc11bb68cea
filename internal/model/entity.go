package model

// Entity binds a target schema to the import behaviour that is specific to
// one kind of record: which sheet to pick from a workbook, which enrichment
// chain fills derivable fields, and which fields identify a logical record.
type Entity struct {
	Key              string       `json:"key"`
	Label            string       `json:"label"`
	SheetKeywords    []string     `json:"sheetKeywords"` // case-insensitive substring match against sheet names
	Schema           TargetSchema `json:"schema"`
	EnricherKey      string       `json:"enricherKey"`
	DefaultKeyFields []string     `json:"defaultKeyFields"`
}

// LedgerEntries is the built-in entity for accounting line items.
var LedgerEntries = Entity{
	Key:           "ledger-entries",
	Label:         "Ledger Entries",
	SheetKeywords: []string{"ledger", "entries", "items", "buchung"},
	Schema: TargetSchema{
		Fields: []TargetFieldSchema{
			{Key: "VendorId", Description: "Vendor or counterparty identifier", Type: FieldString, Required: true},
			{Key: "DocumentId", Description: "Document number", Type: FieldString, Required: true, Derivable: true},
			{Key: "LineId", Description: "Line sequence within the document", Type: FieldNumber, Required: true, Derivable: true},
			{Key: "FiscalYear", Description: "Fiscal year", Type: FieldNumber, Required: true, Derivable: true},
			{Key: "Period", Description: "Accounting period YYYY-MM", Type: FieldString, Required: false},
			{Key: "PostingDate", Description: "Posting date YYYY-MM-DD", Type: FieldDate, Required: false},
			{Key: "Amount", Description: "Amount in document currency", Type: FieldNumber, Required: true},
			{Key: "Currency", Description: "ISO currency code", Type: FieldString, Required: true},
			{Key: "Description", Description: "Free-text line description", Type: FieldString, Required: false},
		},
	},
	EnricherKey:      "ledger-entries",
	DefaultKeyFields: []string{"DocumentId", "LineId"},
}

// Entities lists the registered import targets.
var Entities = map[string]Entity{
	LedgerEntries.Key: LedgerEntries,
}

// EntityByKey looks up a registered entity.
func EntityByKey(key string) (Entity, bool) {
	e, ok := Entities[key]
	return e, ok
}
