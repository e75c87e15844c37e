package auditlog

// auditedFields declares, per module, which fields are subject to audit
// capture. This is configuration: services snapshot exactly these keys
// before and after a mutation and the recorder diffs them.
var auditedFields = map[string][]string{
	"Order":   {"status", "address", "phone", "email", "customerName"},
	"Product": {"name", "price", "basePrice", "barcode"},
}

// AuditedFields returns the declared audited field names for a module.
// Modules without a declaration produce no audit entries.
func AuditedFields(module string) []string {
	return auditedFields[module]
}
