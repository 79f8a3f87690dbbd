package dynamo

// DynamoDB attribute and index names for the registrations table.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldUserID     = "user_id"
	fieldEmail      = "email"
	fieldTaxpayerID = "taxpayer_id"

	indexEmail      = "email-index"
	indexTaxpayerID = "taxpayer_id-index"
)
