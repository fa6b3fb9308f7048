package validate

// Rule sets shared by the HTTP handlers. Create rules mark fields required;
// update rules validate the same constraints only when a field is present.

var RegisterRules = []Rule{
	{Field: "email", Required: true, Kind: Email},
	{Field: "password", Required: true, Kind: String, MinLen: 6},
	{Field: "name", Required: true, Kind: String, MinLen: 2, MaxLen: 50},
}

var LoginRules = []Rule{
	{Field: "email", Required: true, Kind: Email},
	{Field: "password", Required: true, Kind: String, MinLen: 6},
}

var ProfileRules = []Rule{
	{Field: "name", Kind: String, MinLen: 2, MaxLen: 50},
	{Field: "email", Kind: Email},
}

var PasswordChangeRules = []Rule{
	{Field: "currentPassword", Required: true, Kind: String, MinLen: 6},
	{Field: "newPassword", Required: true, Kind: String, MinLen: 6},
}

var PaymentCreateRules = []Rule{
	{Field: "type", Required: true, Enum: []string{"to_pay", "to_receive"}},
	{Field: "personName", Required: true, Kind: String, MinLen: 2, MaxLen: 100},
	{Field: "amount", Required: true, Kind: Number, Min: Min(0)},
	{Field: "dueDate", Required: true, Kind: Date},
	{Field: "description", Kind: String, MaxLen: 500},
}

var PaymentUpdateRules = []Rule{
	{Field: "type", Enum: []string{"to_pay", "to_receive"}},
	{Field: "personName", Kind: String, MinLen: 2, MaxLen: 100},
	{Field: "amount", Kind: Number, Min: Min(0)},
	{Field: "dueDate", Kind: Date},
	{Field: "description", Kind: String, MaxLen: 500},
}
