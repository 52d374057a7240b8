package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldEntryID   = "entry_id"
	FieldUser      = "user"
	FieldDate      = "date"
	FieldKey       = "key"
	FieldAmount    = "amount_paise"
	FieldCalories  = "calories"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentEngine     = "engine"
	ComponentStorage    = "storage"
	ComponentMeals      = "meals"
	ComponentWallet     = "wallet"
	ComponentSettlement = "settlement"
	ComponentDrinks     = "drinks"
	ComponentPrefs      = "prefs"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpEdit    = "edit"
	OpDelete  = "delete"
	OpList    = "list"
	OpToggle  = "toggle"
	OpReplay  = "replay"
	OpMigrate = "migrate"
	OpOpen    = "open"
	OpClose   = "close"
)
