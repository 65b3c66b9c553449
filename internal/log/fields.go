package log

// Имена полей структурированного лога
const (
	FieldComponent  = "component"
	FieldTool       = "tool"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldCacheHit   = "cache_hit"
	FieldPeriods    = "periods"
	FieldError      = "error"
	FieldAddr       = "addr"
)

// Имена компонентов
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentTools   = "tools"
	ComponentCache   = "cache"
	ComponentTracing = "tracing"
	ComponentCLI     = "cli"
)
