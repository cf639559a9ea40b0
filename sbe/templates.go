package sbe

// Template ids dispatched to a concrete message type (spec.md §3.4, §6.2).
// Any other template id is skipped by advancing past its blockLength.
const (
	TemplateSequenceReset                    = 2
	TemplateSecurityStatus                   = 9
	TemplateSecurityDefinitionUpdateReport   = 10
	TemplateTradingSessionStatus             = 11
	TemplateOrderUpdate                      = 15
	TemplateOrderExecution                   = 16
	TemplateOrderBookSnapshot                = 17
	TemplateSecurityDefinition               = 18
)

// templateNames is used for diagnostics only; dispatch itself switches on
// the numeric id in packet.go.
var templateNames = map[uint16]string{
	TemplateSequenceReset:                  "SequenceReset",
	TemplateSecurityStatus:                 "SecurityStatus",
	TemplateSecurityDefinitionUpdateReport: "SecurityDefinitionUpdateReport",
	TemplateTradingSessionStatus:           "TradingSessionStatus",
	TemplateOrderUpdate:                    "OrderUpdate",
	TemplateOrderExecution:                 "OrderExecution",
	TemplateOrderBookSnapshot:              "OrderBookSnapshot",
	TemplateSecurityDefinition:             "SecurityDefinition",
}

// TemplateName reports the schema name for a template id, or "Unknown" for
// anything not dispatched.
func TemplateName(templateID uint16) string {
	if name, ok := templateNames[templateID]; ok {
		return name
	}

	return "Unknown"
}
