package firetruck

// Logger receives structured diagnostics. Each call carries a message and a
// single named field; the field value is usually a small map.
//
// The same interface is accepted by the sinks package and implemented by the
// zap adapter in the CLI, so one logger can be threaded through all of them.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Discard is a Logger that drops every record.
var Discard Logger = discard{}

type discard struct{}

func (discard) InfoObj(string, string, interface{})  {}
func (discard) DebugObj(string, string, interface{}) {}
func (discard) WarnObj(string, string, interface{})  {}
func (discard) ErrorObj(string, string, interface{}) {}

// OrDiscard returns log, or Discard when log is nil.
func OrDiscard(log Logger) Logger {
	if log == nil {
		return Discard
	}
	return log
}
