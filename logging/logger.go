package logging

// Logger provides structured logging. The cosmology code only ever talks to
// this interface, so it stays silent unless a caller hands it a real one.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates an error field with the key "error".
func Err(err error) Field { return Field{Key: "error", Value: err} }

func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Nop discards everything.
type Nop struct{}

var _ Logger = Nop{}

func (Nop) Debug(msg string, fields ...Field) {}
func (Nop) Info(msg string, fields ...Field)  {}
func (Nop) Warn(msg string, fields ...Field)  {}
func (Nop) Error(msg string, fields ...Field) {}
