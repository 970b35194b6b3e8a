package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Broadcast and connection field keys.
const (
	FieldClientID          = "client_id"
	FieldLastEventID       = "last_event_id"
	FieldAttempted         = "attempted"
	FieldFailed            = "failed"
	FieldReconnectInterval = "reconnect_interval"
	FieldRemoteAddr        = "remote_addr"
	FieldTotalClients      = "total_clients"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("op", "broadcast", "attempted", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// ClientFields creates fields identifying a single streaming client.
func ClientFields(clientID string, op string) map[string]interface{} {
	return map[string]interface{}{
		FieldClientID:  clientID,
		FieldOperation: op,
	}
}

// RoundFields creates fields describing a finished broadcast round.
func RoundFields(op string, attempted, failed int, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldAttempted: attempted,
		FieldFailed:    failed,
		FieldDuration:  d.Milliseconds(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldError] = err.Error()
	return fields
}
