// internal/common/errors/handler.go
package errors

// Logger is the subset of logger.Logger the handler needs.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// LoadErrorRecorder counts reported diagnostics.
type LoadErrorRecorder interface {
	RecordLoadError(source string, code string)
}

// DiagnosticHandler turns non-fatal load failures into log lines and metrics.
// Loading never aborts the process; callers report and carry on.
type DiagnosticHandler struct {
	logger   Logger
	recorder LoadErrorRecorder
}

func NewDiagnosticHandler(logger Logger, recorder LoadErrorRecorder) *DiagnosticHandler {
	return &DiagnosticHandler{logger: logger, recorder: recorder}
}

// Report logs err under source and returns its normalized form.
func (h *DiagnosticHandler) Report(source string, err error) *StandardError {
	if err == nil {
		return nil
	}
	stdErr := Normalize(err)

	if h.recorder != nil {
		h.recorder.RecordLoadError(source, string(stdErr.Code))
	}
	if h.logger != nil {
		fields := map[string]interface{}{
			"source":        source,
			"errorCode":     string(stdErr.Code),
			"message":       stdErr.Message,
			"details":       stdErr.Details,
			"retryable":     stdErr.Retryable,
			"errorCategory": GetErrorCategory(stdErr.Code),
		}
		for k, v := range stdErr.Metadata {
			if _, exists := fields[k]; !exists {
				fields[k] = v
			}
		}
		h.logger.Warn("Load diagnostic", fields)
	}
	return stdErr
}
