package analyzer

import (
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ProtocolDiagnostics converts engine diagnostics for publishing. The result
// is never nil so clients clear stale diagnostics.
func ProtocolDiagnostics(diags []pordosol.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range:    d.Range,
			Severity: ptr(protocol.DiagnosticSeverity(d.Severity)),
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptr(pordosol.Source),
			Message:  d.Message,
		})
	}
	return out
}

func diagnosticCode(d protocol.Diagnostic) string {
	if d.Code == nil {
		return ""
	}
	code, _ := d.Code.Value.(string)
	return code
}
