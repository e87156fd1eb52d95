package interfaces

import "context"

// IAuditSink records settlement lifecycle events for reconciliation and
// security review. Record is fire-and-forget: implementations swallow their
// own failures (logging them) so a broken sink never blocks settlement.

type IAuditSink interface {
	Record(ctx context.Context, eventKind, quotationID, paymentID, details string)
}
