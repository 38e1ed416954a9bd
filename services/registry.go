package services

// Registry bundles the service surface the boundary layer consumes. The
// wire-level mapping lives outside this module; everything here is
// transport-agnostic.
type Registry struct {
	Access        IAccessControl
	Conversations IConversationService
	Messages      IMessageService
	Receipts      IReadReceiptService
}
