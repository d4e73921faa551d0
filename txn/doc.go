// Package txn encodes, decodes and identifies Algorand transactions.
//
// A Transaction carries the common header and at most one type-specific
// field group. Groups other than Heartbeat are flattened into the
// top-level canonical map; asset parameters nest under "apar".
//
//	tx := &txn.Transaction{
//		Type:       txn.TypePayment,
//		Sender:     sender,
//		FirstValid: 1000,
//		LastValid:  2000,
//		Payment:    &txn.PaymentFields{Receiver: receiver, Amount: 5},
//	}
//	id, err := txn.ID(tx)
//
// Encode validates before writing and prepends the "TX" domain prefix;
// EncodeRaw leaves it off. Decode accepts either form. Validate returns
// every violation it finds, combined with go.uber.org/multierr.
//
// SignedTransaction nests a transaction under "txn" next to exactly one of
// a signature, a multisig or a logic signature. EncodeSigned writes it
// without a domain prefix; the package never produces signatures itself.
package txn
