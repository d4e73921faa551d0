package txn

import (
	"github.com/wippyai/avm-codec/errors"
	"go.uber.org/multierr"
)

// Protocol limits checked by Validate.
const (
	MaxAssetDecimals       = 19
	MaxAssetUnitNameLength = 8
	MaxAssetNameLength     = 32
	MaxAssetURLLength      = 96
	MaxExtraProgramPages   = 3
	ProgramPageSize        = 2048
	MaxGlobalStateKeys     = 64
	MaxLocalStateKeys      = 16
	MaxAppArgs             = 16
	MaxArgsSize            = 2048
	MaxAccountReferences   = 4
	MaxAppReferences       = 8
	MaxAssetReferences     = 8
	MaxBoxReferences       = 8
	MaxOverallReferences   = 8
)

// Validate checks tx against the protocol's structural rules. Every
// violation is reported; use multierr.Errors to list them.
func Validate(tx *Transaction) error {
	if tx == nil {
		return errors.Validation(nil, "transaction is nil")
	}

	set := tx.typeFields()
	if len(set) > 1 {
		return errors.Validation(nil, "Multiple transaction type specific fields set")
	}

	var err error
	switch {
	case tx.Type == "":
		err = multierr.Append(err, errors.Validation([]string{"type"}, "transaction type is required"))
	case !knownType(tx.Type):
		err = multierr.Append(err, errors.Validation([]string{"type"}, "unknown transaction type %q", tx.Type))
	case len(set) == 1 && set[0] != tx.Type:
		err = multierr.Append(err, errors.Validation([]string{"type"},
			"type %q does not match %s fields", tx.Type, set[0]))
	}

	switch {
	case tx.AssetTransfer != nil:
		err = multierr.Append(err, validateAssetTransfer(tx.AssetTransfer))
	case tx.AssetConfig != nil:
		err = multierr.Append(err, validateAssetConfig(tx.AssetConfig))
	case tx.AssetFreeze != nil:
		err = multierr.Append(err, validateAssetFreeze(tx.AssetFreeze))
	case tx.KeyRegistration != nil:
		err = multierr.Append(err, validateKeyRegistration(tx.KeyRegistration))
	case tx.AppCall != nil:
		err = multierr.Append(err, validateAppCall(tx.AppCall))
	}
	return err
}

func (tx *Transaction) typeFields() []Type {
	var set []Type
	if tx.Payment != nil {
		set = append(set, TypePayment)
	}
	if tx.AssetTransfer != nil {
		set = append(set, TypeAssetTransfer)
	}
	if tx.AssetConfig != nil {
		set = append(set, TypeAssetConfig)
	}
	if tx.AssetFreeze != nil {
		set = append(set, TypeAssetFreeze)
	}
	if tx.KeyRegistration != nil {
		set = append(set, TypeKeyRegistration)
	}
	if tx.AppCall != nil {
		set = append(set, TypeAppCall)
	}
	if tx.Heartbeat != nil {
		set = append(set, TypeHeartbeat)
	}
	return set
}

func knownType(t Type) bool {
	switch t {
	case TypePayment, TypeKeyRegistration, TypeAssetConfig, TypeAssetTransfer,
		TypeAssetFreeze, TypeAppCall, TypeHeartbeat:
		return true
	}
	return false
}

func validateAssetTransfer(a *AssetTransferFields) error {
	if a.AssetID == 0 {
		return errors.Validation([]string{"xaid"}, "Asset ID is required")
	}
	return nil
}

func validateAssetFreeze(a *AssetFreezeFields) error {
	var err error
	if a.AssetID == 0 {
		err = multierr.Append(err, errors.Validation([]string{"faid"}, "Asset ID is required"))
	}
	if a.FreezeTarget.IsZero() {
		err = multierr.Append(err, errors.Validation([]string{"fadd"}, "Freeze target is required"))
	}
	return err
}

func validateKeyRegistration(k *KeyRegistrationFields) error {
	if !k.Online() {
		if k.StateProofKey != [64]byte{} || k.VoteFirst != 0 || k.VoteLast != 0 || k.VoteKeyDilution != 0 {
			return errors.Validation(nil, "offline key registration cannot carry participation fields")
		}
		return nil
	}

	var err error
	if k.NonParticipation {
		err = multierr.Append(err, errors.Validation([]string{"nonpart"},
			"non-participating registration cannot carry keys"))
	}
	if k.VoteKey == [32]byte{} {
		err = multierr.Append(err, errors.Validation([]string{"votekey"}, "Vote key is required"))
	}
	if k.SelectionKey == [32]byte{} {
		err = multierr.Append(err, errors.Validation([]string{"selkey"}, "Selection key is required"))
	}
	if k.VoteLast < k.VoteFirst {
		err = multierr.Append(err, errors.Validation([]string{"votelst"},
			"Vote last %d is before vote first %d", k.VoteLast, k.VoteFirst))
	}
	if k.VoteKeyDilution == 0 {
		err = multierr.Append(err, errors.Validation([]string{"votekd"}, "Vote key dilution is required"))
	}
	return err
}

func validateAssetConfig(a *AssetConfigFields) error {
	if a.AssetID == 0 {
		return validateAssetCreate(a.Params)
	}
	if a.Params == nil {
		// destroy
		return nil
	}

	var err error
	p := a.Params
	immutable := func(set bool, tag, name string) {
		if set {
			err = multierr.Append(err, errors.Validation([]string{"apar", tag},
				"%s cannot be changed after creation", name))
		}
	}
	immutable(p.Total != 0, "t", "Total")
	immutable(p.Decimals != 0, "dc", "Decimals")
	immutable(p.DefaultFrozen, "df", "Default frozen")
	immutable(p.AssetName != "", "an", "Asset name")
	immutable(p.UnitName != "", "un", "Unit name")
	immutable(p.URL != "", "au", "Url")
	immutable(p.MetadataHash != [32]byte{}, "am", "Metadata hash")
	return err
}

func validateAssetCreate(p *AssetParams) error {
	if p == nil {
		return errors.Validation([]string{"apar", "t"}, "Total is required")
	}

	var err error
	tooLong := func(actual, max int, tag, name, unit string) {
		if actual > max {
			err = multierr.Append(err, errors.Validation([]string{"apar", tag},
				"%s cannot exceed %d %s, got %d", name, max, unit, actual))
		}
	}
	tooLong(int(p.Decimals), MaxAssetDecimals, "dc", "Decimals", "decimal places")
	tooLong(len(p.UnitName), MaxAssetUnitNameLength, "un", "Unit name", "bytes")
	tooLong(len(p.AssetName), MaxAssetNameLength, "an", "Asset name", "bytes")
	tooLong(len(p.URL), MaxAssetURLLength, "au", "Url", "bytes")
	return err
}

func validateAppCall(a *AppCallFields) error {
	var err error
	if a.AppID == 0 {
		err = validateAppCreate(a)
	} else {
		err = validateAppOperation(a)
	}
	return multierr.Append(err, validateAppReferences(a))
}

func validateAppCreate(a *AppCallFields) error {
	var err error
	if len(a.ApprovalProgram) == 0 {
		err = multierr.Append(err, errors.Validation([]string{"apap"}, "Approval program is required"))
	}
	if len(a.ClearStateProgram) == 0 {
		err = multierr.Append(err, errors.Validation([]string{"apsu"}, "Clear state program is required"))
	}
	if a.ExtraProgramPages > MaxExtraProgramPages {
		err = multierr.Append(err, errors.Validation([]string{"apep"},
			"Extra program pages cannot exceed %d, got %d", MaxExtraProgramPages, a.ExtraProgramPages))
	}

	maxSize := ProgramPageSize * (1 + int(a.ExtraProgramPages))
	if n := len(a.ApprovalProgram); n > maxSize {
		err = multierr.Append(err, errors.Validation([]string{"apap"},
			"Approval program cannot exceed %d bytes, got %d", maxSize, n))
	}
	if n := len(a.ClearStateProgram); n > maxSize {
		err = multierr.Append(err, errors.Validation([]string{"apsu"},
			"Clear state program cannot exceed %d bytes, got %d", maxSize, n))
	}
	if n := len(a.ApprovalProgram) + len(a.ClearStateProgram); n > maxSize {
		err = multierr.Append(err, errors.Validation(nil,
			"Total program size cannot exceed %d bytes, got %d", maxSize, n))
	}

	if s := a.GlobalStateSchema; s != nil && s.NumUints+s.NumByteSlices > MaxGlobalStateKeys {
		err = multierr.Append(err, errors.Validation([]string{"apgs"},
			"Global state schema cannot exceed %d keys, got %d", MaxGlobalStateKeys, s.NumUints+s.NumByteSlices))
	}
	if s := a.LocalStateSchema; s != nil && s.NumUints+s.NumByteSlices > MaxLocalStateKeys {
		err = multierr.Append(err, errors.Validation([]string{"apls"},
			"Local state schema cannot exceed %d keys, got %d", MaxLocalStateKeys, s.NumUints+s.NumByteSlices))
	}
	return err
}

func validateAppOperation(a *AppCallFields) error {
	var err error
	if a.OnComplete == UpdateApplication {
		if len(a.ApprovalProgram) == 0 {
			err = multierr.Append(err, errors.Validation([]string{"apap"}, "Approval program is required"))
		}
		if len(a.ClearStateProgram) == 0 {
			err = multierr.Append(err, errors.Validation([]string{"apsu"}, "Clear state program is required"))
		}
	}
	if a.GlobalStateSchema != nil && *a.GlobalStateSchema != (StateSchema{}) {
		err = multierr.Append(err, errors.Validation([]string{"apgs"},
			"Global state schema cannot be changed after creation"))
	}
	if a.LocalStateSchema != nil && *a.LocalStateSchema != (StateSchema{}) {
		err = multierr.Append(err, errors.Validation([]string{"apls"},
			"Local state schema cannot be changed after creation"))
	}
	if a.ExtraProgramPages != 0 {
		err = multierr.Append(err, errors.Validation([]string{"apep"},
			"Extra program pages cannot be changed after creation"))
	}
	return err
}

func validateAppReferences(a *AppCallFields) error {
	var err error
	tooMany := func(actual, max int, tag, name, unit string) {
		if actual > max {
			err = multierr.Append(err, errors.Validation([]string{tag},
				"%s cannot exceed %d %s, got %d", name, max, unit, actual))
		}
	}

	tooMany(len(a.Args), MaxAppArgs, "apaa", "Args", "args")
	size := 0
	for _, arg := range a.Args {
		size += len(arg)
	}
	tooMany(size, MaxArgsSize, "apaa", "Args total size", "bytes")

	tooMany(len(a.Accounts), MaxAccountReferences, "apat", "Account references", "refs")
	tooMany(len(a.Apps), MaxAppReferences, "apfa", "App references", "refs")
	tooMany(len(a.Assets), MaxAssetReferences, "apas", "Asset references", "refs")
	tooMany(len(a.Boxes), MaxBoxReferences, "apbx", "Box references", "refs")

	for _, b := range a.Boxes {
		if b.Index > uint64(len(a.Apps)) {
			err = multierr.Append(err, errors.Validation([]string{"apbx"},
				"Box reference index %d is not in app references", b.Index))
		}
	}

	if total := len(a.Accounts) + len(a.Apps) + len(a.Assets) + len(a.Boxes); total > MaxOverallReferences {
		err = multierr.Append(err, errors.Validation(nil,
			"Total references cannot exceed %d refs, got %d", MaxOverallReferences, total))
	}
	return err
}
