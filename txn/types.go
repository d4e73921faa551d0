package txn

import "github.com/wippyai/avm-codec/types"

// Type is the wire value of the "type" field.
type Type string

const (
	TypePayment         Type = "pay"
	TypeKeyRegistration Type = "keyreg"
	TypeAssetConfig     Type = "acfg"
	TypeAssetTransfer   Type = "axfer"
	TypeAssetFreeze     Type = "afrz"
	TypeAppCall         Type = "appl"
	TypeHeartbeat       Type = "hb"
)

// OnComplete is the action an application call performs after the program runs.
type OnComplete uint64

const (
	NoOp OnComplete = iota
	OptIn
	CloseOut
	ClearState
	UpdateApplication
	DeleteApplication
)

func (o OnComplete) String() string {
	switch o {
	case NoOp:
		return "NoOp"
	case OptIn:
		return "OptIn"
	case CloseOut:
		return "CloseOut"
	case ClearState:
		return "ClearState"
	case UpdateApplication:
		return "UpdateApplication"
	case DeleteApplication:
		return "DeleteApplication"
	}
	return "OnComplete(unknown)"
}

// Transaction holds the common header and at most one type-specific group.
type Transaction struct {
	Type        Type
	Sender      types.Address
	Fee         uint64
	FirstValid  uint64
	LastValid   uint64
	GenesisHash types.Digest
	GenesisID   string
	Note        []byte
	RekeyTo     types.Address
	Lease       [32]byte
	Group       types.Digest

	Payment         *PaymentFields
	AssetTransfer   *AssetTransferFields
	AssetConfig     *AssetConfigFields
	AssetFreeze     *AssetFreezeFields
	KeyRegistration *KeyRegistrationFields
	AppCall         *AppCallFields
	Heartbeat       *HeartbeatFields
}

type PaymentFields struct {
	Receiver         types.Address
	Amount           uint64
	CloseRemainderTo types.Address
}

type AssetTransferFields struct {
	AssetID          uint64
	Amount           uint64
	Receiver         types.Address
	AssetSender      types.Address
	CloseRemainderTo types.Address
}

// AssetConfigFields creates an asset when AssetID is 0, otherwise
// reconfigures or (with nil Params) destroys it.
type AssetConfigFields struct {
	AssetID uint64
	Params  *AssetParams
}

type AssetParams struct {
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	UnitName      string
	AssetName     string
	URL           string
	MetadataHash  [32]byte
	Manager       types.Address
	Reserve       types.Address
	Freeze        types.Address
	Clawback      types.Address
}

type AssetFreezeFields struct {
	AssetID      uint64
	FreezeTarget types.Address
	Frozen       bool
}

// KeyRegistrationFields with no keys set takes the account offline.
type KeyRegistrationFields struct {
	VoteKey          [32]byte
	SelectionKey     [32]byte
	StateProofKey    [64]byte
	VoteFirst        uint64
	VoteLast         uint64
	VoteKeyDilution  uint64
	NonParticipation bool
}

// Online reports whether the registration carries participation keys.
func (k *KeyRegistrationFields) Online() bool {
	return k.VoteKey != [32]byte{} || k.SelectionKey != [32]byte{}
}

type StateSchema struct {
	NumUints      uint64
	NumByteSlices uint64
}

// BoxReference names a box. Index 0 is the called application, otherwise
// it is the 1-based position in AppCallFields.Apps.
type BoxReference struct {
	Index uint64
	Name  []byte
}

type AppCallFields struct {
	AppID             uint64
	OnComplete        OnComplete
	ApprovalProgram   []byte
	ClearStateProgram []byte
	GlobalStateSchema *StateSchema
	LocalStateSchema  *StateSchema
	ExtraProgramPages uint32
	Args              [][]byte
	Accounts          []types.Address
	Apps              []uint64
	Assets            []uint64
	Boxes             []BoxReference
}

type HeartbeatProof struct {
	Sig    [64]byte
	PK     [32]byte
	PK2    [32]byte
	PK1Sig [64]byte
	PK2Sig [64]byte
}

// HeartbeatFields are carried nested under "hb" rather than flattened.
type HeartbeatFields struct {
	Address     types.Address
	Proof       HeartbeatProof
	Seed        []byte
	VoteID      [32]byte
	KeyDilution uint64
}

// SignedTransaction pairs a transaction with its authorization. At most
// one of Signature, Multisig and LogicSig is set.
type SignedTransaction struct {
	Transaction Transaction
	Signature   []byte
	Multisig    *MultisigSignature
	LogicSig    *LogicSignature
	// AuthAddress is the signer when Sender has been rekeyed.
	AuthAddress types.Address
}

type MultisigSubsignature struct {
	PublicKey [32]byte
	// Signature is empty for participants that have not signed.
	Signature []byte
}

type MultisigSignature struct {
	Version       uint32
	Threshold     uint32
	Subsignatures []MultisigSubsignature
}

// LogicSignature authorizes a transaction with a program. A delegated
// logic signature also carries one of Signature, Multisig or
// LogicMultisig.
type LogicSignature struct {
	Logic         []byte
	Args          [][]byte
	Signature     []byte
	Multisig      *MultisigSignature
	LogicMultisig *MultisigSignature
}
