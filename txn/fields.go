package txn

import (
	"github.com/wippyai/avm-codec/model"
	"github.com/wippyai/avm-codec/types"
)

var paymentModel = model.New(
	model.Addr("Receiver", "rcv", func(p *PaymentFields) *types.Address { return &p.Receiver }),
	model.Uint64("Amount", "amt", func(p *PaymentFields) *uint64 { return &p.Amount }),
	model.Addr("CloseRemainderTo", "close", func(p *PaymentFields) *types.Address { return &p.CloseRemainderTo }),
)

var assetTransferModel = model.New(
	model.Uint64("AssetID", "xaid", func(a *AssetTransferFields) *uint64 { return &a.AssetID }),
	model.Uint64("Amount", "aamt", func(a *AssetTransferFields) *uint64 { return &a.Amount }),
	model.Addr("Receiver", "arcv", func(a *AssetTransferFields) *types.Address { return &a.Receiver }),
	model.Addr("AssetSender", "asnd", func(a *AssetTransferFields) *types.Address { return &a.AssetSender }),
	model.Addr("CloseRemainderTo", "aclose", func(a *AssetTransferFields) *types.Address { return &a.CloseRemainderTo }),
)

var assetParamsModel = model.New(
	model.Uint64("Total", "t", func(p *AssetParams) *uint64 { return &p.Total }),
	model.Uint32("Decimals", "dc", func(p *AssetParams) *uint32 { return &p.Decimals }),
	model.Bool("DefaultFrozen", "df", func(p *AssetParams) *bool { return &p.DefaultFrozen }),
	model.String("UnitName", "un", func(p *AssetParams) *string { return &p.UnitName }),
	model.String("AssetName", "an", func(p *AssetParams) *string { return &p.AssetName }),
	model.String("URL", "au", func(p *AssetParams) *string { return &p.URL }),
	model.Fixed32("MetadataHash", "am", func(p *AssetParams) *[32]byte { return &p.MetadataHash }),
	model.Addr("Manager", "m", func(p *AssetParams) *types.Address { return &p.Manager }),
	model.Addr("Reserve", "r", func(p *AssetParams) *types.Address { return &p.Reserve }),
	model.Addr("Freeze", "f", func(p *AssetParams) *types.Address { return &p.Freeze }),
	model.Addr("Clawback", "c", func(p *AssetParams) *types.Address { return &p.Clawback }),
)

var assetConfigModel = model.New(
	model.Uint64("AssetID", "caid", func(a *AssetConfigFields) *uint64 { return &a.AssetID }),
	model.ObjectPtr("Params", "apar", func(a *AssetConfigFields) **AssetParams { return &a.Params }, assetParamsModel),
)

var assetFreezeModel = model.New(
	model.Uint64("AssetID", "faid", func(a *AssetFreezeFields) *uint64 { return &a.AssetID }),
	model.Addr("FreezeTarget", "fadd", func(a *AssetFreezeFields) *types.Address { return &a.FreezeTarget }),
	model.Bool("Frozen", "afrz", func(a *AssetFreezeFields) *bool { return &a.Frozen }),
)

var keyRegistrationModel = model.New(
	model.Fixed32("VoteKey", "votekey", func(k *KeyRegistrationFields) *[32]byte { return &k.VoteKey }),
	model.Fixed32("SelectionKey", "selkey", func(k *KeyRegistrationFields) *[32]byte { return &k.SelectionKey }),
	model.Fixed64("StateProofKey", "sprfkey", func(k *KeyRegistrationFields) *[64]byte { return &k.StateProofKey }),
	model.Uint64("VoteFirst", "votefst", func(k *KeyRegistrationFields) *uint64 { return &k.VoteFirst }),
	model.Uint64("VoteLast", "votelst", func(k *KeyRegistrationFields) *uint64 { return &k.VoteLast }),
	model.Uint64("VoteKeyDilution", "votekd", func(k *KeyRegistrationFields) *uint64 { return &k.VoteKeyDilution }),
	model.Bool("NonParticipation", "nonpart", func(k *KeyRegistrationFields) *bool { return &k.NonParticipation }),
)

var stateSchemaModel = model.New(
	model.Uint64("NumUints", "nui", func(s *StateSchema) *uint64 { return &s.NumUints }),
	model.Uint64("NumByteSlices", "nbs", func(s *StateSchema) *uint64 { return &s.NumByteSlices }),
)

var boxReferenceModel = model.New(
	model.Uint64("Index", "i", func(b *BoxReference) *uint64 { return &b.Index }),
	model.Bytes("Name", "n", func(b *BoxReference) *[]byte { return &b.Name }),
)

var appCallModel = model.New(
	model.Uint64("AppID", "apid", func(a *AppCallFields) *uint64 { return &a.AppID }),
	model.Uint64("OnComplete", "apan", func(a *AppCallFields) *uint64 { return (*uint64)(&a.OnComplete) }),
	model.Bytes("ApprovalProgram", "apap", func(a *AppCallFields) *[]byte { return &a.ApprovalProgram }),
	model.Bytes("ClearStateProgram", "apsu", func(a *AppCallFields) *[]byte { return &a.ClearStateProgram }),
	model.ObjectPtr("GlobalStateSchema", "apgs", func(a *AppCallFields) **StateSchema { return &a.GlobalStateSchema }, stateSchemaModel),
	model.ObjectPtr("LocalStateSchema", "apls", func(a *AppCallFields) **StateSchema { return &a.LocalStateSchema }, stateSchemaModel),
	model.Uint32("ExtraProgramPages", "apep", func(a *AppCallFields) *uint32 { return &a.ExtraProgramPages }),
	model.BytesList("Args", "apaa", func(a *AppCallFields) *[][]byte { return &a.Args }),
	model.AddressList("Accounts", "apat", func(a *AppCallFields) *[]types.Address { return &a.Accounts }),
	model.Uint64List("Apps", "apfa", func(a *AppCallFields) *[]uint64 { return &a.Apps }),
	model.Uint64List("Assets", "apas", func(a *AppCallFields) *[]uint64 { return &a.Assets }),
	model.ObjectList("Boxes", "apbx", func(a *AppCallFields) *[]BoxReference { return &a.Boxes }, boxReferenceModel),
)

var heartbeatProofModel = model.New(
	model.Fixed64("Sig", "s", func(p *HeartbeatProof) *[64]byte { return &p.Sig }),
	model.Fixed32("PK", "p", func(p *HeartbeatProof) *[32]byte { return &p.PK }),
	model.Fixed32("PK2", "p2", func(p *HeartbeatProof) *[32]byte { return &p.PK2 }),
	model.Fixed64("PK1Sig", "p1s", func(p *HeartbeatProof) *[64]byte { return &p.PK1Sig }),
	model.Fixed64("PK2Sig", "p2s", func(p *HeartbeatProof) *[64]byte { return &p.PK2Sig }),
)

var heartbeatModel = model.New(
	model.Addr("Address", "a", func(h *HeartbeatFields) *types.Address { return &h.Address }),
	model.Object("Proof", "prf", func(h *HeartbeatFields) *HeartbeatProof { return &h.Proof }, heartbeatProofModel),
	model.Bytes("Seed", "sd", func(h *HeartbeatFields) *[]byte { return &h.Seed }),
	model.Fixed32("VoteID", "vid", func(h *HeartbeatFields) *[32]byte { return &h.VoteID }),
	model.Uint64("KeyDilution", "kd", func(h *HeartbeatFields) *uint64 { return &h.KeyDilution }),
)

var transactionModel = model.New(
	model.String("Type", "type", func(t *Transaction) *string { return (*string)(&t.Type) }),
	model.Addr("Sender", "snd", func(t *Transaction) *types.Address { return &t.Sender }),
	model.Uint64("Fee", "fee", func(t *Transaction) *uint64 { return &t.Fee }),
	model.Uint64("FirstValid", "fv", func(t *Transaction) *uint64 { return &t.FirstValid }),
	model.Uint64("LastValid", "lv", func(t *Transaction) *uint64 { return &t.LastValid }),
	model.Fixed32("GenesisHash", "gh", func(t *Transaction) *[32]byte { return (*[32]byte)(&t.GenesisHash) }),
	model.String("GenesisID", "gen", func(t *Transaction) *string { return &t.GenesisID }),
	model.Bytes("Note", "note", func(t *Transaction) *[]byte { return &t.Note }),
	model.Addr("RekeyTo", "rekey", func(t *Transaction) *types.Address { return &t.RekeyTo }),
	model.Fixed32("Lease", "lx", func(t *Transaction) *[32]byte { return &t.Lease }),
	model.Fixed32("Group", "grp", func(t *Transaction) *[32]byte { return (*[32]byte)(&t.Group) }),

	model.ObjectPtr("Payment", "", func(t *Transaction) **PaymentFields { return &t.Payment }, paymentModel).Flat(),
	model.ObjectPtr("AssetTransfer", "", func(t *Transaction) **AssetTransferFields { return &t.AssetTransfer }, assetTransferModel).Flat(),
	model.ObjectPtr("AssetFreeze", "", func(t *Transaction) **AssetFreezeFields { return &t.AssetFreeze }, assetFreezeModel).Flat(),
	model.ObjectPtr("KeyRegistration", "", func(t *Transaction) **KeyRegistrationFields { return &t.KeyRegistration }, keyRegistrationModel).Flat(),
	model.ObjectPtr("AssetConfig", "", func(t *Transaction) **AssetConfigFields { return &t.AssetConfig }, assetConfigModel).Flat(),
	model.ObjectPtr("Heartbeat", "hb", func(t *Transaction) **HeartbeatFields { return &t.Heartbeat }, heartbeatModel),
	model.ObjectPtr("AppCall", "", func(t *Transaction) **AppCallFields { return &t.AppCall }, appCallModel).Flat(),
)

var multisigSubsignatureModel = model.New(
	model.Fixed32("PublicKey", "pk", func(s *MultisigSubsignature) *[32]byte { return &s.PublicKey }),
	model.Bytes("Signature", "s", func(s *MultisigSubsignature) *[]byte { return &s.Signature }),
)

var multisigModel = model.New(
	model.Uint32("Version", "v", func(m *MultisigSignature) *uint32 { return &m.Version }),
	model.Uint32("Threshold", "thr", func(m *MultisigSignature) *uint32 { return &m.Threshold }),
	model.ObjectList("Subsignatures", "subsig", func(m *MultisigSignature) *[]MultisigSubsignature { return &m.Subsignatures }, multisigSubsignatureModel),
)

var logicSigModel = model.New(
	model.Bytes("Logic", "l", func(l *LogicSignature) *[]byte { return &l.Logic }),
	model.BytesList("Args", "arg", func(l *LogicSignature) *[][]byte { return &l.Args }),
	model.Bytes("Signature", "sig", func(l *LogicSignature) *[]byte { return &l.Signature }),
	model.ObjectPtr("Multisig", "msig", func(l *LogicSignature) **MultisigSignature { return &l.Multisig }, multisigModel),
	model.ObjectPtr("LogicMultisig", "lmsig", func(l *LogicSignature) **MultisigSignature { return &l.LogicMultisig }, multisigModel),
)

var signedTransactionModel = model.New(
	model.Object("Transaction", "txn", func(s *SignedTransaction) *Transaction { return &s.Transaction }, transactionModel),
	model.Bytes("Signature", "sig", func(s *SignedTransaction) *[]byte { return &s.Signature }),
	model.ObjectPtr("Multisig", "msig", func(s *SignedTransaction) **MultisigSignature { return &s.Multisig }, multisigModel),
	model.ObjectPtr("LogicSig", "lsig", func(s *SignedTransaction) **LogicSignature { return &s.LogicSig }, logicSigModel),
	model.Addr("AuthAddress", "sgnr", func(s *SignedTransaction) *types.Address { return &s.AuthAddress }),
)
