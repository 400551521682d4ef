package protocol

import "scythe/internal/engine"

// Message types: Server → Client
const (
	MsgTableUpdate = "table_update"
	MsgSetup       = "setup"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgJoin     = "join"
	MsgGenerate = "generate"
)

// TableUpdate is sent to all clients when the member list changes.
type TableUpdate struct {
	TableID string        `json:"table_id"`
	Members []TableMember `json:"members"`
}

type TableMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Host bool   `json:"host"`
}

// JoinMsg is sent by a client to take a seat at the table.
type JoinMsg struct {
	Name string `json:"name"`
}

// GenerateMsg asks the table for a new setup.
type GenerateMsg struct {
	Options engine.Options `json:"options"`
}

// SetupMsg carries a generated setup to every client of the table.
type SetupMsg struct {
	TableID     string        `json:"table_id"`
	GeneratedBy string        `json:"generated_by"`
	Setup       *engine.Setup `json:"setup"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
