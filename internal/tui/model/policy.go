package model

// TabKeep leaves the detail tab as it is after a resync.
const TabKeep Tab = -1

// Policy says how the store is brought back in line with the backend
// after an action succeeds.
type Policy struct {
	// Patch names the fields updated in place from the response, empty
	// when nothing is patched locally.
	Patch           string
	ReloadCompanies bool
	ReloadChat      bool
	Reopen          bool
	Tab             Tab
}

// Policies is the post-success consistency policy of every mutating action.
var Policies = map[Action]Policy{
	ActGenerate:      {Patch: "email_subject,email_body", Reopen: true, Tab: TabKeep},
	ActSendEmail:     {ReloadCompanies: true, Reopen: true, Tab: TabChat},
	ActSetStatus:     {Patch: "status", Tab: TabKeep},
	ActSendChat:      {ReloadCompanies: true, ReloadChat: true, Tab: TabKeep},
	ActSimulateReply: {ReloadCompanies: true, ReloadChat: true, Reopen: true, Tab: TabChat},
	ActSearch:        {ReloadCompanies: true, Tab: TabKeep},
	ActSendAll:       {ReloadCompanies: true, Tab: TabKeep},
}
