package models

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

// MaxReasonWordingChars bounds how much of a disallowed-fee wording is echoed in a reason label.
const MaxReasonWordingChars = 50
