package testutils

import (
	"time"

	"coordinator-portal-backend/internal/config"
	"coordinator-portal-backend/internal/kobo"
)

// TestConfig returns a config with the schema defaults used across tests.
func TestConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		Port:              "7010",
		LogLevel:          "error",
		SessionSecret:     "test-secret",
		SessionTTLHours:   12,
		KoboBaseURL:       "https://kobo.test",
		KoboRetryMax:      0,
		MainFormID:        "main-form",
		ChangeLogFormID:   "changes-form",
		UT3AdvancedFormID: "ut3-advanced",
		UT3EarlyFormID:    "ut3-early",
		UT4AdvancedFormID: "ut4-advanced",
		UT4EarlyFormID:    "ut4-early",
		ToolIDField:       "ID",
		ToolNameField:     "tool_name",
		MaturityField:     "tool_maturity",
		OwnerField:        "coordinator_email",
		ChangeToolIDField: "tool_id",
		ChangeOwnerField:  "Email_of_the_Coordinator",
		ToolIDCandidates:  []string{"group_intro/Q_13110000", "Q_13110000", "tool_id"},
		GenderFieldOrder:  []string{"group_individualinfo/Q_32120000", "Q_32120000"},
		AgeFieldOrder:     []string{"group_individualinfo/Q_32110000", "Q_32110000"},
		SummaryRetryDelay: time.Millisecond,
		StopNotifyDelay:   time.Millisecond,
		ReportBaseURL:     "https://reports.test",
	}
}

// BaseTool builds a registration record for the main form.
func BaseTool(id, name, maturity, owner, submittedAt string) kobo.Record {
	return kobo.Record{
		"ID":                id,
		"tool_name":         name,
		"tool_maturity":     maturity,
		"coordinator_email": owner,
		"_submission_time":  submittedAt,
	}
}

// ChangeEvent builds a reassignment record for the change-log form.
func ChangeEvent(toolID, newOwner, submittedAt string) kobo.Record {
	return kobo.Record{
		"tool_id":                  toolID,
		"Email_of_the_Coordinator": newOwner,
		"_submission_time":         submittedAt,
	}
}

// EvalSubmission builds an evaluation record linked to a tool.
func EvalSubmission(toolID, submittedAt string) kobo.Record {
	return kobo.Record{
		"group_intro/Q_13110000": toolID,
		"_submission_time":       submittedAt,
	}
}
