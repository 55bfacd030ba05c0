package migrations

import (
	"learnhub/internal/core"
)

// Migration001CreateContactTables creates the contact message outbox
var Migration001CreateContactTables = core.Migration{
	Version:     1,
	Name:        "create_contact_tables",
	Description: "Create contact message outbox",
	UpSQL: `
		CREATE TABLE IF NOT EXISTS contact_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'sent', 'failed')),
			attempts INTEGER NOT NULL DEFAULT 0,
			last_error TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			sent_at INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_contact_messages_ip_created ON contact_messages(ip_hash, created_at);
		CREATE INDEX IF NOT EXISTS idx_contact_messages_status ON contact_messages(status);
	`,
	DownSQL: `
		DROP INDEX IF EXISTS idx_contact_messages_status;
		DROP INDEX IF EXISTS idx_contact_messages_ip_created;
		DROP TABLE IF EXISTS contact_messages;
	`,
}
