package config

import "os"

// JournalFile is the move journal path; empty disables the journal.
func JournalFile() string {
	return os.Getenv("JOURNAL_FILE")
}
