package db

// Key/value entries; favorites are stored under a namespaced key
const createKVTable = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const selectKV = `
SELECT value FROM kv_store WHERE key = ?
`

const upsertKV = `
INSERT INTO kv_store (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

const deleteKV = `
DELETE FROM kv_store WHERE key = ?
`

// Schema for resolved matches (summary only, full records are never stored)
const createMatchHistoryTable = `
CREATE TABLE IF NOT EXISTS match_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dog_id TEXT NOT NULL,
    name TEXT,
    breed TEXT,
    matched_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_match_history_time ON match_history(matched_at);
`

const insertMatch = `
INSERT INTO match_history (dog_id, name, breed) VALUES (?, ?, ?)
`

const selectRecentMatches = `
SELECT dog_id, COALESCE(name, ''), COALESCE(breed, ''), matched_at
FROM match_history
ORDER BY id DESC
LIMIT ?
`
