package mysql

// One row per (visitor, namespace); the payload column holds the record as JSON.
const upsertStateSQL = `
INSERT INTO visitor_state
  (visitor_id, namespace, payload)
VALUES
  (?, ?, ?)
ON DUPLICATE KEY UPDATE
  payload    = VALUES(payload),
  updated_at = CURRENT_TIMESTAMP
`

const getStateSQL = `
SELECT payload
FROM visitor_state
WHERE visitor_id = ? AND namespace = ?
`
