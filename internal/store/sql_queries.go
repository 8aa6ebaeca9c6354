package store

const (
	createUser = `INSERT INTO users (email, full_name, password_hash, role, is_active)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, email, full_name, password_hash, role, is_active, created_at;`

	findUserByEmail = `SELECT user_id, email, full_name, password_hash, role, is_active, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, full_name, password_hash, role, is_active, created_at
    FROM users
    WHERE user_id = $1;`

	deleteUserByID = `DELETE FROM users
    WHERE user_id = $1 AND role <> 'admin';`

	createFile = `INSERT INTO files (owner_id, filename, stored_name, path, size, content_type)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING file_id, owner_id, filename, stored_name, path, size, content_type, is_deleted, created_at;`

	findFileByID = `SELECT file_id, owner_id, filename, stored_name, path, size, content_type, is_deleted, created_at
    FROM files
    WHERE file_id = $1 AND is_deleted = false;`

	// listAllOwnerFiles deliberately ignores the soft-delete flag: account
	// removal must reap soft-deleted rows and their blobs too.
	listAllOwnerFiles = `SELECT file_id, owner_id, filename, stored_name, path, size, content_type, is_deleted, created_at
    FROM files
    WHERE owner_id = $1;`

	softDeleteFile = `UPDATE files
    SET is_deleted = true
    WHERE file_id = $1 AND is_deleted = false;`

	hardDeleteFile = `DELETE FROM files
    WHERE file_id = $1;`

	createShare = `INSERT INTO file_shares (file_id, grantee_id, link_token, permission, expires_at)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING share_id, file_id, grantee_id, link_token, permission, expires_at, created_at;`

	findShareByToken = `SELECT share_id, file_id, grantee_id, link_token, permission, expires_at, created_at
    FROM file_shares
    WHERE link_token = $1;`

	deleteShareByID = `DELETE FROM file_shares
    WHERE share_id = $1;`

	deleteSharesByFile = `DELETE FROM file_shares
    WHERE file_id = $1;`

	deleteSharesByGrantee = `DELETE FROM file_shares
    WHERE grantee_id = $1;`

	deleteExpiredShares = `DELETE FROM file_shares
    WHERE expires_at < NOW();`

	createChallenge = `INSERT INTO login_challenges (challenge_id, user_id, code, expires_at)
    VALUES ($1, $2, $3, $4);`

	findUnusedChallenge = `SELECT challenge_id, user_id, code, is_used, attempts, expires_at, created_at
    FROM login_challenges
    WHERE challenge_id = $1 AND is_used = false;`

	// consumeChallenge claims a challenge at most once: the is_used guard
	// makes concurrent verifications race for a single affected row.
	consumeChallenge = `UPDATE login_challenges
    SET is_used = true
    WHERE challenge_id = $1 AND is_used = false;`

	incrementChallengeAttempts = `UPDATE login_challenges
    SET attempts = attempts + 1
    WHERE challenge_id = $1
    RETURNING attempts;`

	deleteChallenge = `DELETE FROM login_challenges
    WHERE challenge_id = $1;`

	deleteChallengesByUser = `DELETE FROM login_challenges
    WHERE user_id = $1;`

	deleteExpiredChallenges = `DELETE FROM login_challenges
    WHERE expires_at < NOW();`

	insertSessionToken = `INSERT INTO session_tokens (token, expires_at)
    VALUES ($1, $2);`

	sessionTokenIsLive = `SELECT EXISTS (
        SELECT 1 FROM session_tokens
        WHERE token = $1 AND expires_at > NOW()
    );`

	deleteSessionToken = `DELETE FROM session_tokens
    WHERE token = $1;`

	deleteExpiredSessionTokens = `DELETE FROM session_tokens
    WHERE expires_at < NOW();`
)
