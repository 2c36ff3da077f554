package models

// PasswordHashLen is the exact size in bytes of a stored password digest.
// It matches the output length of the Argon2id parameters used by
// internal/crypto; the stored field is sized to the algorithm, not padded.
const PasswordHashLen = 32

// PasswordSaltLen is the size in bytes of the per-user password salt.
const PasswordSaltLen = 16

// User represents an account record stored in the users table.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// Username is the unique human-facing identifier chosen at signup.
	// It is the primary key of the users table.
	Username string `json:"username"`

	// UserID is derived deterministically from Username (utils.DeriveID).
	// The derivation is not collision-free; the schema rejects a second
	// username mapping to an already-taken id.
	UserID uint64 `json:"user_id"`

	// Email addresses the account in login, password-change and deletion
	// requests. Unique within the users table.
	Email string `json:"email"`

	// PasswordHash is the Argon2id digest of the user's password,
	// exactly PasswordHashLen bytes.
	PasswordHash []byte `json:"password_hash"`

	// PasswordSalt is the random salt the digest was derived with,
	// exactly PasswordSaltLen bytes.
	PasswordSalt []byte `json:"password_salt"`

	// SignupTime is the account creation time in unix seconds.
	SignupTime int64 `json:"signup_time"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
