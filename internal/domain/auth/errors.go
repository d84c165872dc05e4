package auth

import "errors"

// Identity errors. Tokens are issued by the external identity
// collaborator; this backend only verifies and reads them.
var (
	ErrInvalidToken           = errors.New("invalid or missing token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
