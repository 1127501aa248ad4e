package testhelpers

import (
	"time"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/shared/go-middleware"
	"github.com/stretchr/testify/require"
)

// CreateEditorJWT creates a web token for an editor, bound to ipAddress.
func (h *TestHelper) CreateEditorJWT(editorID uuid.UUID, role, ipAddress string) string {
	signed, err := middleware.IssueAccessToken(h.PrivateKey, editorID.String(), role, ipAddress, 15*time.Minute, time.Now())
	require.NoError(h.T, err, "Failed to sign test editor JWT")
	return signed
}
