package utils

const (
	OrganizationName                      = "Newsroom"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	EditorRole = "editor"
	AdminRole  = "admin"

	// NoTopicSentinel is what the article form submits when no primary topic is chosen.
	NoTopicSentinel = "(None)"

	// LeaveImageSize keeps the image exactly as uploaded.
	LeaveImageSize = "LEAVE"

	DefaultSummaryImageSize = "medium"
	DefaultPrimaryImageSize = "large"

	MaxTweetLength = 280
)
